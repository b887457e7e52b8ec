package geodata

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"relation-checker/core/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Store is the Accessor backed by a GORM workspace database. Base layers are read
// from the layers/features tables; intersections are written to an in-process
// scratch workspace and live until deleted.
type Store struct {
	cfg     database.Config
	logger  *zap.Logger
	connect func(database.Config) (*gorm.DB, error)

	mu        sync.RWMutex
	db        *gorm.DB
	workspace string
	scratch   map[string]*layerData
}

var _ Accessor = (*Store)(nil)

// NewStore creates a store that opens workspaces with cfg's driver settings.
func NewStore(cfg database.Config, logger *zap.Logger) *Store {
	return &Store{
		cfg:     cfg,
		logger:  logger,
		connect: database.Connect,
		scratch: make(map[string]*layerData),
	}
}

// SetWorkspace opens the workspace at path and verifies its schema,
// or creates it when AutoMigrate is enabled.
func (s *Store) SetWorkspace(ctx context.Context, path string) error {
	db, err := s.connect(s.cfg.WithPath(path))
	if err != nil {
		return accessorError("SetWorkspace", path, err)
	}

	if s.cfg.AutoMigrate {
		if err := db.WithContext(ctx).AutoMigrate(&Layer{}, &Feature{}); err != nil {
			return accessorError("SetWorkspace", path, fmt.Errorf("failed to migrate schema: %w", err))
		}
	} else if err := verifySchema(db); err != nil {
		return accessorError("SetWorkspace", path, err)
	}

	s.mu.Lock()
	previous := s.db
	s.db = db
	s.workspace = path
	s.mu.Unlock()

	if previous != nil {
		if sqlDB, err := previous.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	s.logger.Info("Workspace set", zap.String("workspace", path), zap.String("driver", db.Dialector.Name()))
	return nil
}

func verifySchema(db *gorm.DB) error {
	for table, required := range map[string][]string{"layers": layerColumns, "features": featureColumns} {
		missing, err := database.MissingColumns(db, table, required)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return fmt.Errorf("table %s is missing columns %s", table, strings.Join(missing, ", "))
		}
	}
	return nil
}

// Workspace returns the current workspace location.
func (s *Store) Workspace() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.workspace
}

// Close releases the workspace connection and drops every scratch layer.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scratch = make(map[string]*layerData)
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	s.db = nil
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ScratchLayers lists the scratch layers currently held, sorted by name.
func (s *Store) ScratchLayers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.scratch))
	for name, l := range s.scratch {
		if l != nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (s *Store) conn(ctx context.Context, op string) (*gorm.DB, error) {
	s.mu.RLock()
	db := s.db
	s.mu.RUnlock()
	if db == nil {
		return nil, &AccessorError{Op: op, Err: errors.New("workspace not set")}
	}
	return db.WithContext(ctx), nil
}

func isScratch(name string) bool {
	return strings.HasPrefix(name, ScratchPrefix)
}

func (s *Store) scratchLayer(op, name string) (*layerData, error) {
	s.mu.RLock()
	l := s.scratch[name]
	s.mu.RUnlock()
	if l == nil {
		return nil, &AccessorError{Op: op, Layer: name, Err: errors.New("layer does not exist")}
	}
	return l, nil
}

func (s *Store) baseLayer(ctx context.Context, op, name string) (*Layer, []string, error) {
	db, err := s.conn(ctx, op)
	if err != nil {
		return nil, nil, err
	}
	var l Layer
	if err := db.Where("name = ?", name).Take(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, &AccessorError{Op: op, Layer: name, Err: errors.New("layer does not exist")}
		}
		return nil, nil, accessorError(op, name, err)
	}
	fields, err := l.FieldNames()
	if err != nil {
		return nil, nil, accessorError(op, name, fmt.Errorf("invalid field list: %w", err))
	}
	return &l, fields, nil
}

func parsePredicates(wheres ...Where) ([]Predicate, error) {
	var preds []Predicate
	for _, w := range wheres {
		if strings.TrimSpace(string(w)) == "" {
			continue
		}
		p, err := ParseWhere(w)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	return preds, nil
}

// featureQuery scopes a query to the features of layer matching preds. Predicates on
// fields other than OBJECTID cannot be pushed to SQL and are returned for in-process filtering.
func featureQuery(db *gorm.DB, layer string, preds []Predicate) (*gorm.DB, []Predicate) {
	q := db.Model(&Feature{}).Where("layer = ?", layer)
	var rest []Predicate
	for _, p := range preds {
		if p.IsObjectID() {
			q = q.Where("object_id = ?", p.Value)
			continue
		}
		rest = append(rest, p)
	}
	return q, rest
}

// Count returns the number of features in a layer or selection.
func (s *Store) Count(ctx context.Context, ref string) (int, error) {
	layer, where, _ := parseSelectionRef(ref)
	preds, err := parsePredicates(where)
	if err != nil {
		return 0, accessorError("Count", ref, err)
	}

	if isScratch(layer) {
		l, err := s.scratchLayer("Count", layer)
		if err != nil {
			return 0, err
		}
		if err := l.checkPredicates(preds); err != nil {
			return 0, accessorError("Count", ref, err)
		}
		return len(l.matching(preds)), nil
	}

	_, fields, err := s.baseLayer(ctx, "Count", layer)
	if err != nil {
		return 0, err
	}
	meta := &layerData{name: layer, fields: fields, hasGlobalID: true}
	if err := meta.checkPredicates(preds); err != nil {
		return 0, accessorError("Count", ref, err)
	}
	db, err := s.conn(ctx, "Count")
	if err != nil {
		return 0, err
	}

	q, rest := featureQuery(db, layer, preds)
	if len(rest) == 0 {
		var n int64
		if err := q.Count(&n).Error; err != nil {
			return 0, accessorError("Count", ref, err)
		}
		return int(n), nil
	}

	l, err := s.loadFeatures(q, layer, fields)
	if err != nil {
		return 0, accessorError("Count", ref, err)
	}
	return len(l.matching(rest)), nil
}

// SelectByAttribute returns a view of layer restricted to where.
func (s *Store) SelectByAttribute(ctx context.Context, layer string, where Where) (string, error) {
	pred, err := ParseWhere(where)
	if err != nil {
		return "", accessorError("SelectByAttribute", layer, err)
	}

	var meta *layerData
	if isScratch(layer) {
		if meta, err = s.scratchLayer("SelectByAttribute", layer); err != nil {
			return "", err
		}
	} else {
		_, fields, err := s.baseLayer(ctx, "SelectByAttribute", layer)
		if err != nil {
			return "", err
		}
		meta = &layerData{name: layer, fields: fields, hasGlobalID: true}
	}
	if err := meta.checkPredicates([]Predicate{pred}); err != nil {
		return "", accessorError("SelectByAttribute", layer, err)
	}
	return selectionRef(layer, where), nil
}

// Intersect overlays layers into the scratch layer output.
func (s *Store) Intersect(ctx context.Context, layers []string, output string) (string, error) {
	if len(layers) < 2 {
		return "", &AccessorError{Op: "Intersect", Layer: output, Err: errors.New("at least two input layers are required")}
	}
	if !isScratch(output) {
		return "", &AccessorError{Op: "Intersect", Layer: output, Err: fmt.Errorf("output must be in the scratch workspace (%s)", ScratchPrefix)}
	}

	// Reserve the name so that concurrent intersections cannot collide.
	s.mu.Lock()
	if _, taken := s.scratch[output]; taken {
		s.mu.Unlock()
		return "", &AccessorError{Op: "Intersect", Layer: output, Err: errors.New("output layer already exists")}
	}
	s.scratch[output] = nil
	s.mu.Unlock()

	result, err := s.intersect(ctx, layers, output)

	s.mu.Lock()
	if err != nil {
		delete(s.scratch, output)
	} else {
		s.scratch[output] = result
	}
	s.mu.Unlock()

	if err != nil {
		return "", accessorError("Intersect", output, err)
	}

	s.logger.Debug("Intersect written",
		zap.Strings("inputs", layers),
		zap.String("output", output),
		zap.Int("rows", len(result.records)))
	return output, nil
}

func (s *Store) intersect(ctx context.Context, layers []string, output string) (*layerData, error) {
	inputs := make([]*layerData, 0, len(layers))
	for _, name := range layers {
		l, err := s.load(ctx, name)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, l)
	}
	return overlay(output, inputs)
}

// load reads a whole layer, from the scratch workspace or the database.
func (s *Store) load(ctx context.Context, name string) (*layerData, error) {
	if isScratch(name) {
		return s.scratchLayer("Intersect", name)
	}
	_, fields, err := s.baseLayer(ctx, "Intersect", name)
	if err != nil {
		return nil, err
	}
	db, err := s.conn(ctx, "Intersect")
	if err != nil {
		return nil, err
	}
	q, _ := featureQuery(db, name, nil)
	return s.loadFeatures(q, name, fields)
}

func (s *Store) loadFeatures(q *gorm.DB, name string, fields []string) (*layerData, error) {
	var features []Feature
	if err := q.Order("object_id").Find(&features).Error; err != nil {
		return nil, err
	}
	l := &layerData{name: name, fields: fields, hasGlobalID: true, records: make([]record, 0, len(features))}
	for _, f := range features {
		r, err := decodeFeature(f)
		if err != nil {
			return nil, fmt.Errorf("%s OBJECTID %d: %w", name, f.ObjectID, err)
		}
		l.records = append(l.records, r)
	}
	return l, nil
}

func decodeFeature(f Feature) (record, error) {
	shape, err := decodeShape(f.Shape)
	if err != nil {
		return record{}, err
	}
	values := map[string]any{}
	if f.Attributes != "" {
		if err := json.Unmarshal([]byte(f.Attributes), &values); err != nil {
			return record{}, fmt.Errorf("invalid attributes: %w", err)
		}
	}
	return record{objectID: f.ObjectID, globalID: f.GlobalID, shape: shape, values: values}, nil
}

// SearchCursor iterates rows of a layer or selection. Base layers stream from the database.
func (s *Store) SearchCursor(ctx context.Context, ref string, fields []string, where Where) (Cursor, error) {
	layer, selection, _ := parseSelectionRef(ref)
	preds, err := parsePredicates(selection, where)
	if err != nil {
		return nil, accessorError("SearchCursor", ref, err)
	}
	if len(fields) == 0 {
		return nil, &AccessorError{Op: "SearchCursor", Layer: ref, Err: errors.New("no fields requested")}
	}

	if isScratch(layer) {
		l, err := s.scratchLayer("SearchCursor", layer)
		if err != nil {
			return nil, err
		}
		if err := l.checkFields(fields); err != nil {
			return nil, accessorError("SearchCursor", ref, err)
		}
		if err := l.checkPredicates(preds); err != nil {
			return nil, accessorError("SearchCursor", ref, err)
		}
		return NewSliceCursor(l.project(l.matching(preds), fields), nil), nil
	}

	_, layerFields, err := s.baseLayer(ctx, "SearchCursor", layer)
	if err != nil {
		return nil, err
	}
	meta := &layerData{name: layer, fields: layerFields, hasGlobalID: true}
	if err := meta.checkFields(fields); err != nil {
		return nil, accessorError("SearchCursor", ref, err)
	}
	if err := meta.checkPredicates(preds); err != nil {
		return nil, accessorError("SearchCursor", ref, err)
	}

	db, err := s.conn(ctx, "SearchCursor")
	if err != nil {
		return nil, err
	}
	q, rest := featureQuery(db, layer, preds)
	rows, err := q.Order("object_id").Rows()
	if err != nil {
		return nil, accessorError("SearchCursor", ref, err)
	}
	return &featureCursor{db: db, rows: rows, layer: meta, fields: fields, filter: rest}, nil
}

// featureCursor decodes one feature per Next from an open result set.
type featureCursor struct {
	db     *gorm.DB
	rows   *sql.Rows
	layer  *layerData
	fields []string
	filter []Predicate
	row    Row
	err    error
}

func (c *featureCursor) Next() bool {
	if c.err != nil || c.rows == nil {
		return false
	}
	for c.rows.Next() {
		var f Feature
		if err := c.db.ScanRows(c.rows, &f); err != nil {
			c.err = accessorError("SearchCursor", c.layer.name, err)
			return false
		}
		r, err := decodeFeature(f)
		if err != nil {
			c.err = accessorError("SearchCursor", c.layer.name, err)
			return false
		}
		if !matchesAll(c.layer, r, c.filter) {
			continue
		}
		c.row = c.layer.project([]record{r}, c.fields)[0]
		return true
	}
	if err := c.rows.Err(); err != nil {
		c.err = accessorError("SearchCursor", c.layer.name, err)
	}
	return false
}

func (c *featureCursor) Row() Row {
	return c.row
}

func (c *featureCursor) Err() error {
	return c.err
}

func (c *featureCursor) Close() error {
	if c.rows == nil {
		return nil
	}
	err := c.rows.Close()
	c.rows = nil
	return err
}

// Delete drops a scratch layer if it exists. Selections own no storage.
// Base layers are never deleted through the accessor.
func (s *Store) Delete(ctx context.Context, ref string) error {
	if _, _, isSelection := parseSelectionRef(ref); isSelection {
		return nil
	}
	if !isScratch(ref) {
		return &AccessorError{Op: "Delete", Layer: ref, Err: errors.New("only scratch layers can be deleted")}
	}

	s.mu.Lock()
	_, existed := s.scratch[ref]
	delete(s.scratch, ref)
	s.mu.Unlock()

	if existed {
		s.logger.Debug("Scratch layer deleted", zap.String("layer", ref))
	}
	return nil
}
