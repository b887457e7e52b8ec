package fake

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"relation-checker/core/geodata"
)

// Feature is one feature of a fake layer, keyed by field name.
type Feature map[string]any

// Call records an accessor invocation.
type Call struct {
	Op    string
	Layer string
	Where geodata.Where
}

// Accessor is an in-memory geodata.Accessor with scripted intersections
// and injectable failures. It is safe for concurrent use.
type Accessor struct {
	mu            sync.Mutex
	workspace     string
	layers        map[string][]Feature
	intersections map[string][]Feature
	scratch       map[string][]Feature
	failures      map[string]error
	cursorFaults  map[string]cursorFault
	calls         []Call
	deleted       []string
}

type cursorFault struct {
	after int
	err   error
}

// New returns an empty fake accessor.
func New() *Accessor {
	return &Accessor{
		layers:        make(map[string][]Feature),
		intersections: make(map[string][]Feature),
		scratch:       make(map[string][]Feature),
		failures:      make(map[string]error),
		cursorFaults:  make(map[string]cursorFault),
	}
}

// AddLayer registers a base layer.
func (a *Accessor) AddLayer(name string, features ...Feature) *Accessor {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.layers[name] = append([]Feature(nil), features...)
	return a
}

// SetIntersection scripts the rows Intersect writes for the given inputs.
// Unscripted intersections produce an empty layer.
func (a *Accessor) SetIntersection(layers []string, rows ...Feature) *Accessor {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.intersections[strings.Join(layers, "|")] = append([]Feature(nil), rows...)
	return a
}

// FailOn makes every call of op return err. op is an Accessor method name.
func (a *Accessor) FailOn(op string, err error) *Accessor {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failures[op] = err
	return a
}

// FailCursorAfter makes cursors over layer stop with err after n rows.
// Scratch layers are matched by prefix, so "memory/" covers every intersection.
func (a *Accessor) FailCursorAfter(layer string, n int, err error) *Accessor {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cursorFaults[layer] = cursorFault{after: n, err: err}
	return a
}

// Calls returns the recorded invocations in order.
func (a *Accessor) Calls() []Call {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Call(nil), a.calls...)
}

// CallCount returns how many times op was invoked.
func (a *Accessor) CallCount(op string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, c := range a.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Deleted returns every reference passed to Delete, in order.
func (a *Accessor) Deleted() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.deleted...)
}

// ScratchLayers lists the intersections that have not been deleted.
func (a *Accessor) ScratchLayers() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	names := make([]string, 0, len(a.scratch))
	for name := range a.scratch {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Workspace returns the last workspace set.
func (a *Accessor) Workspace() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.workspace
}

func (a *Accessor) record(op, layer string, where geodata.Where) error {
	a.calls = append(a.calls, Call{Op: op, Layer: layer, Where: where})
	if err, ok := a.failures[op]; ok {
		return &geodata.AccessorError{Op: op, Layer: layer, Err: err}
	}
	return nil
}

func (a *Accessor) SetWorkspace(_ context.Context, path string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.record("SetWorkspace", path, geodata.NoFilter); err != nil {
		return err
	}
	a.workspace = path
	return nil
}

func (a *Accessor) lookup(op, name string) ([]Feature, error) {
	if features, ok := a.scratch[name]; ok {
		return features, nil
	}
	if features, ok := a.layers[name]; ok {
		return features, nil
	}
	return nil, &geodata.AccessorError{Op: op, Layer: name, Err: errors.New("layer does not exist")}
}

func splitRef(ref string) (string, geodata.Where) {
	if i := strings.LastIndex(ref, "["); i > 0 && strings.HasSuffix(ref, "]") {
		return ref[:i], geodata.Where(ref[i+1 : len(ref)-1])
	}
	return ref, geodata.NoFilter
}

func filter(features []Feature, wheres ...geodata.Where) ([]Feature, error) {
	out := features
	for _, w := range wheres {
		if w == geodata.NoFilter {
			continue
		}
		p, err := geodata.ParseWhere(w)
		if err != nil {
			return nil, err
		}
		var kept []Feature
		for _, f := range out {
			if p.Matches(f[p.Field]) {
				kept = append(kept, f)
			}
		}
		out = kept
	}
	return out, nil
}

func (a *Accessor) Count(_ context.Context, ref string) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	layer, where := splitRef(ref)
	if err := a.record("Count", layer, where); err != nil {
		return 0, err
	}
	features, err := a.lookup("Count", layer)
	if err != nil {
		return 0, err
	}
	matched, err := filter(features, where)
	if err != nil {
		return 0, &geodata.AccessorError{Op: "Count", Layer: ref, Err: err}
	}
	return len(matched), nil
}

func (a *Accessor) SelectByAttribute(_ context.Context, layer string, where geodata.Where) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.record("SelectByAttribute", layer, where); err != nil {
		return "", err
	}
	if _, err := a.lookup("SelectByAttribute", layer); err != nil {
		return "", err
	}
	if _, err := geodata.ParseWhere(where); err != nil {
		return "", &geodata.AccessorError{Op: "SelectByAttribute", Layer: layer, Err: err}
	}
	return fmt.Sprintf("%s[%s]", layer, where), nil
}

func (a *Accessor) Intersect(_ context.Context, layers []string, output string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.record("Intersect", strings.Join(layers, ","), geodata.NoFilter); err != nil {
		return "", err
	}
	for _, l := range layers {
		if _, err := a.lookup("Intersect", l); err != nil {
			return "", err
		}
	}
	if _, taken := a.scratch[output]; taken {
		return "", &geodata.AccessorError{Op: "Intersect", Layer: output, Err: errors.New("output layer already exists")}
	}
	rows := a.intersections[strings.Join(layers, "|")]
	a.scratch[output] = append([]Feature{}, rows...)
	return output, nil
}

func (a *Accessor) SearchCursor(_ context.Context, ref string, fields []string, where geodata.Where) (geodata.Cursor, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	layer, selection := splitRef(ref)
	if err := a.record("SearchCursor", layer, where); err != nil {
		return nil, err
	}
	features, err := a.lookup("SearchCursor", layer)
	if err != nil {
		return nil, err
	}
	matched, err := filter(features, selection, where)
	if err != nil {
		return nil, &geodata.AccessorError{Op: "SearchCursor", Layer: ref, Err: err}
	}

	rows := make([]geodata.Row, 0, len(matched))
	for _, f := range matched {
		row := make(geodata.Row, len(fields))
		for i, name := range fields {
			v, ok := f[name]
			if !ok {
				return nil, &geodata.AccessorError{Op: "SearchCursor", Layer: ref, Err: fmt.Errorf("field %s does not exist", name)}
			}
			row[i] = v
		}
		rows = append(rows, row)
	}

	for prefix, fault := range a.cursorFaults {
		if layer == prefix || (strings.HasSuffix(prefix, "/") && strings.HasPrefix(layer, prefix)) {
			if fault.after < len(rows) {
				rows = rows[:fault.after]
			}
			return geodata.NewSliceCursor(rows, &geodata.AccessorError{Op: "SearchCursor", Layer: layer, Err: fault.err}), nil
		}
	}
	return geodata.NewSliceCursor(rows, nil), nil
}

func (a *Accessor) Delete(_ context.Context, ref string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.deleted = append(a.deleted, ref)
	if err := a.record("Delete", ref, geodata.NoFilter); err != nil {
		return err
	}
	delete(a.scratch, ref)
	return nil
}
