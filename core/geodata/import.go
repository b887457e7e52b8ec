package geodata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"relation-checker/core/utils"

	"github.com/google/uuid"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const importBatchSize = 500

// globalIDProperties are the property names recognised as a feature's GUID.
var globalIDProperties = []string{"GLOBALID", "GlobalID", "GlobalId", "globalid"}

// NewGlobalID returns a new GUID in the braced upper-case form used by the store.
func NewGlobalID() string {
	return "{" + strings.ToUpper(uuid.NewString()) + "}"
}

// Import appends a GeoJSON feature collection to layer, creating the layer when needed.
// OBJECTIDs continue from the layer's highest one. GUIDs come from a GLOBALID property,
// then the feature id, and are generated otherwise. It returns the number of features written.
func (s *Store) Import(ctx context.Context, layer string, fc *geojson.FeatureCollection) (int, error) {
	if isScratch(layer) {
		return 0, &AccessorError{Op: "Import", Layer: layer, Err: errors.New("cannot import into the scratch workspace")}
	}
	if fc == nil || len(fc.Features) == 0 {
		return 0, nil
	}

	db, err := s.conn(ctx, "Import")
	if err != nil {
		return 0, err
	}

	geometryType, err := collectionGeometry(fc)
	if err != nil {
		return 0, accessorError("Import", layer, err)
	}

	written := 0
	err = db.Transaction(func(tx *gorm.DB) error {
		var existing Layer
		fields := map[string]struct{}{}
		err := tx.Where("name = ?", layer).Take(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			existing = Layer{Name: layer, GeometryType: geometryType}
		case err != nil:
			return err
		case existing.GeometryType != geometryType:
			return fmt.Errorf("layer holds %s features, got %s", existing.GeometryType, geometryType)
		default:
			names, err := existing.FieldNames()
			if err != nil {
				return err
			}
			for _, n := range names {
				fields[n] = struct{}{}
			}
		}

		var next int64
		if err := tx.Model(&Feature{}).Where("layer = ?", layer).
			Select("COALESCE(MAX(object_id), 0)").Scan(&next).Error; err != nil {
			return err
		}

		features := make([]Feature, 0, len(fc.Features))
		for _, f := range fc.Features {
			next++
			feature, err := newFeature(layer, next, f, fields)
			if err != nil {
				return fmt.Errorf("feature %d: %w", next, err)
			}
			features = append(features, feature)
		}

		names := make([]string, 0, len(fields))
		for n := range fields {
			names = append(names, n)
		}
		sort.Strings(names)
		encoded, err := json.Marshal(names)
		if err != nil {
			return err
		}
		existing.Fields = string(encoded)

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		if err := tx.CreateInBatches(features, importBatchSize).Error; err != nil {
			return err
		}
		written = len(features)
		return nil
	})
	if err != nil {
		return 0, accessorError("Import", layer, err)
	}

	s.logger.Info("Features imported", zap.String("layer", layer), zap.Int("count", written))
	return written, nil
}

func collectionGeometry(fc *geojson.FeatureCollection) (string, error) {
	var family string
	for i, f := range fc.Features {
		if f.Geometry == nil {
			return "", fmt.Errorf("feature %d has no geometry", i)
		}
		got, err := geometryFamily(f.Geometry)
		if err != nil {
			return "", fmt.Errorf("feature %d: %w", i, err)
		}
		if family == "" {
			family = got
		} else if got != family {
			return "", fmt.Errorf("feature %d is a %s, expected %s", i, got, family)
		}
	}
	return family, nil
}

func newFeature(layer string, objectID int64, f *geojson.Feature, fields map[string]struct{}) (Feature, error) {
	shape, err := encodeShape(f.Geometry)
	if err != nil {
		return Feature{}, err
	}

	globalID := ""
	attributes := make(map[string]any, len(f.Properties))
	for key, value := range f.Properties {
		if isGlobalIDProperty(key) {
			globalID = utils.ToString(value)
			continue
		}
		if strings.EqualFold(key, FieldObjectID) {
			continue
		}
		attributes[key] = value
		fields[key] = struct{}{}
	}
	if globalID == "" {
		globalID = f.ID
	}
	if globalID == "" {
		globalID = NewGlobalID()
	}

	encoded, err := json.Marshal(attributes)
	if err != nil {
		return Feature{}, err
	}

	return Feature{
		Layer:      layer,
		ObjectID:   objectID,
		GlobalID:   globalID,
		Shape:      shape,
		Attributes: string(encoded),
	}, nil
}

func isGlobalIDProperty(key string) bool {
	for _, p := range globalIDProperties {
		if key == p {
			return true
		}
	}
	return false
}
