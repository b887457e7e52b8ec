package geodata

import (
	"encoding/json"
	"time"
)

const (
	GeometryPoint   = "point"
	GeometryPolygon = "polygon"
)

// Layer is a named feature class of the workspace.
type Layer struct {
	Name         string `gorm:"primaryKey;size:255"`
	GeometryType string `gorm:"size:16;not null"`
	// Fields is the JSON array of attribute field names, in schema order.
	Fields    string `gorm:"type:text"`
	CreatedAt time.Time
}

func (Layer) TableName() string {
	return "layers"
}

// FieldNames decodes the layer's attribute field list.
func (l Layer) FieldNames() ([]string, error) {
	if l.Fields == "" {
		return nil, nil
	}
	var names []string
	if err := json.Unmarshal([]byte(l.Fields), &names); err != nil {
		return nil, err
	}
	return names, nil
}

// Feature is one row of a layer. Shape holds GeoJSON geometry and
// Attributes a JSON object with the remaining fields.
type Feature struct {
	ID         uint   `gorm:"primaryKey"`
	Layer      string `gorm:"size:255;not null;uniqueIndex:idx_features_layer_object"`
	ObjectID   int64  `gorm:"not null;uniqueIndex:idx_features_layer_object"`
	GlobalID   string `gorm:"size:64;index"`
	Shape      string `gorm:"type:text"`
	Attributes string `gorm:"type:text"`
}

func (Feature) TableName() string {
	return "features"
}

var (
	layerColumns   = []string{"name", "geometry_type", "fields"}
	featureColumns = []string{"id", "layer", "object_id", "global_id", "shape", "attributes"}
)
