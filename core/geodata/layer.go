package geodata

import (
	"fmt"
	"path"
	"strings"

	"github.com/twpayne/go-geom"
)

// record is a decoded feature.
type record struct {
	objectID int64
	globalID string
	shape    geom.T
	values   map[string]any
}

// layerData is a fully loaded layer. Scratch layers only exist in this form.
type layerData struct {
	name         string
	geometryType string
	fields       []string
	hasGlobalID  bool
	records      []record
}

func (l *layerData) hasField(name string) bool {
	switch name {
	case FieldObjectID:
		return true
	case FieldGlobalID:
		return l.hasGlobalID
	}
	for _, f := range l.fields {
		if f == name {
			return true
		}
	}
	return false
}

func (l *layerData) value(r record, field string) any {
	switch field {
	case FieldObjectID:
		return r.objectID
	case FieldGlobalID:
		return r.globalID
	}
	return r.values[field]
}

func (l *layerData) checkFields(fields []string) error {
	for _, f := range fields {
		if !l.hasField(f) {
			return fmt.Errorf("field %s does not exist", f)
		}
	}
	return nil
}

func (l *layerData) checkPredicates(preds []Predicate) error {
	for _, p := range preds {
		if p.Field == FieldGlobalID || !l.hasField(p.Field) {
			return fmt.Errorf("field %s cannot be used in a where clause", p.Field)
		}
	}
	return nil
}

func matchesAll(l *layerData, r record, preds []Predicate) bool {
	for _, p := range preds {
		if !p.Matches(l.value(r, p.Field)) {
			return false
		}
	}
	return true
}

func (l *layerData) matching(preds []Predicate) []record {
	if len(preds) == 0 {
		return l.records
	}
	var out []record
	for _, r := range l.records {
		if matchesAll(l, r, preds) {
			out = append(out, r)
		}
	}
	return out
}

func (l *layerData) project(records []record, fields []string) []Row {
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		row := make(Row, len(fields))
		for i, f := range fields {
			row[i] = l.value(r, f)
		}
		rows = append(rows, row)
	}
	return rows
}

// BaseName is the feature class name without workspace or dataset qualifiers.
// "facilities.db/Indoor.Room" and "Room" both yield "Room".
func BaseName(layer string) string {
	name := path.Base(strings.ReplaceAll(layer, `\`, "/"))
	if i := strings.LastIndex(name, "."); i >= 0 && i < len(name)-1 {
		name = name[i+1:]
	}
	return name
}

// fieldNamer hands out output field names, suffixing repeats with _1, _2, ...
type fieldNamer struct {
	used map[string]struct{}
}

// FIDFields returns the FID field names Intersect gives layers, in input order.
func FIDFields(layers ...string) []string {
	namer := newFieldNamer()
	out := make([]string, len(layers))
	for i, l := range layers {
		out[i] = namer.name(fidField(l))
	}
	return out
}

func fidField(layer string) string {
	return "FID_" + BaseName(layer)
}

func newFieldNamer() *fieldNamer {
	return &fieldNamer{used: map[string]struct{}{FieldObjectID: {}}}
}

func (n *fieldNamer) name(field string) string {
	candidate := field
	for i := 1; ; i++ {
		if _, taken := n.used[candidate]; !taken {
			n.used[candidate] = struct{}{}
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d", field, i)
	}
}

// overlay intersects inputs left to right. Output rows follow the first input's
// order, then the second input's, and so on.
func overlay(output string, inputs []*layerData) (*layerData, error) {
	namer := newFieldNamer()

	type mapping struct {
		out    string
		source string
	}
	mappings := make([][]mapping, len(inputs))
	var fields []string
	for i, in := range inputs {
		fid := namer.name(fidField(in.name))
		mappings[i] = append(mappings[i], mapping{out: fid, source: FieldObjectID})
		fields = append(fields, fid)
		for _, f := range in.fields {
			out := namer.name(f)
			mappings[i] = append(mappings[i], mapping{out: out, source: f})
			fields = append(fields, out)
		}
	}

	type tuple struct {
		shape   geom.T
		members []record
	}
	tuples := make([]tuple, 0, len(inputs[0].records))
	for _, r := range inputs[0].records {
		tuples = append(tuples, tuple{shape: r.shape, members: []record{r}})
	}

	for i := 1; i < len(inputs); i++ {
		var next []tuple
		for _, t := range tuples {
			for _, r := range inputs[i].records {
				shape, ok, err := intersectShapes(t.shape, r.shape)
				if err != nil {
					return nil, fmt.Errorf("%s and %s: %w", inputs[0].name, inputs[i].name, err)
				}
				if !ok {
					continue
				}
				members := append(append([]record(nil), t.members...), r)
				next = append(next, tuple{shape: shape, members: members})
			}
		}
		tuples = next
	}

	result := &layerData{
		name:         output,
		geometryType: GeometryPoint,
		fields:       fields,
		records:      make([]record, 0, len(tuples)),
	}
	for n, t := range tuples {
		values := make(map[string]any, len(fields))
		for i, member := range t.members {
			for _, m := range mappings[i] {
				values[m.out] = inputs[i].value(member, m.source)
			}
		}
		result.records = append(result.records, record{
			objectID: int64(n + 1),
			shape:    t.shape,
			values:   values,
		})
	}
	return result, nil
}
