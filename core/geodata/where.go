package geodata

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"relation-checker/core/utils"
)

// Where is an attribute predicate. The only supported form is a single
// equality over a named integer field: "<FIELD> = <integer>".
type Where string

// NoFilter selects every row.
const NoFilter Where = ""

var wherePattern = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(-?\d+)\s*$`)

// ObjectIDEquals builds the predicate selecting the feature with the given OBJECTID.
func ObjectIDEquals(fid int64) Where {
	return Where(fmt.Sprintf("%s = %d", FieldObjectID, fid))
}

// Predicate is a parsed Where.
type Predicate struct {
	Field string
	Value int64
}

// ParseWhere parses w. Anything but a single integer equality is rejected.
func ParseWhere(w Where) (Predicate, error) {
	m := wherePattern.FindStringSubmatch(string(w))
	if m == nil {
		return Predicate{}, fmt.Errorf("unsupported where clause %q: expected <FIELD> = <integer>", string(w))
	}
	value, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return Predicate{}, fmt.Errorf("invalid where clause %q: %w", string(w), err)
	}
	return Predicate{Field: strings.ToUpper(m[1]), Value: value}, nil
}

// IsObjectID reports whether the predicate filters on OBJECTID.
func (p Predicate) IsObjectID() bool {
	return p.Field == FieldObjectID
}

// Matches reports whether an attribute value satisfies the predicate.
func (p Predicate) Matches(v any) bool {
	if v == nil {
		return false
	}
	return utils.ToInt64(v) == p.Value
}

func (p Predicate) String() string {
	return fmt.Sprintf("%s = %d", p.Field, p.Value)
}

// selectionRef encodes a filtered view of layer. It owns no storage.
func selectionRef(layer string, where Where) string {
	return fmt.Sprintf("%s[%s]", layer, strings.TrimSpace(string(where)))
}

// parseSelectionRef splits a reference produced by selectionRef.
func parseSelectionRef(ref string) (layer string, where Where, ok bool) {
	if !strings.HasSuffix(ref, "]") {
		return ref, NoFilter, false
	}
	i := strings.LastIndex(ref, "[")
	if i <= 0 {
		return ref, NoFilter, false
	}
	return ref[:i], Where(ref[i+1 : len(ref)-1]), true
}
