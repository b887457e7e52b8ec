package checks

import (
	"errors"
	"fmt"

	"relation-checker/core/geodata"
)

// ErrAmbiguousOrMissingFeature matches every AmbiguousFeatureError.
var ErrAmbiguousOrMissingFeature = errors.New("expected exactly one feature")

// AmbiguousFeatureError reports a GUID lookup whose predicate did not select exactly one feature.
type AmbiguousFeatureError struct {
	Layer string        `json:"layer"`
	Where geodata.Where `json:"where"`
	Count int           `json:"count"`
}

func (e *AmbiguousFeatureError) Error() string {
	return fmt.Sprintf("expected exactly 1 feature for where=%s in %s, found %d", e.Where, e.Layer, e.Count)
}

func (e *AmbiguousFeatureError) Is(target error) bool {
	return target == ErrAmbiguousOrMissingFeature
}
