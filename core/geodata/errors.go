package geodata

import (
	"errors"
	"fmt"
)

// ErrAccessor matches every failure reported by the geodata engine.
var ErrAccessor = errors.New("geodata accessor failure")

// AccessorError describes a failed accessor operation.
type AccessorError struct {
	Op    string
	Layer string
	Err   error
}

func (e *AccessorError) Error() string {
	if e.Layer == "" {
		return fmt.Sprintf("geodata %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("geodata %s %s: %v", e.Op, e.Layer, e.Err)
}

func (e *AccessorError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrAccessor) hold for every AccessorError.
func (e *AccessorError) Is(target error) bool {
	return target == ErrAccessor
}

func accessorError(op, layer string, err error) error {
	var ae *AccessorError
	if errors.As(err, &ae) {
		return err
	}
	return &AccessorError{Op: op, Layer: layer, Err: err}
}
