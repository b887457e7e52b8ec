package geodata

import "context"

const (
	// FieldObjectID is the store-session-local integer row identifier.
	FieldObjectID = "OBJECTID"
	// FieldGlobalID is the stable feature identity.
	FieldGlobalID = "GLOBALID"
	// ScratchPrefix marks layers that live in the scratch workspace.
	ScratchPrefix = "memory/"
)

// Row is one feature's attribute values, in the order the fields were requested.
type Row []any

// Cursor is a lazy, one-shot iterator over the rows of a layer.
//
//	cur, err := accessor.SearchCursor(ctx, layer, fields, "")
//	defer cur.Close()
//	for cur.Next() {
//	    row := cur.Row()
//	}
//	err = cur.Err()
type Cursor interface {
	// Next advances to the next row and reports whether there is one.
	Next() bool
	// Row returns the current row. Valid only after Next returned true.
	Row() Row
	// Err returns the error that stopped the iteration, if any.
	Err() error
	// Close releases the cursor. Safe to call more than once.
	Close() error
}

// Accessor is the geodata capability the relationship checks depend on.
// Every call blocks until the underlying store has completed the operation.
type Accessor interface {
	// SetWorkspace establishes the store that later layer names resolve against.
	// It must be called before any other operation.
	SetWorkspace(ctx context.Context, path string) error

	// Count returns the number of features in a layer or selection.
	Count(ctx context.Context, layer string) (int, error)

	// SelectByAttribute returns a reference to the features of layer matching where.
	// The source layer is not modified.
	SelectByAttribute(ctx context.Context, layer string, where Where) (string, error)

	// Intersect overlays layers and writes the attribute-joined intersections to output.
	// For each input the output carries FID_<layer> followed by the input's fields;
	// a repeated field name gets a _1, _2, ... suffix.
	Intersect(ctx context.Context, layers []string, output string) (string, error)

	// SearchCursor iterates the rows of layer matching where (NoFilter for all rows),
	// projecting fields in the given order. Row order follows the store and carries no meaning.
	SearchCursor(ctx context.Context, layer string, fields []string, where Where) (Cursor, error)

	// Delete removes a scratch layer if it exists.
	Delete(ctx context.Context, ref string) error
}

// SliceCursor is a Cursor over rows already held in memory.
type SliceCursor struct {
	rows   []Row
	pos    int
	err    error
	closed bool
}

// NewSliceCursor returns a cursor over rows. If err is not nil it is reported
// by Err once the rows are exhausted, which mimics a store failing mid-iteration.
func NewSliceCursor(rows []Row, err error) *SliceCursor {
	return &SliceCursor{rows: rows, pos: -1, err: err}
}

func (c *SliceCursor) Next() bool {
	if c.closed || c.pos+1 >= len(c.rows) {
		c.pos = len(c.rows)
		return false
	}
	c.pos++
	return true
}

func (c *SliceCursor) Row() Row {
	if c.pos < 0 || c.pos >= len(c.rows) {
		return nil
	}
	return c.rows[c.pos]
}

func (c *SliceCursor) Err() error {
	if c.pos >= len(c.rows) {
		return c.err
	}
	return nil
}

func (c *SliceCursor) Close() error {
	c.closed = true
	return nil
}
