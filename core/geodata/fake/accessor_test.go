package fake

import (
	"context"
	"errors"
	"testing"

	"relation-checker/core/geodata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ geodata.Accessor = (*Accessor)(nil)

func TestAccessor_SelectionCountAndCursor(t *testing.T) {
	ctx := context.Background()
	acc := New().AddLayer("Room",
		Feature{"OBJECTID": 1, "GLOBALID": "{R1}"},
		Feature{"OBJECTID": 2, "GLOBALID": "{R2}"},
	)

	sel, err := acc.SelectByAttribute(ctx, "Room", geodata.ObjectIDEquals(2))
	require.NoError(t, err)

	n, err := acc.Count(ctx, sel)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	cur, err := acc.SearchCursor(ctx, "Room", []string{"GLOBALID"}, geodata.ObjectIDEquals(2))
	require.NoError(t, err)
	require.True(t, cur.Next())
	assert.Equal(t, geodata.Row{"{R2}"}, cur.Row())
	assert.False(t, cur.Next())
	assert.NoError(t, cur.Err())

	_, err = acc.SearchCursor(ctx, "Room", []string{"ROOM_GUID"}, geodata.NoFilter)
	assert.ErrorIs(t, err, geodata.ErrAccessor)
}

func TestAccessor_IntersectAndDelete(t *testing.T) {
	ctx := context.Background()
	acc := New().
		AddLayer("Room").
		AddLayer("RoomDetail").
		SetIntersection([]string{"Room", "RoomDetail"}, Feature{"FID_Room": 1})

	out, err := acc.Intersect(ctx, []string{"Room", "RoomDetail"}, "memory/x")
	require.NoError(t, err)
	assert.Equal(t, []string{"memory/x"}, acc.ScratchLayers())

	_, err = acc.Intersect(ctx, []string{"Room", "RoomDetail"}, "memory/x")
	assert.ErrorIs(t, err, geodata.ErrAccessor)

	n, err := acc.Count(ctx, out)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, acc.Delete(ctx, out))
	assert.Empty(t, acc.ScratchLayers())
	assert.Equal(t, []string{"memory/x"}, acc.Deleted())
}

func TestAccessor_Failures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	acc := New().
		AddLayer("Room", Feature{"OBJECTID": 1}, Feature{"OBJECTID": 2}).
		FailCursorAfter("Room", 1, boom).
		FailOn("Delete", boom)

	cur, err := acc.SearchCursor(ctx, "Room", []string{"OBJECTID"}, geodata.NoFilter)
	require.NoError(t, err)
	assert.True(t, cur.Next())
	assert.False(t, cur.Next())
	assert.ErrorIs(t, cur.Err(), boom)

	err = acc.Delete(ctx, "memory/x")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, acc.CallCount("Delete"))

	_, err = acc.Count(ctx, "Corridor")
	assert.ErrorIs(t, err, geodata.ErrAccessor)
}
