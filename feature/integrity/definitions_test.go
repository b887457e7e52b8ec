package integrity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitions(t *testing.T) {
	defs := Definitions()
	require.Len(t, defs, 3)

	assert.Equal(t, KindRooms, defs[0].Kind)
	assert.Equal(t, "invalid_room_relations", defs[0].Report)
	assert.Equal(t, []string{"PointDetail_GUID", "Point_GUID_logical", "Point_GUID_geometric"}, defs[0].Header)
	assert.Equal(t, "invalid_station_relations", defs[1].Report)
	assert.Equal(t, "invalid_relations", defs[2].Report)
	for _, d := range defs {
		assert.Len(t, d.Header, 3)
	}
}

func TestParseKinds(t *testing.T) {
	kinds, err := ParseKinds([]string{"room-stations, rooms"})
	require.NoError(t, err)
	assert.Equal(t, []Kind{KindRooms, KindRoomStations}, kinds)

	kinds, err = ParseKinds([]string{"stations", "STATIONS"})
	require.NoError(t, err)
	assert.Equal(t, []Kind{KindStations}, kinds)

	kinds, err = ParseKinds(nil)
	require.NoError(t, err)
	assert.Empty(t, kinds)

	_, err = ParseKinds([]string{"corridors"})
	assert.ErrorContains(t, err, "unknown check")
}

func TestConfig_Enabled(t *testing.T) {
	assert.Equal(t, []Kind{KindRooms, KindStations, KindRoomStations}, Config{Rooms: true, Stations: true, RoomStations: true}.Enabled())
	assert.Equal(t, []Kind{KindStations}, Config{Stations: true}.Enabled())
	assert.Empty(t, Config{}.Enabled())
}
