package checks

import (
	"context"
	"path/filepath"
	"testing"

	"relation-checker/core/database"
	"relation-checker/core/geodata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
)

func point(x, y float64, props map[string]interface{}) *geojson.Feature {
	return &geojson.Feature{
		Geometry:   geom.NewPoint(geom.XY).MustSetCoords(geom.Coord{x, y}),
		Properties: props,
	}
}

func square(minX, minY, maxX, maxY float64, props map[string]interface{}) *geojson.Feature {
	ring := []geom.Coord{{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}, {minX, minY}}
	return &geojson.Feature{
		Geometry:   geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{ring}),
		Properties: props,
	}
}

// newStoreChecker opens a SQLite workspace in a temp dir and loads one drifted
// relationship per check into the given layers.
func newStoreChecker(t *testing.T, layers Layers) (*Checker, *geodata.Store) {
	t.Helper()
	ctx := context.Background()
	workspace := filepath.Join(t.TempDir(), "facilities.db")

	store := geodata.NewStore(database.Config{Driver: database.DriverSQLite, AutoMigrate: true}, zap.NewNop())
	t.Cleanup(func() { _ = store.Close() })

	c, err := NewChecker(ctx, workspace, layers, store, zap.NewNop())
	require.NoError(t, err)

	load := func(layer string, features ...*geojson.Feature) {
		_, err := store.Import(ctx, layer, &geojson.FeatureCollection{Features: features})
		require.NoError(t, err)
	}
	load(layers.Room,
		point(1, 1, map[string]interface{}{"GLOBALID": "{R1}", "STATION_GUID": "{S1}"}),
		point(11, 1, map[string]interface{}{"GLOBALID": "{R2}", "STATION_GUID": "{S9}"}),
	)
	load(layers.RoomDetail,
		square(0, 0, 5, 5, map[string]interface{}{"GLOBALID": "{D1}", "ROOM_GUID": "{R1}"}),
		square(10, 0, 15, 5, map[string]interface{}{"GLOBALID": "{D2}", "ROOM_GUID": "{WRONG}"}),
	)
	load(layers.Station,
		point(30, 30, map[string]interface{}{"GLOBALID": "{S1}"}),
		point(52, 52, map[string]interface{}{"GLOBALID": "{S2}"}),
	)
	load(layers.StationDetail,
		square(0, 0, 40, 40, map[string]interface{}{"GLOBALID": "{SD1}", "STATION_GUID": "{S1}"}),
		square(50, 50, 60, 60, map[string]interface{}{"GLOBALID": "{SD2}", "STATION_GUID": "{S1}"}),
	)
	return c, store
}

func TestChecker_AgainstStore(t *testing.T) {
	layouts := map[string]Layers{
		"Default Names": {Room: "Room", RoomDetail: "RoomDetail", Station: "Station", StationDetail: "StationDetail"},
		"Custom Names":  testLayers,
		"Qualified Names": {
			Room:          "Indoor.Rooms",
			RoomDetail:    "Indoor.RoomDetails",
			Station:       "Transit.Stations",
			StationDetail: "Transit.StationDetails",
		},
	}

	for name, layers := range layouts {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			c, store := newStoreChecker(t, layers)

			rooms, err := c.CheckRoomToRoomDetailRelationships(ctx)
			require.NoError(t, err)
			assert.Equal(t, []Mismatch{{ContainerGUID: "{D2}", LoggedGUID: "{WRONG}", GeometricGUID: "{R2}"}}, rooms)

			stations, err := c.CheckStationToStationDetailRelationships(ctx)
			require.NoError(t, err)
			assert.Equal(t, []Mismatch{{ContainerGUID: "{SD2}", LoggedGUID: "{S1}", GeometricGUID: "{S2}"}}, stations)

			roomStations, err := c.CheckRoomToStationRelationships(ctx)
			require.NoError(t, err)
			assert.Equal(t, []Mismatch{{ContainerGUID: "{R2}", LoggedGUID: "{S9}", GeometricGUID: "{S1}"}}, roomStations)

			assert.Empty(t, store.ScratchLayers())
		})
	}
}

func TestChecker_AgainstStore_MissingLayer(t *testing.T) {
	c, store := newStoreChecker(t, testLayers)
	c.layers.RoomDetail = "Nowhere"

	_, err := c.CheckRoomToRoomDetailRelationships(context.Background())
	assert.ErrorIs(t, err, geodata.ErrAccessor)
	assert.Empty(t, store.ScratchLayers())
}
