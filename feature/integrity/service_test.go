package integrity

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"relation-checker/core/geodata"
	"relation-checker/core/geodata/fake"
	"relation-checker/feature/integrity/checks"
	"relation-checker/feature/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var testLayers = checks.Layers{
	Room:          "Room",
	RoomDetail:    "RoomDetail",
	Station:       "Station",
	StationDetail: "StationDetail",
}

// mockWriter is a testify mock of report.Writer
type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) Write(ctx context.Context, name string, header []string, rows [][]string) (string, error) {
	args := m.Called(ctx, name, header, rows)
	return args.String(0), args.Error(1)
}

// facility has one drifted relationship per check.
func facility() *fake.Accessor {
	return fake.New().
		AddLayer("Room",
			fake.Feature{"OBJECTID": int64(1), "GLOBALID": "{R1}"},
			fake.Feature{"OBJECTID": int64(2), "GLOBALID": "{R2}"},
		).
		AddLayer("RoomDetail", fake.Feature{"OBJECTID": int64(1), "GLOBALID": "{RD1}"}).
		AddLayer("Station", fake.Feature{"OBJECTID": int64(1), "GLOBALID": "{S1}"}).
		AddLayer("StationDetail", fake.Feature{"OBJECTID": int64(1), "GLOBALID": "{SD1}"}).
		SetIntersection([]string{"Room", "RoomDetail"},
			fake.Feature{"FID_Room": int64(1), "FID_RoomDetail": int64(1), "ROOM_GUID": "{R2}"}).
		SetIntersection([]string{"Station", "StationDetail"},
			fake.Feature{"FID_Station": int64(1), "FID_StationDetail": int64(1), "STATION_GUID": "{S9}"}).
		SetIntersection([]string{"Room", "StationDetail"},
			fake.Feature{"STATION_GUID": "{S1}", "STATION_GUID_1": "{S1}", "FID_Room": int64(1)},
			fake.Feature{"STATION_GUID": "{S7}", "STATION_GUID_1": "{S1}", "FID_Room": int64(2)},
		)
}

func newService(t *testing.T, acc geodata.Accessor, writer report.Writer) *Service {
	t.Helper()
	checker, err := checks.NewChecker(context.Background(), "facilities.db", testLayers, acc, zap.NewNop())
	require.NoError(t, err)
	return NewService(checker, writer, zap.NewNop())
}

func TestService_Check(t *testing.T) {
	svc := newService(t, facility(), nil)
	ctx := context.Background()

	rooms, err := svc.Check(ctx, KindRooms)
	require.NoError(t, err)
	assert.Equal(t, []checks.Mismatch{{ContainerGUID: "{RD1}", LoggedGUID: "{R2}", GeometricGUID: "{R1}"}}, rooms.Mismatches)
	assert.Empty(t, rooms.Report)

	stations, err := svc.Check(ctx, KindStations)
	require.NoError(t, err)
	assert.Equal(t, []checks.Mismatch{{ContainerGUID: "{SD1}", LoggedGUID: "{S9}", GeometricGUID: "{S1}"}}, stations.Mismatches)

	roomStations, err := svc.Check(ctx, KindRoomStations)
	require.NoError(t, err)
	assert.Equal(t, []checks.Mismatch{{ContainerGUID: "{R2}", LoggedGUID: "{S7}", GeometricGUID: "{S1}"}}, roomStations.Mismatches)

	_, err = svc.Check(ctx, Kind("corridors"))
	assert.ErrorContains(t, err, "unknown check")
}

func TestService_Run_WritesReports(t *testing.T) {
	dir := t.TempDir()
	sink := report.NewSink(report.NewGenerator(dir, zap.NewNop()), nil)
	svc := newService(t, facility(), sink)

	results, err := svc.Run(context.Background(), []Kind{KindRooms, KindStations, KindRoomStations})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, filepath.Join(dir, "invalid_room_relations.csv"), results[0].Report)
	assert.Equal(t, filepath.Join(dir, "invalid_station_relations.csv"), results[1].Report)
	assert.Equal(t, filepath.Join(dir, "invalid_relations.csv"), results[2].Report)

	// A second run never overwrites the first.
	results, err = svc.Run(context.Background(), []Kind{KindRooms})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "invalid_room_relations_1.csv"), results[0].Report)
}

func TestService_Run_HeaderAndRows(t *testing.T) {
	writer := new(mockWriter)
	writer.On("Write", mock.Anything, "invalid_relations",
		[]string{"RoomId", "CurrentStationId", "CorrectStationId"},
		[][]string{{"{R2}", "{S7}", "{S1}"}}).Return("reports/invalid_relations.csv", nil)

	svc := newService(t, facility(), writer)
	results, err := svc.Run(context.Background(), []Kind{KindRoomStations})
	require.NoError(t, err)
	assert.Equal(t, "reports/invalid_relations.csv", results[0].Report)
	writer.AssertExpectations(t)
}

func TestService_Run_AbortsOnFirstError(t *testing.T) {
	acc := facility().AddLayer("Room",
		fake.Feature{"OBJECTID": int64(1), "GLOBALID": "{R1}"},
		fake.Feature{"OBJECTID": int64(1), "GLOBALID": "{R1-copy}"},
	)
	writer := new(mockWriter)
	svc := newService(t, acc, writer)

	results, err := svc.Run(context.Background(), []Kind{KindRooms, KindStations})
	assert.ErrorIs(t, err, checks.ErrAmbiguousOrMissingFeature)
	assert.ErrorContains(t, err, "rooms check failed")
	assert.Empty(t, results)
	writer.AssertNotCalled(t, "Write", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 1, acc.CallCount("Intersect"))
}

func TestService_Run_MissingLayer(t *testing.T) {
	acc := fake.New().AddLayer("Room").AddLayer("RoomDetail").AddLayer("Station")
	svc := newService(t, acc, new(mockWriter))

	_, err := svc.Run(context.Background(), []Kind{KindRooms})
	assert.ErrorIs(t, err, geodata.ErrAccessor)
	assert.Zero(t, acc.CallCount("Intersect"))
}

func TestService_Run_WriterError(t *testing.T) {
	writer := new(mockWriter)
	writer.On("Write", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("disk full"))

	svc := newService(t, facility(), writer)
	_, err := svc.Run(context.Background(), []Kind{KindRooms, KindStations})
	assert.ErrorContains(t, err, "disk full")
	writer.AssertNumberOfCalls(t, "Write", 1)
}

func TestService_CheckAll(t *testing.T) {
	acc := facility()
	svc := newService(t, acc, nil)

	results, err := svc.CheckAll(context.Background(), []Kind{KindRooms, KindStations, KindRoomStations})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, KindRooms, results[0].Kind)
	assert.Equal(t, KindStations, results[1].Kind)
	assert.Equal(t, KindRoomStations, results[2].Kind)

	deleted := acc.Deleted()
	assert.Len(t, deleted, 3)
	assert.ElementsMatch(t, deleted, uniqueStrings(deleted))
	assert.Empty(t, acc.ScratchLayers())
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func TestService_LayerCounts(t *testing.T) {
	svc := newService(t, facility(), nil)

	counts, err := svc.LayerCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Room": 2, "RoomDetail": 1, "Station": 1, "StationDetail": 1}, counts)
}

func TestService_Run_LogsLayerCountsInLayerOrder(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	checker, err := checks.NewChecker(context.Background(), "facilities.db", testLayers, facility(), zap.NewNop())
	require.NoError(t, err)
	svc := NewService(checker, report.NewSink(report.NewGenerator(t.TempDir(), zap.NewNop()), nil), zap.New(core))

	_, err = svc.Run(context.Background(), []Kind{KindRooms})
	require.NoError(t, err)

	entries := logs.FilterMessage("Layer loaded").All()
	require.Len(t, entries, 4)
	var layers []string
	for _, e := range entries {
		layers = append(layers, e.ContextMap()["layer"].(string))
	}
	assert.Equal(t, testLayers.Names(), layers)
	assert.Equal(t, int64(2), entries[0].ContextMap()["features"])
}
