package checks

import "relation-checker/core/geodata"

// Layers names the four feature classes the checks run against.
type Layers struct {
	Room          string `mapstructure:"room" default:"Room"`
	RoomDetail    string `mapstructure:"room_detail" default:"RoomDetail"`
	Station       string `mapstructure:"station" default:"Station"`
	StationDetail string `mapstructure:"station_detail" default:"StationDetail"`
}

// Names returns the layer names in a fixed order.
func (l Layers) Names() []string {
	return []string{l.Room, l.RoomDetail, l.Station, l.StationDetail}
}

// RoomDetailFields is the point FID, polygon FID and stored room GUID of the room intersection.
func (l Layers) RoomDetailFields() [3]string {
	return pointPolygonFields(l.Room, l.RoomDetail, "ROOM_GUID")
}

// StationDetailFields is the point FID, polygon FID and stored station GUID of the station intersection.
func (l Layers) StationDetailFields() [3]string {
	return pointPolygonFields(l.Station, l.StationDetail, "STATION_GUID")
}

// RoomStationFields are the room's stored station, the polygon's station and the room FID.
// STATION_GUID_1 is the intersection's suffix for the second STATION_GUID.
func (l Layers) RoomStationFields() [3]string {
	fids := geodata.FIDFields(l.Room, l.StationDetail)
	return [3]string{"STATION_GUID", "STATION_GUID_1", fids[0]}
}

func pointPolygonFields(point, polygon, guidField string) [3]string {
	fids := geodata.FIDFields(point, polygon)
	return [3]string{fids[0], fids[1], guidField}
}
