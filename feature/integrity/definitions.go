package integrity

import (
	"context"
	"fmt"
	"strings"

	"relation-checker/feature/integrity/checks"
)

// Kind names one relationship check.
type Kind string

const (
	KindRooms        Kind = "rooms"
	KindStations     Kind = "stations"
	KindRoomStations Kind = "room-stations"
)

// Definition describes a check and the report it produces.
type Definition struct {
	Kind   Kind
	Report string
	Header []string
	run    func(*checks.Checker, context.Context) ([]checks.Mismatch, error)
}

var definitions = []Definition{
	{
		Kind:   KindRooms,
		Report: "invalid_room_relations",
		Header: []string{"PointDetail_GUID", "Point_GUID_logical", "Point_GUID_geometric"},
		run:    (*checks.Checker).CheckRoomToRoomDetailRelationships,
	},
	{
		Kind:   KindStations,
		Report: "invalid_station_relations",
		Header: []string{"StationDetail_GUID", "Point_GUID_logical", "Point_GUID_geometric"},
		run:    (*checks.Checker).CheckStationToStationDetailRelationships,
	},
	{
		Kind:   KindRoomStations,
		Report: "invalid_relations",
		Header: []string{"RoomId", "CurrentStationId", "CorrectStationId"},
		run:    (*checks.Checker).CheckRoomToStationRelationships,
	},
}

// Definitions returns every check in run order.
func Definitions() []Definition {
	return append([]Definition(nil), definitions...)
}

func definition(kind Kind) (Definition, error) {
	for _, d := range definitions {
		if d.Kind == kind {
			return d, nil
		}
	}
	return Definition{}, fmt.Errorf("unknown check %q", kind)
}

// ParseKinds converts names such as "rooms,room-stations" to kinds, keeping run order.
func ParseKinds(names []string) ([]Kind, error) {
	requested := make(map[Kind]bool)
	for _, n := range names {
		for _, part := range strings.Split(n, ",") {
			part = strings.TrimSpace(strings.ToLower(part))
			if part == "" {
				continue
			}
			if _, err := definition(Kind(part)); err != nil {
				return nil, err
			}
			requested[Kind(part)] = true
		}
	}
	var kinds []Kind
	for _, d := range definitions {
		if requested[d.Kind] {
			kinds = append(kinds, d.Kind)
		}
	}
	return kinds, nil
}

// Config selects the checks that run by default.
type Config struct {
	Rooms        bool `mapstructure:"rooms" default:"true"`
	Stations     bool `mapstructure:"stations" default:"true"`
	RoomStations bool `mapstructure:"room_stations" default:"true"`
}

// Enabled returns the enabled checks in run order.
func (c Config) Enabled() []Kind {
	var kinds []Kind
	if c.Rooms {
		kinds = append(kinds, KindRooms)
	}
	if c.Stations {
		kinds = append(kinds, KindStations)
	}
	if c.RoomStations {
		kinds = append(kinds, KindRoomStations)
	}
	return kinds
}
