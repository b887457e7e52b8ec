// Package fake provides an in-memory geodata.Accessor for tests.
//
// Layers are plain feature maps. Intersections are scripted per input list rather than
// computed, so a test states exactly which rows a check will iterate. Every call is
// recorded, and failures can be injected per operation or in the middle of a cursor.
//
//	acc := fake.New().
//	    AddLayer("Room", fake.Feature{"OBJECTID": 1, "GLOBALID": "{R1}"}).
//	    AddLayer("RoomDetail", fake.Feature{"OBJECTID": 1, "GLOBALID": "{D1}"}).
//	    SetIntersection([]string{"Room", "RoomDetail"},
//	        fake.Feature{"FID_Room": 1, "FID_RoomDetail": 1, "ROOM_GUID": "{R9}"})
package fake
