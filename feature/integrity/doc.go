// Package integrity runs the relationship checks and exposes them.
//
// The checks themselves live in the checks subpackage. This package decides which of them
// run, in which order, and what happens to their results.
//
// # Checks Provided
//
//   - rooms: room details whose stored ROOM_GUID differs from the room they contain.
//   - stations: station details whose stored STATION_GUID differs from the station they contain.
//   - room-stations: rooms whose stored STATION_GUID differs from the station detail containing them.
//
// Service.Run executes checks one after another, writes a CSV report per check and stops at the
// first failure. Service.CheckAll runs them concurrently, which is safe because every check
// intersects into its own scratch layer.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all enabled checks (supports ?report=true).
//   - GET /integrity/rooms : Runs the room detail check.
//   - GET /integrity/stations : Runs the station detail check.
//   - GET /integrity/room-stations : Runs the room-to-station check.
//
// A GUID lookup that does not select exactly one feature answers 409 with the layer and predicate.
package integrity
