// Package geodata is the geodata access layer the relationship checks run against.
//
// # Accessor
//
// Accessor is the narrow capability the checks need: pick a workspace, count features,
// select by attribute, intersect layers into a scratch layer, iterate rows with a cursor,
// and delete scratch layers. Every call takes a context and blocks until done.
//
// # Store
//
// Store implements Accessor on top of a GORM database. A workspace holds two tables:
//
//	layers    name, geometry_type, fields (JSON array)
//	features  layer, object_id, global_id, shape (GeoJSON), attributes (JSON object)
//
// Layers whose name starts with "memory/" live in an in-process scratch workspace.
// Intersect always writes there, so scratch layers never reach the database.
//
// # Where Clauses
//
// The only predicate form is an integer equality, "<FIELD> = <integer>". Selections are
// returned as references of the form "layer[OBJECTID = 7]" and own no storage.
//
// # Import
//
// Store.Import loads a GeoJSON FeatureCollection into a layer, assigning OBJECTIDs and
// GLOBALIDs, which is how workspaces are populated for the check command.
package geodata
