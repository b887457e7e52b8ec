// Package checks compares stored GUID references against spatial containment.
//
// Each check intersects a point layer with a polygon layer into a scratch layer, walks the
// intersection rows and resolves the internal OBJECTIDs of each row back to GUIDs. A row whose
// stored reference differs from the geometric one becomes a Mismatch. Scratch layers are named
// memory/intersected_<uuid> and deleted before the check returns, on every path.
//
// GUID resolution is strict: a predicate that does not select exactly one feature fails with
// an AmbiguousFeatureError instead of picking a row.
package checks
