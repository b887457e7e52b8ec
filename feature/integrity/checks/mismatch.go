package checks

// Mismatch is a relationship whose stored reference disagrees with geometry.
type Mismatch struct {
	// ContainerGUID identifies the feature the report row is about: the polygon
	// for detail checks, the room for the room-to-station check.
	ContainerGUID string `json:"container_guid"`
	LoggedGUID    string `json:"logged_guid"`
	GeometricGUID string `json:"geometric_guid"`
}

// Record returns the mismatch as a report row.
func (m Mismatch) Record() []string {
	return []string{m.ContainerGUID, m.LoggedGUID, m.GeometricGUID}
}
