// Package database handles workspace database connections and schema inspection.
//
// It provides a wrapper around GORM to open the store that holds the feature layers,
// either a SQLite file (the default, one file per workspace) or a MySQL schema.
//
// # Connect
//
// Connect opens the database named by Config.Path with the configured driver and verifies
// it with a ping bounded by TimeoutSeconds.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns let the geodata store verify that an opened workspace
// carries the feature schema before any check runs against it.
//
// # Usage
//
//	db, err := database.Connect(cfg.Workspace.WithPath("facilities.db"))
//	if err != nil {
//	    log.Fatal("Workspace connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "features", []string{"object_id", "global_id"})
package database
