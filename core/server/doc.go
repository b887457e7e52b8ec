// Package server holds the HTTP server configuration.
//
// The start command owns the Fiber application; this package only defines the port and
// API key settings and validates them before the server starts.
package server
