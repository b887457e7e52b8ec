// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: Validates the X-API-Key header against the configured key.
//   - rayid: Assigns every request a RayID, stored in the context locals and echoed in the
//     X-Ray-ID response header, so that logger.WithRayID can tag every log line of a request.
//
// Both are registered globally by the start command, rayid first.
package middleware
