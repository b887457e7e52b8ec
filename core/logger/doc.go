// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and integrates with the Fiber web framework used by the start command.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID from a Fiber context and attaches it to the
// log entry, so that every log line produced while serving a check request can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//   - File: an optional log file that receives an uncolored copy of every entry
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", File: "checks.log"})
//	log.Info("Start processing...")
package logger
