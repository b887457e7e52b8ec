// Package report turns check results into CSV files.
//
// Generator writes a header row followed by one row per result. A file is never overwritten:
// when <name>.csv exists the report goes to <name>_1.csv, then <name>_2.csv, and so on.
//
// Publisher optionally uploads the generated file to the configured MinIO/S3 bucket under
// <prefix>/<file name>. Sink combines both behind the Writer interface used by the integrity service.
package report
