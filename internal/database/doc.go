// Package database provides the SQLite-backed run store for regwatch.
//
// Each pipeline run is persisted as one row: the attrition counters and
// timestamps in columns, the annotated record set as a JSON document. The
// alert, trends, and history subcommands read saved runs instead of
// re-reading the source batches.
//
// SQLite via modernc.org/sqlite keeps the store a single CGO-free file,
// which cross-compiles cleanly and needs no external service.
package database
