// Package ingest is the source-loader boundary adapter. It reads tabular
// record batches (CSV, UTF-8 or GB18030) produced by the external scrapers,
// tags each row with its origin source, and tolerates per-source failures:
// one unavailable or malformed batch never aborts the others.
package ingest
