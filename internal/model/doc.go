// Package model defines the record types that flow through the regwatch
// pipeline: raw source batches, canonicalized records, deduplicated unified
// records, fully annotated records, alert projections, and the run-level
// result envelope shared by all pipeline stages.
package model
