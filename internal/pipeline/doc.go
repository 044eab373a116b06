// Package pipeline executes the regwatch record-processing stages in
// sequence: canonicalization, deduplication, relevance filtering, department
// unification, and annotation. Each stage is a Step that reads the shared
// RunResult and appends its output, so every stage depends only on the
// previous stage's output.
//
// The whole pipeline is a single-pass, synchronous batch transform over an
// in-memory record set. No step blocks on I/O; all boundary I/O happens in
// the ingest and report packages before and after the pipeline runs.
// Independent runs over disjoint inputs can therefore execute in parallel
// without coordination.
package pipeline
