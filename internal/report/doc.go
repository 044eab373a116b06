// Package report renders run results as artifacts.
//
// Three writers cover the output surface:
//   - CSVWriter: the annotated policy table, one row per record
//   - JSONWriter: the machine-readable run result and the compact
//     run metadata document
//   - MarkdownWriter: a human-readable run summary with aggregate views
//
// Writers implement the Writer interface so formats can be used
// interchangeably and composed via MultiWriter.
package report
