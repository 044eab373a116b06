// Package alert filters the annotated record set against a configurable
// strictness threshold plus department and domain allow-lists, derives
// human-readable risk factors, and renders the ranked alert list as a
// fixed-format text report for the external notification dispatcher.
package alert
