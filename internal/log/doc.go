// Package log provides regwatch's logging setup on top of the standard
// slog package.
//
// The TruncateHandler wraps any slog.Handler and truncates oversized string
// attribute values. Pipeline stages log record context that can include
// full policy text running to tens of thousands of characters; the handler
// keeps a preview and drops the rest, so debug logging stays readable
// without callers having to trim values at every call site.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Debug("record dropped",
//	    "title", rec.Title,
//	    "full_text", rec.FullText, // long bodies are truncated
//	)
package log
