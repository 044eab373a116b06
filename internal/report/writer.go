package report

import (
	"io"

	"github.com/arpi-platform/regwatch/internal/model"
)

// Writer outputs a run result in one format.
//
// An interface keeps formats and destinations orthogonal: the same writer
// can target a file, stdout, or a buffer.
type Writer interface {
	// Write outputs the run result to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(result *model.RunResult) (int, error)
}

// MultiWriter writes a run result to several Writers in sequence.
// Useful for emitting both the terminal summary and file artifacts from one
// run. Not io.MultiWriter because our Writer carries run results, not bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the result to all configured Writers.
// Returns the total bytes written; stops on the first error.
func (m *MultiWriter) Write(result *model.RunResult) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(result)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides the shared output destination for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
