package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/arpi-platform/regwatch/internal/model"
)

// JSONWriter outputs the full run result in JSON format for tool
// integration. Standard encoding/json is sufficient here; the payload is
// written once per run, so encoding speed is irrelevant.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed output.
	indent bool

	// indentPrefix and indentString configure MarshalIndent.
	indentPrefix string
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output with the given prefix and
// per-level indent.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the run result, annotated records included, in JSON format.
func (w *JSONWriter) Write(result *model.RunResult) (int, error) {
	return w.writeJSON(result)
}

// WriteMetadata outputs only the run metadata document.
func (w *JSONWriter) WriteMetadata(result *model.RunResult) (int, error) {
	return w.writeJSON(NewMetadata(result))
}

func (w *JSONWriter) writeJSON(v any) (int, error) {
	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	// Trailing newline for terminal-friendly output.
	data = append(data, '\n')
	return w.output.Write(data)
}

// Metadata is the compact per-run metadata artifact. It describes the run
// without carrying the record payload, so consumers can poll it cheaply to
// detect new results.
type Metadata struct {
	// GeneratedAt is the run timestamp.
	GeneratedAt time.Time `json:"generated_at"`

	// TotalRecords is the size of the final annotated set.
	TotalRecords int `json:"total_records"`

	// MaxPublicationDate is the newest publication date across the
	// unfiltered canonical set, formatted as a calendar date.
	MaxPublicationDate string `json:"max_publication_date"`

	// SourcesLoaded and SourcesFailed count source batches.
	SourcesLoaded int `json:"sources_loaded"`
	SourcesFailed int `json:"sources_failed"`

	// DroppedNoTitle, DroppedBadDate, DuplicatesRemoved, and FilteredOut
	// summarize per-stage attrition.
	DroppedNoTitle    int `json:"dropped_no_title"`
	DroppedBadDate    int `json:"dropped_bad_date"`
	DuplicatesRemoved int `json:"duplicates_removed"`
	FilteredOut       int `json:"filtered_out"`
}

// NewMetadata builds the metadata document for a run result.
func NewMetadata(result *model.RunResult) *Metadata {
	maxDate := ""
	if !result.MaxPublicationDate.IsZero() {
		maxDate = result.MaxPublicationDate.Format(model.DateFormat)
	}
	return &Metadata{
		GeneratedAt:        result.GeneratedAt,
		TotalRecords:       len(result.Records),
		MaxPublicationDate: maxDate,
		SourcesLoaded:      result.SourcesLoaded,
		SourcesFailed:      result.SourcesFailed,
		DroppedNoTitle:     result.DroppedNoTitle,
		DroppedBadDate:     result.DroppedBadDate,
		DuplicatesRemoved:  result.DuplicatesRemoved,
		FilteredOut:        result.FilteredOut,
	}
}
