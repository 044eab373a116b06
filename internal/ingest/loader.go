package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"github.com/arpi-platform/regwatch/internal/model"
)

// Encoding names accepted in source configuration.
const (
	EncodingUTF8    = "utf-8"
	EncodingGB18030 = "gb18030"
)

// DefaultConcurrency is the number of source batches loaded in parallel.
// Batches are small local files, so a low limit is plenty.
const DefaultConcurrency = 4

// Source describes one input batch file.
type Source struct {
	// Name tags every record loaded from this batch.
	Name model.Source `yaml:"name"`

	// Path is the CSV file location.
	Path string `yaml:"path"`

	// Encoding is the file encoding, EncodingUTF8 (default) or
	// EncodingGB18030. Government CSV exports frequently ship as GB18030.
	Encoding string `yaml:"encoding"`
}

// Result holds the merged load outcome across all sources.
type Result struct {
	// Records holds all loaded rows, concatenated in source declaration
	// order so the merged set is independent of goroutine scheduling.
	Records []model.RawRecord

	// Loaded and Failed count source batches, not records.
	Loaded int
	Failed int
}

// Loader reads raw record batches from source CSV files.
type Loader struct {
	concurrency int
	logger      *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithConcurrency sets the number of batches loaded in parallel.
func WithConcurrency(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// WithLoaderLogger sets a custom logger.
func WithLoaderLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{concurrency: DefaultConcurrency}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l
}

// Load reads all source batches. Per-source failures are logged and
// counted but do not abort the other sources; the run proceeds with
// whatever loaded. ErrNoSources is returned only when nothing loaded.
func (l *Loader) Load(ctx context.Context, sources []Source) (*Result, error) {
	perSource := make([][]model.RawRecord, len(sources))
	failed := make([]bool, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)

	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			records, err := l.loadSource(src)
			if err != nil {
				// Isolated: one batch's failure must not abort the rest.
				l.logger.Warn("source batch failed to load",
					"source", src.Name,
					"path", src.Path,
					"error", err,
				)
				failed[i] = true
				return nil
			}

			l.logger.Info("source batch loaded",
				"source", src.Name,
				"path", src.Path,
				"records", len(records),
			)
			perSource[i] = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{}
	for i := range sources {
		if failed[i] {
			result.Failed++
			continue
		}
		result.Loaded++
		result.Records = append(result.Records, perSource[i]...)
	}

	if result.Loaded == 0 {
		return nil, ErrNoSources
	}
	return result, nil
}

// loadSource reads and parses one CSV batch.
func (l *Loader) loadSource(src Source) ([]model.RawRecord, error) {
	f, err := os.Open(src.Path)
	if err != nil {
		return nil, fmt.Errorf("open batch: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	var reader io.Reader = f
	if strings.EqualFold(src.Encoding, EncodingGB18030) {
		reader = transform.NewReader(f, simplifiedchinese.GB18030.NewDecoder())
	}

	return parseBatch(reader, src.Name)
}

// parseBatch decodes CSV rows into raw records. The header row maps column
// names to fields; extra columns are ignored and missing optional columns
// yield empty fields. A missing title column fails the whole batch.
func parseBatch(r io.Reader, source model.Source) ([]model.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // tolerate ragged rows

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			// Exports written with a UTF-8 BOM keep it glued to the
			// first header cell.
			name = strings.TrimPrefix(name, "\uFEFF")
		}
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	if _, ok := columns["title"]; !ok {
		return nil, ErrMissingTitleColumn
	}

	field := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	var records []model.RawRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		records = append(records, model.RawRecord{
			Title:             field(row, "title"),
			URL:               field(row, "url"),
			PublicationDate:   field(row, "publication_date"),
			IssuingDepartment: field(row, "issuing_department"),
			FullText:          field(row, "full_text"),
			Source:            source,
		})
	}
	return records, nil
}
