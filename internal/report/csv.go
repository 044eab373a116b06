package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arpi-platform/regwatch/internal/model"
)

// csvHeader is the column layout of the annotated table artifact.
// Downstream consumers key on these names; the order is part of the format.
var csvHeader = []string{
	"title",
	"url",
	"publication_date",
	"issuing_department",
	"unified_department",
	"source",
	"core_title",
	"ai_relevance_score",
	"regulatory_score",
	"identified_domains",
	"enforcement_level",
	"has_penalties",
	"has_deadlines",
	"urgency_indicators",
	"content_length",
}

// CSVWriter outputs the annotated record set as a CSV table, one row per
// record in final run order. Multi-valued domains are joined with ";" so
// the table stays one row per record.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the annotated table. The byte count is computed through a
// counting wrapper because encoding/csv does not report write sizes.
func (w *CSVWriter) Write(result *model.RunResult) (int, error) {
	counter := &countingWriter{w: w.output}
	cw := csv.NewWriter(counter)

	if err := cw.Write(csvHeader); err != nil {
		return counter.n, fmt.Errorf("write csv header: %w", err)
	}

	for _, rec := range result.Records {
		row := []string{
			rec.Title,
			rec.URL,
			rec.PublicationDate.Format(model.DateFormat),
			rec.IssuingDepartment,
			rec.UnifiedDepartment,
			string(rec.Source),
			rec.GroupKey,
			strconv.Itoa(rec.RelevanceScore),
			formatScore(rec.RegulatoryScore),
			strings.Join(rec.IdentifiedDomains, ";"),
			rec.EnforcementLevel.String(),
			strconv.FormatBool(rec.HasPenalties),
			strconv.FormatBool(rec.HasDeadlines),
			strconv.Itoa(rec.UrgencyIndicators),
			strconv.Itoa(rec.ContentLength),
		}
		if err := cw.Write(row); err != nil {
			return counter.n, fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return counter.n, fmt.Errorf("flush csv: %w", err)
	}
	return counter.n, nil
}

// formatScore renders a regulatory score with the shortest exact decimal
// representation, so 8 stays "8" and 7.5 stays "7.5".
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
