package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/arpi-platform/regwatch/internal/aggregate"
	"github.com/arpi-platform/regwatch/internal/model"
)

// MarkdownWriter outputs a run summary in GitHub Flavored Markdown: run
// information, attrition accounting, the department distribution, and the
// monthly regulatory-intensity trend. Designed for sharing and for
// committing alongside the CSV artifact.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the run summary in Markdown format.
func (w *MarkdownWriter) Write(result *model.RunResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	w.writeAttrition(md, result)
	w.writeDepartments(md, result)
	w.writeTrend(md, result)

	return len(md.String()), md.Build()
}

// writeHeader writes the run information table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.RunResult) {
	md.H1("AI Policy Analysis Report")
	md.PlainText("")

	maxDate := "-"
	if !result.MaxPublicationDate.IsZero() {
		maxDate = result.MaxPublicationDate.Format(model.DateFormat)
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Generated", result.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Policies", strconv.Itoa(len(result.Records))},
			{"Latest Publication", maxDate},
			{"Sources Loaded", strconv.Itoa(result.SourcesLoaded)},
			{"Sources Failed", strconv.Itoa(result.SourcesFailed)},
		},
	})
	md.PlainText("")
}

// writeAttrition writes the per-stage record attrition table.
func (w *MarkdownWriter) writeAttrition(md *markdown.Markdown, result *model.RunResult) {
	md.H2("Record Attrition")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Stage", "Removed"},
		Rows: [][]string{
			{"Missing title", strconv.Itoa(result.DroppedNoTitle)},
			{"Unparseable date", strconv.Itoa(result.DroppedBadDate)},
			{"Duplicates", strconv.Itoa(result.DuplicatesRemoved)},
			{"Relevance filter", strconv.Itoa(result.FilteredOut)},
		},
	})
	md.PlainText("")
}

// writeDepartments writes the department distribution with a pie chart.
func (w *MarkdownWriter) writeDepartments(md *markdown.Markdown, result *model.RunResult) {
	stats := aggregate.DepartmentDistribution(result.Records)
	if len(stats) == 0 {
		return
	}

	md.H2("Department Distribution")
	md.PlainText("")

	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		domains := make([]string, 0, len(s.TopDomains))
		for _, d := range s.TopDomains {
			domains = append(domains, d.Domain)
		}
		rows = append(rows, []string{
			s.Department,
			strconv.Itoa(s.Count),
			formatScore2(s.MeanScore),
			strconv.Itoa(s.HighIntensity),
			strings.Join(domains, ", "),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Department", "Policies", "Mean Score", "High Intensity", "Top Domains"},
		Rows:   rows,
	})

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Policies per Department"),
		piechart.WithShowData(true),
	)
	for _, s := range stats {
		chart.LabelAndIntValue(s.Department, uint64(s.Count)) //nolint:gosec // counts are non-negative
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeTrend writes the monthly regulatory score trend.
func (w *MarkdownWriter) writeTrend(md *markdown.Markdown, result *model.RunResult) {
	trend := aggregate.TemporalTrend(result.Records, aggregate.GranularityMonth)
	if len(trend) == 0 {
		return
	}

	md.H2("Monthly Trend")
	md.PlainText("")

	rows := make([][]string, 0, len(trend))
	for _, p := range trend {
		rows = append(rows, []string{
			p.Period,
			strconv.Itoa(p.Count),
			formatScore2(p.Mean),
			formatScore2(p.Min),
			formatScore2(p.Max),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Month", "Policies", "Mean Score", "Min", "Max"},
		Rows:   rows,
	})
	md.PlainText("")
}

// formatScore2 renders aggregate scores with two decimal places for stable
// table layout.
func formatScore2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
