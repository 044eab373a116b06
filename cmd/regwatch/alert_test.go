package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/arpi-platform/regwatch/internal/database"
	"github.com/arpi-platform/regwatch/internal/model"
)

// seedRunStore saves one run with the given records into a store under dir.
func seedRunStore(t *testing.T, dir string, records []model.AnnotatedRecord) {
	t.Helper()

	store, err := database.Open(dir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close() //nolint:errcheck // test cleanup

	result := &model.RunResult{
		GeneratedAt:        time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC),
		Records:            records,
		MaxPublicationDate: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		SourcesLoaded:      3,
		PerformedStages:    []string{"canonicalize", "deduplicate", "relevance_filter", "unify_departments", "annotate"},
	}
	if _, err := store.SaveRun(context.Background(), result); err != nil {
		t.Fatalf("seed run: %v", err)
	}
}

func annotated(title, department string, date time.Time, score float64, domains ...string) model.AnnotatedRecord {
	rec := model.AnnotatedRecord{}
	rec.Title = title
	rec.URL = "https://example.gov.cn/" + title
	rec.PublicationDate = date
	rec.UnifiedDepartment = department
	rec.RegulatoryScore = score
	rec.IdentifiedDomains = domains
	rec.EnforcementLevel = model.EnforcementAdministrativeRule
	rec.HasPenalties = true
	return rec
}

// TestAlertCommand tests the alert report over a seeded run.
func TestAlertCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seedRunStore(t, dir, []model.AnnotatedRecord{
		annotated("高风险算法规定", "国家互联网信息办公室", time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), 9.2, "算法透明度"),
		annotated("一般性指导意见", "国家互联网信息办公室", time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC), 5.0, "生成式AI"),
	})

	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"alert", "--db-dir", dir})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("alert failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "预警数量: 1") {
		t.Errorf("expected one alert:\n%s", out)
	}
	if !strings.Contains(out, "高风险算法规定") {
		t.Errorf("alert title missing:\n%s", out)
	}
	if strings.Contains(out, "一般性指导意见") {
		t.Errorf("below-threshold record should not alert:\n%s", out)
	}
}

// TestAlertCommandThresholdFlag tests raising the threshold via flag.
func TestAlertCommandThresholdFlag(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seedRunStore(t, dir, []model.AnnotatedRecord{
		annotated("高风险算法规定", "国家互联网信息办公室", time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), 9.2, "算法透明度"),
	})

	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"alert", "--db-dir", dir, "--threshold", "9.5"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("alert failed: %v", err)
	}

	if !strings.Contains(buf.String(), "当前没有高风险政策预警。") {
		t.Errorf("expected the empty-report body:\n%s", buf.String())
	}
}

// TestAlertCommandJSON tests the machine-readable alert output.
func TestAlertCommandJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seedRunStore(t, dir, []model.AnnotatedRecord{
		annotated("高风险算法规定", "国家互联网信息办公室", time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), 9.2, "算法透明度"),
	})

	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"alert", "--db-dir", dir, "--json"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("alert failed: %v", err)
	}

	var alerts []model.AlertRecord
	if err := json.Unmarshal(buf.Bytes(), &alerts); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(alerts) != 1 || alerts[0].Title != "高风险算法规定" {
		t.Errorf("alerts = %+v", alerts)
	}
	if alerts[0].RegulatoryScore != 9.2 {
		t.Errorf("score = %v", alerts[0].RegulatoryScore)
	}
}

// TestAlertCommandInvalidThreshold tests threshold range validation.
func TestAlertCommandInvalidThreshold(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"alert", "--db-dir", t.TempDir(), "--threshold", "0.5"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for an out-of-range threshold")
	}
}

// TestAlertCommandNoStore tests the guidance error for a missing store.
func TestAlertCommandNoStore(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"alert", "--db-dir", t.TempDir()})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected an error without a saved run")
	}
	if !strings.Contains(err.Error(), "regwatch run") {
		t.Errorf("error should point at 'regwatch run': %v", err)
	}
}
