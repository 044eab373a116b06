package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeRunFixtures(t *testing.T) (configPath, outputDir, dbDir string) {
	t.Helper()

	dir := t.TempDir()
	batchPath := filepath.Join(dir, "cac.csv")
	batch := "title,url,publication_date,issuing_department,full_text\n" +
		"关于《生成式人工智能服务管理暂行办法》的通知,https://example.gov.cn/1,2023-07-10,网信办,人工智能大模型算法监管要求，违反者依法处罚。\n" +
		"转发《生成式人工智能服务管理暂行办法》,https://example.gov.cn/2,2023-01-01,网信办,人工智能大模型算法监管要求，违反者依法处罚。\n" +
		"春季植树活动安排,https://example.gov.cn/3,2023-03-01,绿化委员会,春季植树活动安排。\n" +
		"日期错误的文件,https://example.gov.cn/4,2023/05/01,网信办,人工智能监管。\n"
	if err := os.WriteFile(batchPath, []byte(batch), 0600); err != nil {
		t.Fatalf("write batch fixture: %v", err)
	}

	configPath = filepath.Join(dir, ".regwatch")
	cfg := "sources:\n  - name: cac\n    path: " + batchPath + "\n"
	if err := os.WriteFile(configPath, []byte(cfg), 0600); err != nil {
		t.Fatalf("write config fixture: %v", err)
	}

	return configPath, filepath.Join(dir, "out"), filepath.Join(dir, "db")
}

// TestRunCommandEndToEnd tests a full pipeline run through the CLI.
func TestRunCommandEndToEnd(t *testing.T) {
	t.Parallel()

	configPath, outputDir, dbDir := writeRunFixtures(t)

	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"run", "-c", configPath, "-o", outputDir, "--db-dir", dbDir})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("run failed: %v\noutput:\n%s", err, buf.String())
	}

	out := buf.String()
	for _, want := range []string{
		"Loaded 1 source batches (0 failed)",
		"Analyzed 1 policies (dropped 1, duplicates 1, filtered 1)",
		"Run saved to store",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	for _, name := range []string{csvArtifact, jsonArtifact, metadataArtifact, summaryArtifact} {
		if _, err := os.Stat(filepath.Join(outputDir, name)); err != nil {
			t.Errorf("artifact %s not written: %v", name, err)
		}
	}

	// The newest duplicate survives into the CSV artifact.
	data, err := os.ReadFile(filepath.Join(outputDir, csvArtifact))
	if err != nil {
		t.Fatalf("read csv artifact: %v", err)
	}
	if !strings.Contains(string(data), "https://example.gov.cn/1") {
		t.Errorf("csv artifact missing the surviving record:\n%s", data)
	}
	if strings.Contains(string(data), "https://example.gov.cn/2") {
		t.Errorf("csv artifact should not carry the older duplicate:\n%s", data)
	}

	store, err := openReadOnlyStore(dbDir)
	if err != nil {
		t.Fatalf("open store after run: %v", err)
	}
	defer store.Close() //nolint:errcheck // test cleanup

	run, err := store.LatestRun(context.Background())
	if err != nil {
		t.Fatalf("latest run: %v", err)
	}
	if len(run.Records) != 1 {
		t.Errorf("stored run has %d records, expected 1", len(run.Records))
	}
}

// TestRunCommandNoDB tests that --no-db skips the run store.
func TestRunCommandNoDB(t *testing.T) {
	t.Parallel()

	configPath, outputDir, dbDir := writeRunFixtures(t)

	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"run", "-c", configPath, "-o", outputDir, "--db-dir", dbDir, "--no-db"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if strings.Contains(buf.String(), "Run saved to store") {
		t.Error("run should not be saved with --no-db")
	}
	if _, err := os.Stat(dbDir); !os.IsNotExist(err) {
		t.Errorf("store directory should not be created, stat err = %v", err)
	}
}

// TestRunCommandMissingConfigFile tests that an explicit missing config path
// is an error.
func TestRunCommandMissingConfigFile(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "-c", filepath.Join(t.TempDir(), "absent.yaml")})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for a missing explicit config file")
	}
}

// TestRunCommandAllSourcesMissing tests that a run with no loadable batch
// fails.
func TestRunCommandAllSourcesMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".regwatch")
	cfg := "sources:\n  - name: cac\n    path: " + filepath.Join(dir, "nope.csv") + "\n"
	if err := os.WriteFile(configPath, []byte(cfg), 0600); err != nil {
		t.Fatalf("write config fixture: %v", err)
	}

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "-c", configPath, "-o", filepath.Join(dir, "out"), "--no-db"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error when no source batch loads")
	}
}
