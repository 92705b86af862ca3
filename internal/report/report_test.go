package report_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/KaramelBytes/csvreport-cli/internal/analysis"
	"github.com/KaramelBytes/csvreport-cli/internal/charts"
	"github.com/KaramelBytes/csvreport-cli/internal/report"
	"github.com/google/go-cmp/cmp"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func summarize(t *testing.T, content string) *analysis.Summary {
	t.Helper()
	p := filepath.Join(t.TempDir(), "sales.csv")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := analysis.AnalyzeCSV(p, analysis.DefaultOptions())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	return s
}

func TestComposeTemplate(t *testing.T) {
	s := summarize(t, "id,value\nA,10\nB,20\nA,30\nC,40\n")
	doc := report.Compose(s, []string{"charts/histogram.png", "charts/piechart.png"}, fixedNow)

	want := []string{
		"Data Analysis Report",
		"File: sales.csv",
		"Generated: 2026-03-14",
		"1. Data Summary",
		"Number of rows: 4",
		"Number of columns: 2",
		"Columns: id, value",
		"2. Statistical Analysis",
		"Statistics for value:",
		"min: 10.00",
		"max: 40.00",
		"mean: 25.00",
		"median: 25.00",
		"3. Visualizations",
		"Chart 1:",
		"Chart 2:",
	}
	if diff := cmp.Diff(want, doc.Lines()); diff != "" {
		t.Fatalf("lines (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"charts/histogram.png", "charts/piechart.png"}, doc.Images()); diff != "" {
		t.Fatalf("images (-want +got):\n%s", diff)
	}
}

func TestComposeTruncatesColumnsAndOmitsVisualizations(t *testing.T) {
	s := summarize(t, "a,b,c,d,e,f\nx,1,2,3,4,5\n")
	doc := report.Compose(s, nil, fixedNow)
	lines := doc.Lines()
	if !contains(lines, "Columns: a, b, c, d, e...") {
		t.Fatalf("missing truncated column list: %v", lines)
	}
	for _, l := range lines {
		if strings.HasPrefix(l, "3. Visualizations") || strings.HasPrefix(l, "Chart ") {
			t.Fatalf("visualizations should be omitted, got %q", l)
		}
	}
	if len(doc.Images()) != 0 {
		t.Fatalf("expected no images")
	}
	if !contains(lines, "Statistics for f:") || contains(lines, "Statistics for a:") {
		t.Fatalf("statistics should cover numeric columns only: %v", lines)
	}
}

func TestComposeRoundsForDisplayOnly(t *testing.T) {
	s := summarize(t, "v\n1\n2\n2\n")
	doc := report.Compose(s, nil, fixedNow)
	if !contains(doc.Lines(), "mean: 1.67") {
		t.Fatalf("mean not rounded to two places: %v", doc.Lines())
	}
	if got := s.Stats["v"].Mean; got == 1.67 {
		t.Fatalf("stored mean should stay unrounded, got %v", got)
	}
}

func TestBuildWritesPDF(t *testing.T) {
	s := summarize(t, "id,value\nA,10\nB,20\nA,30\nC,40\n")
	dir := t.TempDir()
	paths, err := charts.Build(s.Table, filepath.Join(dir, "charts"), charts.DefaultOptions())
	if err != nil {
		t.Fatalf("charts: %v", err)
	}
	out := filepath.Join(dir, "report.pdf")
	got, err := report.Build(s, paths, out, report.Options{Now: func() time.Time { return fixedNow }})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got != out {
		t.Fatalf("output = %q, want %q", got, out)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Fatalf("not a PDF")
	}
	for _, want := range []string{"(Data Analysis Report)", "(Columns: id, value)", "(mean: 25.00)", "(Chart 2:)"} {
		if !bytes.Contains(b, []byte(want)) {
			t.Fatalf("uncompressed PDF missing %s", want)
		}
	}
}

func TestBuildMissingAsset(t *testing.T) {
	s := summarize(t, "v\n1\n")
	dir := t.TempDir()
	out := filepath.Join(dir, "report.pdf")
	_, err := report.Build(s, []string{filepath.Join(dir, "gone.png")}, out, report.DefaultOptions())
	var me *report.MissingAssetError
	if !errors.As(err, &me) {
		t.Fatalf("got %v, want MissingAssetError", err)
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("report should not be written: %v", err)
	}
}

func TestBuildUnwritableDestination(t *testing.T) {
	s := summarize(t, "v\n1\n")
	out := filepath.Join(t.TempDir(), "no", "such", "dir", "report.pdf")
	_, err := report.Build(s, nil, out, report.DefaultOptions())
	var we *report.WriteError
	if !errors.As(err, &we) {
		t.Fatalf("got %v, want WriteError", err)
	}
	if we.Path != out {
		t.Fatalf("error path = %q, want %q", we.Path, out)
	}
}

func contains(lines []string, want string) bool {
	for _, l := range lines {
		if l == want {
			return true
		}
	}
	return false
}
