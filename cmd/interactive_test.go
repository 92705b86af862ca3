package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/csvreport-cli/internal/analysis"
	cfgpkg "github.com/KaramelBytes/csvreport-cli/internal/config"
)

// runRoot executes the root command with stdin and returns stdout.
func runRoot(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	// A nil slice makes cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// inTempDir switches the working directory for the duration of the test.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
	return dir
}

func TestInteractiveBlankNameDefaultsToReportPDF(t *testing.T) {
	dir := inTempDir(t)
	if err := os.WriteFile("data.csv", []byte("id,value\nA,10\nB,20\nA,30\nC,40\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := runRoot(t, "data.csv\n\n")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	for _, want := range []string{
		"Simple Data Analysis and Report Generator",
		"Enter the path to your CSV file: ",
		"Enter name for the PDF report (default: report.pdf): ",
		"Analyzing data...",
		"Creating charts...",
		"Generating PDF report...",
		"Report successfully generated: report.pdf",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	for _, p := range []string{"report.pdf", filepath.Join("charts", "histogram.png"), filepath.Join("charts", "piechart.png")} {
		if _, err := os.Stat(filepath.Join(dir, p)); err != nil {
			t.Fatalf("expected %s: %v", p, err)
		}
	}
}

func TestInteractiveCustomName(t *testing.T) {
	inTempDir(t)
	if err := os.WriteFile("nums.csv", []byte("a\n1\n2\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := runRoot(t, "  nums.csv  \nq1.pdf")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Report successfully generated: q1.pdf") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if _, err := os.Stat("q1.pdf"); err != nil {
		t.Fatalf("q1.pdf missing: %v", err)
	}
}

func TestInteractiveMissingFile(t *testing.T) {
	inTempDir(t)
	_, err := runRoot(t, "absent.csv\n\n")
	var fa *analysis.FileAccessError
	if !errors.As(err, &fa) {
		t.Fatalf("got %v, want FileAccessError", err)
	}
	if _, err := os.Stat("report.pdf"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("report.pdf should not exist: %v", err)
	}
}

func TestAnalyzeCommandPrintsSummary(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "m.csv")
	if err := os.WriteFile(p, []byte("id,value\nA,10\nB,30\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := runRoot(t, "", "analyze", p)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !strings.Contains(out, "File: m.csv") || !strings.Contains(out, "- value: numeric") {
		t.Fatalf("unexpected summary:\n%s", out)
	}
}

func TestConfigSetValidates(t *testing.T) {
	c := cfgpkg.Defaults()
	if err := setKey(c, "histogram_bins", "0"); err == nil {
		t.Fatalf("expected error for zero bins")
	}
	if err := setKey(c, "delimiter", "::"); err == nil {
		t.Fatalf("expected error for bad delimiter")
	}
	if c.Delimiter != "," {
		t.Fatalf("bad delimiter should not stick, got %q", c.Delimiter)
	}
	if err := setKey(c, "compress_pdf", "false"); err != nil || c.CompressPDF {
		t.Fatalf("compress_pdf not applied: %v", err)
	}
	if err := setKey(c, "nope", "1"); err == nil {
		t.Fatalf("expected unknown key error")
	}
}
