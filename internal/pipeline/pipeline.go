package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/KaramelBytes/csvreport-cli/internal/analysis"
	"github.com/KaramelBytes/csvreport-cli/internal/charts"
	"github.com/KaramelBytes/csvreport-cli/internal/report"
	"github.com/dustin/go-humanize"
)

const (
	DefaultChartsDir = "charts"
	DefaultOutput    = "report.pdf"
)

// Options carries every parameter of a run so it can be driven without a console.
type Options struct {
	// ChartsDir receives histogram.png and piechart.png.
	ChartsDir string
	// Output is the report path.
	Output   string
	Analysis analysis.Options
	Charts   charts.Options
	Report   report.Options
	// Progress receives the human-readable stage lines; nil discards them.
	Progress io.Writer
	Logger   *slog.Logger
}

// DefaultOptions writes charts under "charts" and the report to "report.pdf".
func DefaultOptions() Options {
	return Options{
		ChartsDir: DefaultChartsDir,
		Output:    DefaultOutput,
		Analysis:  analysis.DefaultOptions(),
		Charts:    charts.DefaultOptions(),
		Report:    report.DefaultOptions(),
	}
}

// Result is what a successful run produced.
type Result struct {
	Summary *analysis.Summary
	Charts  []string
	Output  string
}

// Run analyzes input, renders charts and writes the PDF report, in that order.
// The first failing stage's error is returned as is.
func Run(input string, opt Options) (*Result, error) {
	progress := opt.Progress
	if progress == nil {
		progress = io.Discard
	}
	log := opt.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opt.ChartsDir == "" {
		opt.ChartsDir = DefaultChartsDir
	}
	if opt.Output == "" {
		opt.Output = DefaultOutput
	}

	fmt.Fprintln(progress, "Analyzing data...")
	sum, err := analysis.AnalyzeCSV(input, opt.Analysis)
	if err != nil {
		return nil, err
	}
	log.Debug("analyzed input",
		slog.String("file", sum.SourceName),
		slog.Int("rows", sum.RowCount),
		slog.Int("columns", sum.ColumnCount),
		slog.Int("numeric", len(sum.NumericColumns)))

	fmt.Fprintln(progress, "Creating charts...")
	paths, err := charts.Build(sum.Table, opt.ChartsDir, opt.Charts)
	if err != nil {
		return nil, err
	}
	log.Debug("rendered charts", slog.String("dir", opt.ChartsDir), slog.Any("charts", paths))

	fmt.Fprintln(progress, "Generating PDF report...")
	out, err := report.Build(sum, paths, opt.Output, opt.Report)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(out); err == nil {
		log.Debug("wrote report", slog.String("path", out), slog.String("size", humanize.Bytes(uint64(info.Size()))))
	}
	return &Result{Summary: sum, Charts: paths, Output: out}, nil
}
