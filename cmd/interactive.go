package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/csvreport-cli/internal/analysis"
	"github.com/KaramelBytes/csvreport-cli/internal/charts"
	cfgpkg "github.com/KaramelBytes/csvreport-cli/internal/config"
	"github.com/KaramelBytes/csvreport-cli/internal/pipeline"
	"github.com/KaramelBytes/csvreport-cli/internal/report"
	"github.com/spf13/cobra"
)

func runInteractive(cmd *cobra.Command, _ []string) error {
	c := currentConfig()
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Simple Data Analysis and Report Generator")
	input, err := prompt(in, out, "Enter the path to your CSV file: ")
	if err != nil {
		return err
	}
	output, err := prompt(in, out, fmt.Sprintf("Enter name for the PDF report (default: %s): ", c.DefaultOutput))
	if err != nil {
		return err
	}
	if output == "" {
		output = c.DefaultOutput
	}

	opt, err := pipelineOptions(c)
	if err != nil {
		return err
	}
	opt.Output = output
	opt.Progress = out
	opt.Logger = newLogger(cmd.ErrOrStderr())

	res, err := pipeline.Run(input, opt)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Report successfully generated: %s\n", res.Output)
	return nil
}

// prompt prints label and returns the trimmed line typed in reply. End of
// input without a newline counts as the final line.
func prompt(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func pipelineOptions(c *cfgpkg.Global) (pipeline.Options, error) {
	delim, err := c.DelimiterRune()
	if err != nil {
		return pipeline.Options{}, err
	}
	opt := pipeline.DefaultOptions()
	if c.ChartsDir != "" {
		opt.ChartsDir = c.ChartsDir
	}
	if c.DefaultOutput != "" {
		opt.Output = c.DefaultOutput
	}
	opt.Analysis = analysis.Options{Delimiter: delim}
	opt.Charts = charts.Options{Bins: c.HistogramBins, Width: c.ChartWidth, Height: c.ChartHeight}
	ro := report.DefaultOptions()
	ro.Compress = c.CompressPDF
	opt.Report = ro
	return opt, nil
}
