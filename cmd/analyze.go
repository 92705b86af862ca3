package cmd

import (
	"fmt"

	"github.com/KaramelBytes/csvreport-cli/internal/analysis"
	"github.com/spf13/cobra"
)

var anaDelimiter string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Print the dataset summary of a CSV/TSV without rendering charts or a report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		delim, err := currentConfig().DelimiterRune()
		if err != nil {
			return err
		}
		opt := analysis.Options{Delimiter: delim}
		if anaDelimiter != "" {
			switch anaDelimiter {
			case ",":
				opt.Delimiter = ','
			case "\t", "tab":
				opt.Delimiter = '\t'
			case ";":
				opt.Delimiter = ';'
			default:
				return fmt.Errorf("unsupported --delimiter: %s", anaDelimiter)
			}
		}
		sum, err := analysis.AnalyzeCSV(args[0], opt)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), sum.Text())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&anaDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (overrides config)")
}
