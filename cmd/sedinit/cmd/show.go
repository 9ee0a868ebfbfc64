package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sedstack/sedinit/internal/report"
)

var reportPath string

var showCmd = &cobra.Command{
	Use:   "show <input>",
	Short: "Set up and print a summary",
	Long: `Run sediment setup against a model input file and print what it produced:
enabled processes, grid dimensions, sediment diameters, road cells and
erosion periods. With --report the summary is also written as YAML.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVarP(&reportPath, "report", "o", "", "write the summary as YAML to this path")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	res, err := runSetup(args[0], out, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	summary := report.Summarize(args[0], res, time.Now())
	fmt.Fprintln(out)
	fmt.Fprint(out, report.Format(summary))

	if reportPath != "" {
		if err := report.Save(reportPath, summary); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nReport written to %s\n", reportPath)
	}
	return nil
}
