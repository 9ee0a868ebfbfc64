package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <input>",
	Short: "Check that a model input sets up cleanly",
	Long: `Run sediment setup against a model input file and report the first problem.

Checks:
- SEDOPTIONS switches are TRUE or FALSE
- PARAMETERS spacing and calibration constants are present and numeric
- SEDTIME periods parse and each ends after it starts
- road buffers fit the configured allocation limit`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if _, err := runSetup(args[0], cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: OK\n", args[0])
	return nil
}
