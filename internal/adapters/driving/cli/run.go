package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hanbit-labs/newsrank-cli/internal/core/domain"
)

var runCmd = &cobra.Command{
	Use:   "run <window|range>",
	Short: "Run the full analysis pipeline",
	Long: `Runs all four pipeline stages over an analysis window.

The argument is either a single window token (YYYYMMDD-YYYYMMDD) or a
monthly range (YYYYMM-YYYYMM). A range expands to one calendar-month
window per month and processes them in order, stopping at the first
failure. Completed stages keep their output files either way.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// monthlyRangeLen is the length of a YYYYMM-YYYYMM token.
const monthlyRangeLen = 13

func runRun(cmd *cobra.Command, args []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	token := args[0]
	ctx := cmd.Context()

	if len(token) == monthlyRangeLen {
		cmd.Printf("Running pipeline for range %s...\n", token)
		if err := pipelineService.RunRange(ctx, token); err != nil {
			return fmt.Errorf("pipeline failed: %w", err)
		}
		cmd.Println("Range completed.")
		return nil
	}

	window, err := domain.ParseWindow(token)
	if err != nil {
		return err
	}

	cmd.Printf("Running pipeline for window %s...\n", window.Token())
	outcomes, err := pipelineService.RunWindow(ctx, window)
	printOutcomes(cmd, outcomes)
	if err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}
	cmd.Println("Window completed.")
	return nil
}
