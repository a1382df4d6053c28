package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded pipeline runs",
	Long: `Lists pipeline run audit records, newest first. Use "runs show" to
inspect a single run's stage results.`,
	RunE: runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run with its stage results",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var flagRunsLimit int

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "maximum number of runs to list")
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}

func runRunsList(cmd *cobra.Command, _ []string) error {
	if runStore == nil {
		return errors.New("run store not configured")
	}

	runs, err := runStore.ListRuns(cmd.Context(), flagRunsLimit)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}
	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	cmd.Println(renderRunList(runs))
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	if runStore == nil {
		return errors.New("run store not configured")
	}

	run, results, err := runStore.GetRun(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("loading run: %w", err)
	}

	cmd.Println(renderRunDetail(*run, results))
	return nil
}
