package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hanbit-labs/newsrank-cli/internal/core/domain"
	"github.com/hanbit-labs/newsrank-cli/internal/core/ports/driving"
)

// Single-stage commands for reprocessing one step of a window without
// rerunning its predecessors.
var (
	normalizeCmd = &cobra.Command{
		Use:   "normalize <window>",
		Short: "Clean, filter, and deduplicate a window's raw articles",
		Args:  cobra.ExactArgs(1),
		RunE:  stageRunner(domain.StageNormalize),
	}

	classifyCmd = &cobra.Command{
		Use:   "classify <window>",
		Short: "Assign taxonomy categories to a window's cleaned articles",
		Args:  cobra.ExactArgs(1),
		RunE:  stageRunner(domain.StageClassify),
	}

	criticalityCmd = &cobra.Command{
		Use:   "criticality <window>",
		Short: "Score policy criticality for a window's classified articles",
		Args:  cobra.ExactArgs(1),
		RunE:  stageRunner(domain.StageCriticality),
	}

	rankCmd = &cobra.Command{
		Use:   "rank <window>",
		Short: "Rank a window's articles by impact and write the report",
		Args:  cobra.ExactArgs(1),
		RunE:  stageRunner(domain.StageRank),
	}
)

func init() {
	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(criticalityCmd)
	rootCmd.AddCommand(rankCmd)
}

// stageRunner builds the RunE shared by the single-stage commands.
func stageRunner(stage domain.Stage) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if pipelineService == nil {
			return errors.New("pipeline service not configured")
		}

		window, err := domain.ParseWindow(args[0])
		if err != nil {
			return err
		}

		cmd.Printf("Running %s for window %s...\n", stage, window.Token())
		outcome, err := pipelineService.RunStage(cmd.Context(), stage, window)
		if err != nil {
			return fmt.Errorf("%s failed: %w", stage, err)
		}
		printOutcomes(cmd, []driving.StageOutcome{outcome})
		return nil
	}
}
