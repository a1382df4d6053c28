package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var rfcCmd = &cobra.Command{
	Use:   "rfc <range>",
	Short: "Aggregate category RFC scores over a monthly range",
	Long: `Computes Recency-Frequency-Criticality scores per major category
over a YYYYMM-YYYYMM range of completed windows. Every window in the
range must already have its classified and criticality tables; the
result is printed and written as the range's RFCScore table.`,
	Args: cobra.ExactArgs(1),
	RunE: runRFC,
}

func init() {
	rootCmd.AddCommand(rfcCmd)
}

func runRFC(cmd *cobra.Command, args []string) error {
	if rfcService == nil {
		return errors.New("rfc service not configured")
	}

	scores, err := rfcService.Aggregate(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("rfc aggregation failed: %w", err)
	}
	if len(scores) == 0 {
		cmd.Println("No classified articles in range.")
		return nil
	}

	cmd.Println(renderCategoryScores(scores))
	return nil
}
