package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hanbit-labs/newsrank-cli/internal/core/domain"
)

var reportCmd = &cobra.Command{
	Use:   "report <window>",
	Short: "Show a window's ranked impact report",
	Long: `Prints the ranked impact report the rank stage wrote for a window.
Use --json for machine-readable output.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

var flagReportJSON bool

func init() {
	reportCmd.Flags().BoolVar(&flagReportJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(reportCmd)
}

// reportEntry is the JSON shape of one ranked article.
type reportEntry struct {
	Rank           int     `json:"rank"`
	ID             string  `json:"id"`
	Date           string  `json:"date"`
	Outlet         string  `json:"outlet"`
	Title          string  `json:"title"`
	Major          string  `json:"major"`
	Middle         string  `json:"middle"`
	Minor          string  `json:"minor"`
	ImpactScore    float64 `json:"impact_score"`
	Criticality    float64 `json:"criticality"`
	MediaDiversity float64 `json:"media_diversity"`
	FrequencyScore float64 `json:"frequency_score"`
	SimilarCount   int     `json:"similar_count"`
}

func runReport(cmd *cobra.Command, args []string) error {
	if datasetStore == nil {
		return errors.New("dataset store not configured")
	}

	window, err := domain.ParseWindow(args[0])
	if err != nil {
		return err
	}

	records, err := datasetStore.ReadImpactReport(cmd.Context(), window)
	if err != nil {
		return fmt.Errorf("loading report: %w", err)
	}

	if flagReportJSON {
		entries := make([]reportEntry, 0, len(records))
		for i, rec := range records {
			entries = append(entries, reportEntry{
				Rank:           i + 1,
				ID:             rec.Classification.Article.ID,
				Date:           rec.Classification.Article.Date.Format("2006-01-02"),
				Outlet:         rec.Classification.Article.Outlet,
				Title:          rec.Classification.Article.Title,
				Major:          rec.Classification.Major,
				Middle:         rec.Classification.Middle,
				Minor:          rec.Classification.Minor,
				ImpactScore:    rec.ImpactScore,
				Criticality:    rec.Criticality,
				MediaDiversity: rec.MediaDiversity,
				FrequencyScore: rec.FrequencyScore,
				SimilarCount:   rec.SimilarCount,
			})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(records) == 0 {
		cmd.Println("Report is empty.")
		return nil
	}
	cmd.Println(renderImpactReport(window, records))
	return nil
}
