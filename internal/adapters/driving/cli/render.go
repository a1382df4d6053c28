package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/hanbit-labs/newsrank-cli/internal/core/domain"
	"github.com/hanbit-labs/newsrank-cli/internal/core/ports/driving"
)

// Terminal styles for tabular output.
var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// printOutcomes writes per-stage record counts after a pipeline run.
func printOutcomes(cmd *cobra.Command, outcomes []driving.StageOutcome) {
	for _, o := range outcomes {
		cmd.Printf("  %-12s %d in, %d out\n", o.Stage, o.InCount, o.OutCount)
	}
}

// renderImpactReport formats the ranked report, top impact first.
func renderImpactReport(window domain.Window, records []domain.ImpactRecord) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Impact report "+window.Token()) + "\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%4s %8s %8s %-14s %s", "Rank", "Impact", "Crit", "Category", "Title")))
	b.WriteString("\n")
	for i, rec := range records {
		b.WriteString(fmt.Sprintf("%4d %8.4f %8.4f %-14s %s\n",
			i+1, rec.ImpactScore, rec.Criticality, rec.Classification.Major, rec.Classification.Article.Title))
		b.WriteString(mutedStyle.Render(fmt.Sprintf("     %s  %s  %d similar",
			rec.Classification.Article.Date.Format("2006-01-02"), rec.Classification.Article.Outlet, rec.SimilarCount)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderCategoryScores formats the RFC aggregate as an aligned table,
// highest score first.
func renderCategoryScores(scores []domain.CategoryScore) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-20s %8s %8s %8s %8s %10s", "Category", "RFC", "Recency", "Freq", "Crit", "Articles")))
	b.WriteString("\n")
	for _, s := range scores {
		b.WriteString(fmt.Sprintf("%-20s %8.4f %8.4f %8.4f %8.4f %10d\n",
			s.Major, s.RFC, s.Recency, s.Frequency, s.Criticality, s.ArticleCount))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderRunList formats the run audit list, newest first.
func renderRunList(runs []domain.Run) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-36s %-19s %-10s %s", "ID", "Window", "Status", "Started")))
	b.WriteString("\n")
	for _, r := range runs {
		b.WriteString(fmt.Sprintf("%-36s %-19s %-10s %s\n",
			r.ID, r.Window, renderStatus(r.Status), r.StartedAt.Format(time.DateTime)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderRunDetail formats one run with its stage results.
func renderRunDetail(run domain.Run, results []domain.StageResult) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Run "+run.ID) + "\n")
	b.WriteString(fmt.Sprintf("Window:  %s\n", run.Window))
	b.WriteString(fmt.Sprintf("Status:  %s\n", renderStatus(run.Status)))
	b.WriteString(fmt.Sprintf("Started: %s\n", run.StartedAt.Format(time.DateTime)))
	if !run.EndedAt.IsZero() {
		b.WriteString(fmt.Sprintf("Ended:   %s\n", run.EndedAt.Format(time.DateTime)))
	}
	if run.Error != "" {
		b.WriteString(fmt.Sprintf("Error:   %s\n", failStyle.Render(run.Error)))
	}

	if len(results) == 0 {
		b.WriteString(mutedStyle.Render("No stage results recorded."))
		return strings.TrimRight(b.String(), "\n")
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-12s %8s %8s %10s %s", "Stage", "In", "Out", "Duration", "Result")))
	b.WriteString("\n")
	for _, r := range results {
		result := okStyle.Render("ok")
		if !r.Success {
			result = failStyle.Render(r.Error)
		}
		b.WriteString(fmt.Sprintf("%-12s %8d %8d %10s %s\n",
			r.Stage, r.InCount, r.OutCount, r.Duration.Round(time.Millisecond), result))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderStatus(status domain.RunStatus) string {
	switch status {
	case domain.RunStatusCompleted:
		return okStyle.Render(string(status))
	case domain.RunStatusFailed:
		return failStyle.Render(string(status))
	default:
		return string(status)
	}
}
