package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/lol-coach/internal/report"
	"github.com/pable/lol-coach/internal/storage"
)

var showCmd = &cobra.Command{
	Use:   "show <match-id-prefix>",
	Short: "Show a stored analysis by match id prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	return showByPrefix(db, args[0])
}

func showByPrefix(db *storage.DB, prefix string) error {
	summary, err := db.GetAnalysisByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query analysis: %w", err)
	}
	if summary == nil {
		fmt.Fprintf(os.Stderr, "No analysis found with match id prefix %q\n", prefix)
		return nil
	}
	rep, err := db.GetReport(summary.MatchID, summary.PUUID)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}
	if rep == nil {
		return fmt.Errorf("report %s missing", summary.MatchID)
	}
	errs, err := db.GetAnalysisErrors(summary.MatchID, summary.PUUID)
	if err != nil {
		return fmt.Errorf("get errors: %w", err)
	}

	report.PrintSummary(os.Stdout, rep)
	cMuted.Fprintf(os.Stdout, "analyzed %s\n", summary.AnalyzedAt)
	report.PrintCategoryScores(os.Stdout, rep.CategoryScores, rep.OverallScore)
	report.PrintErrors(os.Stdout, errs)
	report.PrintTips(os.Stdout, rep.Tips)
	report.PrintClips(os.Stdout, rep.Clips)
	report.PrintRanking(os.Stdout, rep.Scores, rep.Ranking, rep.PUUID)
	return nil
}
