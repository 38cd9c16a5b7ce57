package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/lol-coach/internal/analysis"
	"github.com/pable/lol-coach/internal/model"
	"github.com/pable/lol-coach/internal/report"
	"github.com/pable/lol-coach/internal/riot"
	"github.com/pable/lol-coach/internal/storage"
)

var (
	analyzePUUID   string
	analyzeJSON    bool
	analyzeNoStore bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <match.json> <timeline.json>",
	Short: "Analyze one match for one player",
	Long: `Reads a match-v5 match payload and its timeline (plain, .gz or .zst),
runs the detectors, extractor and scorer for the given player, prints the
report and stores it in the database.`,
	Args: cobra.ExactArgs(2),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzePUUID, "puuid", "", "PUUID of the player to coach (required)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the report as JSON instead of tables")
	analyzeCmd.Flags().BoolVar(&analyzeNoStore, "no-store", false, "do not save the report to the database")
	_ = analyzeCmd.MarkFlagRequired("puuid")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	match, err := riot.LoadMatch(args[0])
	if err != nil {
		return fmt.Errorf("load match: %w", err)
	}
	tl, err := riot.LoadTimeline(args[1])
	if err != nil {
		return fmt.Errorf("load timeline: %w", err)
	}

	rep, err := analysis.Analyze(analysis.Input{
		MatchID:  match.Metadata.MatchID,
		PUUID:    analyzePUUID,
		Match:    match,
		Timeline: tl,
	})
	if err != nil {
		return err
	}

	if !analyzeNoStore {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		if err := storeReport(db, rep); err != nil {
			return err
		}
	}

	if analyzeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	printWarnings(rep)
	report.PrintReport(os.Stdout, rep)
	return nil
}

func storeReport(db *storage.DB, rep *model.Report) error {
	if err := db.InsertAnalysis(rep, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("store analysis: %w", err)
	}
	return nil
}

// printWarnings writes degraded-analysis notices to stderr.
func printWarnings(rep *model.Report) {
	for _, w := range rep.Warnings {
		cWarn.Fprintf(os.Stderr, "warning [%s] %s: %s\n", w.Component, w.Code, w.Message)
	}
	for _, f := range rep.Failures {
		cError.Fprintf(os.Stderr, "component %s failed: %s\n", f.Component, f.Reason)
	}
}
