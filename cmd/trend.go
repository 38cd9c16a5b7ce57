package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/lol-coach/internal/report"
	"github.com/pable/lol-coach/internal/storage"
)

var trendCmd = &cobra.Command{
	Use:   "trend <puuid>",
	Short: "Chronological category scores and recurring mistakes for a player",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrend,
}

func runTrend(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	return showTrend(db, args[0])
}

func showTrend(db *storage.DB, puuid string) error {
	points, err := db.GetPlayerTrend(puuid)
	if err != nil {
		return fmt.Errorf("query trend: %w", err)
	}
	if len(points) == 0 {
		fmt.Println("no analyses found")
		return nil
	}
	counts, err := db.ErrorTypeCounts(puuid)
	if err != nil {
		return fmt.Errorf("query error counts: %w", err)
	}

	report.PrintTrendTable(os.Stdout, points)
	fmt.Fprintln(os.Stdout)
	report.PrintErrorTypeCounts(os.Stdout, counts, len(points))
	return nil
}
