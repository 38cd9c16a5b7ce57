package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/lol-coach/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored analyses",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	list, err := db.ListAnalyses()
	if err != nil {
		return fmt.Errorf("list analyses: %w", err)
	}
	if len(list) == 0 {
		fmt.Fprintln(os.Stdout, "No analyses stored yet. Run 'lolcoach analyze <match.json> <timeline.json> --puuid <puuid>' to add one.")
		return nil
	}
	report.PrintAnalysisList(os.Stdout, list)
	return nil
}
