package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/lol-coach/internal/report"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the analysis database",
	Long: `Run an arbitrary SQL query against the analysis database and print results as a table.

Schema overview:
  analyses(match_id, puuid, champion, position, win, duration_sec,
    overall_score, error_count, analyzed_at, report_json)
  analysis_errors(match_id, puuid, seq, type, severity, timestamp_sec,
    title, description, suggestion)
  category_scores(match_id, puuid, category, score)

Example:
  lolcoach sql "SELECT type, COUNT(*) FROM analysis_errors GROUP BY type"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	report.PrintRaw(os.Stdout, cols, rows)
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}
