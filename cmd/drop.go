package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dropForce bool
	dropMatch string
	dropPUUID string
)

// dropCmd deletes one stored analysis or the whole database file.
var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete a stored analysis or the whole database",
	Long: `With --match and --puuid, delete that one analysis. Without them,
permanently delete the SQLite database; all stored analyses will be lost.`,
	Args: cobra.NoArgs,
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
	dropCmd.Flags().StringVar(&dropMatch, "match", "", "match id of a single analysis to delete")
	dropCmd.Flags().StringVar(&dropPUUID, "puuid", "", "player of the analysis to delete")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if dropMatch != "" {
		if dropPUUID == "" {
			return fmt.Errorf("--match needs --puuid")
		}
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		deleted, err := db.DeleteAnalysis(dropMatch, dropPUUID)
		if err != nil {
			return fmt.Errorf("delete analysis: %w", err)
		}
		if !deleted {
			fmt.Fprintf(os.Stdout, "No analysis of %s for that player.\n", dropMatch)
			return nil
		}
		fmt.Fprintf(os.Stdout, "Deleted analysis %s\n", dropMatch)
		return nil
	}

	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if err := os.Remove(dbPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
			return nil
		}
		return fmt.Errorf("remove database: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", dbPath)
	return nil
}
