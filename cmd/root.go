package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/lol-coach/internal/storage"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "lolcoach",
	Short: "League of Legends match coaching tool",
	Long:  "Analyze match timelines for mistakes, highlight clips and performance scores, and keep a history of past analyses.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cError.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".lolcoach", "analyses.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite database")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(shellCmd)
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// openDB creates the database directory if needed and opens the store.
func openDB() (*storage.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}
