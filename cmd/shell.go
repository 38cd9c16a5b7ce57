package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/lol-coach/internal/report"
	"github.com/pable/lol-coach/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the database. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(_ *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cGreeting.Println("lolcoach shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("lolcoach")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		cmd, args := tokens[0], tokens[1:]

		switch cmd {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "list":
			shellList(db)
		case "show":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: show <match-id-prefix>")
				continue
			}
			if err := showByPrefix(db, args[0]); err != nil {
				cError.Fprintf(os.Stderr, "error: %v\n", err)
			}
		case "trend":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: trend <puuid>")
				continue
			}
			if err := showTrend(db, args[0]); err != nil {
				cError.Fprintf(os.Stderr, "error: %v\n", err)
			}
		case "sql":
			shellSQL(db, strings.TrimSpace(strings.TrimPrefix(line, cmd)))
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", cmd)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "list all stored analyses"},
		{"show <match-id-prefix>", "show a stored analysis"},
		{"trend <puuid>", "category scores over time for one player"},
		{"sql <query>", "run a raw query against the database"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-28s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func shellList(db *storage.DB) {
	list, err := db.ListAnalyses()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(list) == 0 {
		cMuted.Println("No analyses stored yet.")
		return
	}
	report.PrintAnalysisList(os.Stdout, list)
}

func shellSQL(db *storage.DB, query string) {
	if query == "" {
		cError.Fprintln(os.Stderr, "usage: sql <query>")
		return
	}
	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(rows) == 0 {
		cMuted.Println("(no rows)")
		return
	}
	report.PrintRaw(os.Stdout, cols, rows)
}
