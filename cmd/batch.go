package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/spf13/cobra"

	"github.com/pable/lol-coach/internal/analysis"
	"github.com/pable/lol-coach/internal/report"
	"github.com/pable/lol-coach/internal/riot"
)

var (
	batchPUUID   string
	batchWorkers int
	batchForce   bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Analyze every saved match in a directory",
	Long: `Pairs <id>.match.json[.gz|.zst] with <id>.timeline.json[.gz|.zst] in dir,
skips matches already analyzed for the player, and analyzes the rest in
parallel. Files written by 'lolcoach fetch' follow this layout.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchPUUID, "puuid", "", "PUUID of the player to coach (required)")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 4, "matches analyzed in parallel")
	batchCmd.Flags().BoolVar(&batchForce, "force", false, "re-analyze matches already in the database")
	_ = batchCmd.MarkFlagRequired("puuid")
}

// payloadPair is one match's payload files on disk.
type payloadPair struct {
	MatchID      string
	MatchPath    string
	TimelinePath string
}

var payloadSuffixes = []string{".json", ".json.gz", ".json.zst"}

// splitPayloadName returns the match id and kind ("match" or "timeline") of a
// payload file name.
func splitPayloadName(name string) (id, kind string, ok bool) {
	for _, suffix := range payloadSuffixes {
		base, found := strings.CutSuffix(name, suffix)
		if !found {
			continue
		}
		for _, k := range []string{"match", "timeline"} {
			if id, found := strings.CutSuffix(base, "."+k); found && id != "" {
				return id, k, true
			}
		}
	}
	return "", "", false
}

// pairPayloads scans dir for match/timeline files and returns complete pairs
// sorted by match id, plus the ids that are missing one half.
func pairPayloads(dir string) ([]payloadPair, []string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", dir, err)
	}
	byID := make(map[string]*payloadPair)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		id, kind, ok := splitPayloadName(e.Name())
		if !ok {
			continue
		}
		p := byID[id]
		if p == nil {
			p = &payloadPair{MatchID: id}
			byID[id] = p
		}
		path := filepath.Join(dir, e.Name())
		if kind == "match" {
			p.MatchPath = path
		} else {
			p.TimelinePath = path
		}
	}

	var pairs []payloadPair
	var incomplete []string
	for _, p := range byID {
		if p.MatchPath == "" || p.TimelinePath == "" {
			incomplete = append(incomplete, p.MatchID)
			continue
		}
		pairs = append(pairs, *p)
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].MatchID < pairs[j].MatchID })
	sort.Strings(incomplete)
	return pairs, incomplete, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pairs, incomplete, err := pairPayloads(args[0])
	if err != nil {
		return err
	}
	for _, id := range incomplete {
		cWarn.Fprintf(os.Stderr, "skipping %s: match or timeline file missing\n", id)
	}
	if len(pairs) == 0 {
		fmt.Fprintln(os.Stdout, "No match/timeline pairs found.")
		return nil
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	// Seed the filter with stored analyses; a hit is confirmed against the
	// database since bloom filters can report false positives.
	seen := bloom.NewWithEstimates(100000, 0.001)
	stored, err := db.ListAnalyses()
	if err != nil {
		return fmt.Errorf("list analyses: %w", err)
	}
	for _, s := range stored {
		if s.PUUID == batchPUUID {
			seen.AddString(s.MatchID)
		}
	}

	var inputs []analysis.Input
	skipped := 0
	for _, p := range pairs {
		if !batchForce && seen.TestString(p.MatchID) {
			exists, err := db.AnalysisExists(p.MatchID, batchPUUID)
			if err != nil {
				return fmt.Errorf("check analysis: %w", err)
			}
			if exists {
				skipped++
				continue
			}
		}
		seen.AddString(p.MatchID)

		match, err := riot.LoadMatch(p.MatchPath)
		if err != nil {
			cWarn.Fprintf(os.Stderr, "skipping %s: %v\n", p.MatchID, err)
			continue
		}
		tl, err := riot.LoadTimeline(p.TimelinePath)
		if err != nil {
			cWarn.Fprintf(os.Stderr, "skipping %s: %v\n", p.MatchID, err)
			continue
		}
		inputs = append(inputs, analysis.Input{MatchID: p.MatchID, PUUID: batchPUUID, Match: match, Timeline: tl})
	}
	fmt.Fprintf(os.Stdout, "Analyzing %d matches (%d already stored, %d workers)...\n",
		len(inputs), skipped, batchWorkers)

	results := analysis.AnalyzeBatch(ctx, inputs, batchWorkers)

	var ok int
	for _, r := range results {
		if r.Err != nil {
			cError.Fprintf(os.Stderr, "%s: %v\n", r.MatchID, r.Err)
			continue
		}
		printWarnings(r.Report)
		if err := storeReport(db, r.Report); err != nil {
			return err
		}
		ok++
	}
	fmt.Fprintf(os.Stdout, "Stored %d/%d analyses.\n\n", ok, len(inputs))

	list, err := db.ListAnalyses()
	if err != nil {
		return fmt.Errorf("list analyses: %w", err)
	}
	report.PrintAnalysisList(os.Stdout, list)
	return ctx.Err()
}
