package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pable/lol-coach/internal/riot"
)

// fetch command flags.
var (
	// fetchOut is the directory payloads are written to.
	fetchOut string
	// fetchPUUID fetches the player's recent ranked matches instead of explicit ids.
	fetchPUUID string
	// fetchCount is the number of recent matches to fetch with --puuid.
	fetchCount int
	// fetchCompress selects the payload encoding: zst or none.
	fetchCompress string
)

// fetchCmd downloads match and timeline payloads from the Riot API.
var fetchCmd = &cobra.Command{
	Use:   "fetch [match-id...]",
	Short: "Download match and timeline payloads from the Riot API",
	Long: `Downloads match-v5 payloads and writes them as
<out>/<id>.match.json.zst and <out>/<id>.timeline.json.zst, ready for
'lolcoach batch'. The API key is read from RIOT_API_KEY, loaded from a .env
file when present.

Examples:
  lolcoach fetch NA1_5012345678 --out matches/
  lolcoach fetch --puuid <puuid> --count 20 --out matches/`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchOut, "out", ".", "output directory")
	fetchCmd.Flags().StringVar(&fetchPUUID, "puuid", "", "fetch this player's recent ranked matches")
	fetchCmd.Flags().IntVar(&fetchCount, "count", 10, "number of recent matches to fetch with --puuid")
	fetchCmd.Flags().StringVar(&fetchCompress, "compress", "zst", "payload encoding: zst or none")
}

func runFetch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && fetchPUUID == "" {
		return fmt.Errorf("pass match ids or --puuid")
	}
	ext := ".json"
	switch fetchCompress {
	case "zst":
		ext = ".json.zst"
	case "none", "":
	default:
		return fmt.Errorf("unknown --compress %q (want zst or none)", fetchCompress)
	}

	loadEnv()
	client, err := riot.NewClient()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ids := args
	if fetchPUUID != "" {
		recent, err := client.GetMatchIDs(ctx, fetchPUUID, fetchCount)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Found %d recent matches\n", len(recent))
		ids = append(ids, recent...)
	}

	if err := os.MkdirAll(fetchOut, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	var failed int
	for i, id := range ids {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Fprintf(os.Stdout, "[%d/%d] %s\n", i+1, len(ids), id)
		if err := fetchOne(ctx, client, id, ext); err != nil {
			cWarn.Fprintf(os.Stderr, "  %v\n", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d matches failed", failed, len(ids))
	}
	return nil
}

func fetchOne(ctx context.Context, client *riot.Client, id, ext string) error {
	matchPath := filepath.Join(fetchOut, id+".match"+ext)
	timelinePath := filepath.Join(fetchOut, id+".timeline"+ext)
	if fileExists(matchPath) && fileExists(timelinePath) {
		cMuted.Fprintln(os.Stdout, "  already downloaded")
		return nil
	}

	match, err := client.GetMatch(ctx, id)
	if err != nil {
		return err
	}
	tl, err := client.GetTimeline(ctx, id)
	if err != nil {
		return err
	}
	if err := riot.SaveJSON(matchPath, match); err != nil {
		return err
	}
	return riot.SaveJSON(timelinePath, tl)
}

// loadEnv loads the first .env file found; a missing file is not an error.
func loadEnv() {
	for _, path := range []string{".env", filepath.Join(mustUserHome(), ".lolcoach", ".env")} {
		if err := godotenv.Load(path); err == nil {
			return
		}
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
