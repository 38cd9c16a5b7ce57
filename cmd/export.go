package cmd

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/lol-coach/internal/model"
)

var (
	exportSince    int
	exportOut      string
	exportHalfLife float64
)

// playerProfile is the JSON written by export.
//
// Category scores are recency-weighted means over the window; error rates are
// plain per-match averages over every stored analysis of the player.
type playerProfile struct {
	PUUID           string                      `json:"puuid"`
	GeneratedAt     string                      `json:"generated_at"`
	WindowDays      int                         `json:"window_days"`
	HalfLifeDays    float64                     `json:"half_life_days"`
	MatchCount      int                         `json:"match_count"`
	WinRate         float64                     `json:"win_rate"`
	OverallScore    float64                     `json:"overall_score"`
	CategoryScores  map[model.Category]float64  `json:"category_scores"`
	WeakestCategory model.Category              `json:"weakest_category"`
	ErrorsPerMatch  map[model.ErrorType]float64 `json:"errors_per_match"`
}

var exportCmd = &cobra.Command{
	Use:   "export <puuid>",
	Short: "Export a recency-weighted player profile as JSON",
	Long: `Summarizes every stored analysis of a player inside the look-back window
into one JSON profile. Recent matches weigh more: a match analyzed
--half-life days ago counts half as much as one analyzed today.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().IntVar(&exportSince, "since", 90, "look-back window in days")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file path (default: stdout)")
	exportCmd.Flags().Float64Var(&exportHalfLife, "half-life", 14,
		"temporal decay half-life in days (0 = uniform weights)")
}

func runExport(_ *cobra.Command, args []string) error {
	puuid := args[0]
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	points, err := db.GetPlayerTrend(puuid)
	if err != nil {
		return fmt.Errorf("query trend: %w", err)
	}
	now := time.Now().UTC()
	total := len(points)
	points = withinWindow(points, now.AddDate(0, 0, -exportSince))
	if len(points) == 0 {
		return fmt.Errorf("no analyses for %s in the last %d days", puuid, exportSince)
	}
	counts, err := db.ErrorTypeCounts(puuid)
	if err != nil {
		return fmt.Errorf("query error counts: %w", err)
	}

	profile := buildProfile(puuid, points, counts, total, now, exportHalfLife)
	profile.WindowDays = exportSince

	out := os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOut, err)
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(profile); err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if exportOut != "" {
		fmt.Fprintf(os.Stderr, "Wrote %s (%d matches)\n", exportOut, profile.MatchCount)
	}
	return nil
}

// withinWindow drops points analyzed before since. Points with an unreadable
// timestamp are kept.
func withinWindow(points []model.TrendPoint, since time.Time) []model.TrendPoint {
	var out []model.TrendPoint
	for _, p := range points {
		if t, err := time.Parse(time.RFC3339, p.AnalyzedAt); err == nil && t.Before(since) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// matchWeights returns exp(-ln(2)/halfLife * days_before_ref) per match.
// halfLife <= 0 returns uniform weights of 1.0.
func matchWeights(points []model.TrendPoint, refDate time.Time, halfLife float64) []float64 {
	weights := make([]float64, len(points))
	for i := range weights {
		weights[i] = 1.0
	}
	if halfLife <= 0 {
		return weights
	}
	lambda := math.Log(2) / halfLife
	for i, p := range points {
		analyzed, err := time.Parse(time.RFC3339, p.AnalyzedAt)
		if err != nil {
			continue
		}
		days := refDate.Sub(analyzed).Hours() / 24
		if days < 0 {
			days = 0
		}
		weights[i] = math.Exp(-lambda * days)
	}
	return weights
}

// buildProfile aggregates points into a profile. counts covers all
// totalMatches stored analyses, not just the window.
func buildProfile(puuid string, points []model.TrendPoint, counts map[model.ErrorType]int, totalMatches int, now time.Time, halfLife float64) playerProfile {
	weights := matchWeights(points, now, halfLife)

	profile := playerProfile{
		PUUID:          puuid,
		GeneratedAt:    now.Format(time.RFC3339),
		HalfLifeDays:   halfLife,
		MatchCount:     len(points),
		CategoryScores: make(map[model.Category]float64),
		ErrorsPerMatch: make(map[model.ErrorType]float64),
	}

	var wins, overall, totalW float64
	catSum := make(map[model.Category]float64)
	catW := make(map[model.Category]float64)
	for i, p := range points {
		w := weights[i]
		totalW += w
		overall += w * float64(p.OverallScore)
		if p.Win {
			wins++
		}
		for cat, v := range p.CategoryScores {
			catSum[cat] += w * float64(v)
			catW[cat] += w
		}
	}
	if totalW > 0 {
		profile.OverallScore = roundTo2dp(overall / totalW)
	}
	profile.WinRate = roundTo2dp(wins / float64(len(points)))

	weakest := math.Inf(1)
	for _, cat := range model.Categories {
		if catW[cat] == 0 {
			continue
		}
		v := roundTo2dp(catSum[cat] / catW[cat])
		profile.CategoryScores[cat] = v
		if v < weakest {
			weakest = v
			profile.WeakestCategory = cat
		}
	}
	if totalMatches > 0 {
		for typ, n := range counts {
			profile.ErrorsPerMatch[typ] = roundTo2dp(float64(n) / float64(totalMatches))
		}
	}
	return profile
}

func roundTo2dp(v float64) float64 {
	return math.Round(v*100) / 100
}
