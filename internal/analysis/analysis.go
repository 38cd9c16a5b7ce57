// Package analysis runs the full coaching pipeline for one match: normalize,
// detect, extract, score and pick tips.
package analysis

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/pable/lol-coach/internal/coaching"
	"github.com/pable/lol-coach/internal/detector"
	"github.com/pable/lol-coach/internal/highlight"
	"github.com/pable/lol-coach/internal/model"
	"github.com/pable/lol-coach/internal/riot"
	"github.com/pable/lol-coach/internal/scoring"
	"github.com/pable/lol-coach/internal/timeline"
)

// Component names used in warnings and failures.
const (
	ComponentCS         = "cs"
	ComponentVision     = "vision"
	ComponentObjective  = "objective"
	ComponentHighlights = "highlights"
	ComponentScoring    = "scoring"
	ComponentCoaching   = "coaching"
)

// Penalty subtracted from a category score per error of each severity.
var severityPenalty = map[model.Severity]int{
	model.SeverityCritical: 25,
	model.SeverityHigh:     15,
	model.SeverityMedium:   8,
	model.SeverityLow:      3,
}

const deathPenalty = 8

// Input is one match to analyze for one player.
type Input struct {
	MatchID  string
	PUUID    string
	Match    *riot.MatchResponse
	Timeline *riot.TimelineResponse
}

// Pipeline holds the components Analyze runs. Default wires the real ones.
type Pipeline struct {
	DetectCS         func(*model.Match) detector.Result[model.CSStats]
	DetectVision     func(*model.Match) detector.Result[model.VisionStats]
	DetectObjectives func(*model.Match) detector.Result[model.ObjectiveStats]
	Extract          func(*model.Match, int) highlight.Result
	Score            func([]model.Participant, int) []model.PerformanceScore
	Tips             func([]model.DetectedError, map[model.Category]int) []model.CoachingTip
}

// Default returns the production pipeline.
func Default() *Pipeline {
	return &Pipeline{
		DetectCS:         detector.DetectCS,
		DetectVision:     detector.DetectVision,
		DetectObjectives: detector.DetectObjectives,
		Extract:          highlight.Extract,
		Score:            scoring.Score,
		Tips:             coaching.Aggregate,
	}
}

// Analyze runs the default pipeline.
func Analyze(in Input) (*model.Report, error) {
	return Default().Analyze(in)
}

// Analyze normalizes the payloads and runs every component. A malformed
// timeline is returned as an error; a panicking component is recorded in
// Report.Failures and leaves its output empty.
func (p *Pipeline) Analyze(in Input) (*model.Report, error) {
	m, err := timeline.Normalize(in.Match, in.Timeline, in.PUUID)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", in.MatchID, err)
	}
	if in.MatchID != "" {
		m.MatchID = in.MatchID
	}

	var (
		cs        detector.Result[model.CSStats]
		vision    detector.Result[model.VisionStats]
		objective detector.Result[model.ObjectiveStats]
		hl        highlight.Result
		scores    []model.PerformanceScore
	)
	// One slot per component keeps failure order independent of scheduling.
	failures := make([]*model.ComponentFailure, 5)

	var g errgroup.Group
	g.Go(isolate(ComponentCS, &failures[0], func() { cs = p.DetectCS(m) }))
	g.Go(isolate(ComponentVision, &failures[1], func() { vision = p.DetectVision(m) }))
	g.Go(isolate(ComponentObjective, &failures[2], func() { objective = p.DetectObjectives(m) }))
	g.Go(isolate(ComponentHighlights, &failures[3], func() { hl = p.Extract(m, m.Target.ParticipantID) }))
	g.Go(isolate(ComponentScoring, &failures[4], func() { scores = p.Score(m.Participants, m.DurationSec) }))
	_ = g.Wait() // isolated components never return an error

	rep := &model.Report{
		MatchID:     m.MatchID,
		PUUID:       in.PUUID,
		Champion:    m.Target.ChampionName,
		Position:    m.Target.TeamPosition,
		Win:         m.Target.Win,
		DurationSec: m.DurationSec,
		Errors:      []model.DetectedError{},
		Stats: model.Stats{
			CS:        cs.Stats,
			Vision:    vision.Stats,
			Objective: objective.Stats,
		},
		Highlights: nonNil(hl.Highlights),
		Clips:      nonNil(hl.Clips),
		Scores:     nonNil(scores),
		Ranking:    map[string]int{},
	}
	rep.Errors = append(rep.Errors, cs.Errors...)
	rep.Errors = append(rep.Errors, vision.Errors...)
	rep.Errors = append(rep.Errors, objective.Errors...)
	rep.Warnings = append(rep.Warnings, cs.Warnings...)
	rep.Warnings = append(rep.Warnings, vision.Warnings...)
	rep.Warnings = append(rep.Warnings, objective.Warnings...)
	if len(scores) > 0 {
		rep.Ranking = scoring.Rank(scores)
	}

	deaths := hl.Deaths
	if failures[3] != nil {
		deaths = m.Target.Deaths
	}
	trading := scoring.KDAScore(m.Target.Kills, m.Target.Deaths, m.Target.Assists)
	for _, s := range scores {
		if s.PUUID == in.PUUID {
			trading = s.SubScores.KDA
		}
	}
	rep.CategoryScores = CategoryScores(rep.Errors, deaths, trading)
	rep.OverallScore = Overall(rep.CategoryScores)

	var tipFailure *model.ComponentFailure
	_ = isolate(ComponentCoaching, &tipFailure, func() {
		rep.Tips = p.Tips(rep.Errors, rep.CategoryScores)
	})()
	rep.Tips = nonNil(rep.Tips)

	for _, f := range append(failures, tipFailure) {
		if f != nil {
			rep.Failures = append(rep.Failures, *f)
		}
	}
	return rep, nil
}

// isolate wraps fn so a panic is turned into a ComponentFailure instead of
// taking down the whole analysis.
func isolate(name string, slot **model.ComponentFailure, fn func()) func() error {
	return func() error {
		defer func() {
			if r := recover(); r != nil {
				*slot = &model.ComponentFailure{Component: name, Reason: fmt.Sprint(r)}
			}
		}()
		fn()
		return nil
	}
}

// CategoryScores derives the five 0-100 category scores.
func CategoryScores(errs []model.DetectedError, deaths int, kdaScore float64) map[model.Category]int {
	scores := map[model.Category]int{
		model.CategoryCS:          100,
		model.CategoryVision:      100,
		model.CategoryObjective:   100,
		model.CategoryPositioning: max(0, 100-deathPenalty*deaths),
		model.CategoryTrading:     int(math.Round(kdaScore)),
	}
	for _, e := range errs {
		cat := model.CategoryOf(e.Type)
		if cat == "" {
			continue
		}
		scores[cat] -= severityPenalty[e.Severity]
	}
	for cat, v := range scores {
		scores[cat] = max(0, min(v, 100))
	}
	return scores
}

// Overall is the rounded mean of the category scores.
func Overall(scores map[model.Category]int) int {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, cat := range model.Categories {
		sum += scores[cat]
	}
	return int(math.Round(float64(sum) / float64(len(model.Categories))))
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
