package detector

import (
	"fmt"

	"github.com/pable/lol-coach/internal/model"
	"github.com/pable/lol-coach/internal/phase"
)

// Minutes at which CS is compared.
var csCheckpoints = []int{5, 10, 15, 20, 25, 30}

type csBenchmark struct {
	good, average, poor float64 // CS per minute
}

var csBenchmarks = map[phase.Phase]csBenchmark{
	phase.Early: {good: 7, average: 6, poor: 5},
	phase.Mid:   {good: 7.5, average: 6.5, poor: 5.5},
	phase.Late:  {good: 8, average: 7, poor: 6},
}

const (
	csDeficitThreshold = -15 // report only deficits below this
	csDeficitStep      = 10  // a new report needs a deficit this much worse
	csDeficitHigh      = -30
	goldPerCS          = 21
)

// DetectCS compares the target's CS against the lane opponent at fixed
// checkpoints, or against phase benchmarks when there is no opponent or the
// target is the jungler.
func DetectCS(m *model.Match) Result[model.CSStats] {
	var res Result[model.CSStats]
	player := m.Target
	id := player.ParticipantID

	opp, heuristic, found := laneOpponent(m, player)
	benchmarkOnly := player.IsJungler() || !found
	res.Stats.BenchmarkOnly = benchmarkOnly
	switch {
	case !found && !player.IsJungler():
		res.Warnings = append(res.Warnings, model.Warning{
			Component: "cs",
			Code:      model.WarnMissingOpponent,
			Message:   fmt.Sprintf("no lane opponent for %s (%q), using benchmarks only", player.ChampionName, player.TeamPosition),
		})
	case found && heuristic:
		res.Stats.OpponentHeuristic = true
		res.Warnings = append(res.Warnings, model.Warning{
			Component: "cs",
			Code:      model.WarnOpponentHeuristic,
			Message:   fmt.Sprintf("lane opponent %s matched by participant index, review manually", opp.ChampionName),
		})
	}
	if found && !benchmarkOnly {
		res.Stats.OpponentID = opp.ParticipantID
	}

	lastReported := 0
	for _, cp := range csCheckpoints {
		if cp >= len(m.Frames) {
			continue
		}
		frame := m.Frames[cp]
		pf, ok := frame.Participants[id]
		if !ok {
			continue
		}
		res.Stats.CheckpointsRead++

		ts := int64(cp) * 60000
		ph := phase.Classify(ts)
		playerCS := pf.CS()

		if !benchmarkOnly {
			opf, ok := frame.Participants[opp.ParticipantID]
			if !ok {
				continue
			}
			diff := playerCS - opf.CS()
			if diff < res.Stats.WorstDifferential {
				res.Stats.WorstDifferential = diff
			}
			if diff < csDeficitThreshold && diff <= lastReported-csDeficitStep {
				res.Errors = append(res.Errors, csDeficitError(cp, ph, playerCS, opf.CS(), diff, opp))
				lastReported = diff
			}
			continue
		}

		if cp < 10 {
			continue
		}
		bench := csBenchmarks[ph]
		if float64(playerCS)/float64(cp) < bench.poor {
			res.Errors = append(res.Errors, csBenchmarkError(cp, ph, playerCS, bench))
		}
	}

	last := m.LastFrame().Participants[id]
	res.Stats.FinalCS = last.CS()
	res.Stats.AvgCSPerMin = round1(float64(last.CS()) / float64(len(m.Frames)))
	return res
}

func csDeficitError(minute int, ph phase.Phase, playerCS, oppCS, diff int, opp model.Participant) model.DetectedError {
	sev := model.SeverityMedium
	if diff < csDeficitHigh {
		sev = model.SeverityHigh
	}
	goldLost := -diff * goldPerCS
	return model.DetectedError{
		Type:      model.ErrorCSMissing,
		Severity:  sev,
		Timestamp: minute * 60,
		Title:     "Falling behind in CS",
		Description: fmt.Sprintf("At %d:00 you had %d CS against %d for %s (%d).",
			minute, playerCS, oppCS, opp.ChampionName, diff),
		Suggestion:   "Prioritize last-hitting over trades you cannot win and catch side waves between fights.",
		CoachingNote: fmt.Sprintf("That gap is worth roughly %d gold.", goldLost),
		Context: model.ErrorContext{
			GamePhase: string(ph),
			CSState:   &model.CSState{Player: playerCS, Opponent: oppCS, Differential: diff},
			GoldLost:  goldLost,
		},
	}
}

func csBenchmarkError(minute int, ph phase.Phase, playerCS int, bench csBenchmark) model.DetectedError {
	expected := int(bench.average * float64(minute))
	return model.DetectedError{
		Type:      model.ErrorCSMissing,
		Severity:  model.SeverityMedium,
		Timestamp: minute * 60,
		Title:     "CS below benchmark",
		Description: fmt.Sprintf("At %d:00 you had %d CS (%.1f/min), under the %.1f/min floor for the %s game.",
			minute, playerCS, float64(playerCS)/float64(minute), bench.poor, ph),
		Suggestion:   "Keep farming between objectives and path through camps or waves that are up.",
		CoachingNote: fmt.Sprintf("Expected CS at this point is about %d.", expected),
		Context: model.ErrorContext{
			GamePhase:  string(ph),
			ExpectedCS: expected,
		},
	}
}

// laneOpponent finds the enemy playing the same position. When the match has
// no positions at all it falls back to the participant-index heuristic
// (1<->6, 2<->7, ...), reported through heuristic=true.
func laneOpponent(m *model.Match, player model.Participant) (opp model.Participant, heuristic, found bool) {
	if player.TeamPosition != "" {
		for _, p := range m.Participants {
			if p.TeamID != player.TeamID && p.TeamPosition == player.TeamPosition {
				return p, false, true
			}
		}
		return model.Participant{}, false, false
	}
	for _, p := range m.Participants {
		if p.TeamPosition != "" {
			return model.Participant{}, false, false
		}
	}

	id := player.ParticipantID + 5
	if player.ParticipantID > 5 {
		id = player.ParticipantID - 5
	}
	p, ok := m.Participant(id)
	if !ok || p.TeamID == player.TeamID {
		return model.Participant{}, false, false
	}
	return p, true, true
}
