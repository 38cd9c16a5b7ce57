package detector

import (
	"fmt"

	"github.com/pable/lol-coach/internal/model"
	"github.com/pable/lol-coach/internal/phase"
)

const (
	visionWindowMs   int64 = 5 * 60 * 1000
	nonSupportFactor       = 0.6

	// A trailing window shorter than this is recorded but not flagged.
	minFlaggedWindowMs int64 = 2 * 60 * 1000
)

// Wards per five-minute window expected from a support.
type visionBenchmark struct {
	good, average, poor float64
}

var visionBenchmarks = map[phase.Phase]visionBenchmark{
	phase.Early: {good: 5, average: 3, poor: 1},
	phase.Mid:   {good: 8, average: 5, poor: 2},
	phase.Late:  {good: 10, average: 6, poor: 3},
}

// DetectVision buckets the target's ward activity into five-minute windows
// and flags windows under the role-adjusted floor.
func DetectVision(m *model.Match) Result[model.VisionStats] {
	var res Result[model.VisionStats]
	player := m.Target
	id := player.ParticipantID

	// Window index -> counters, built once per call.
	windows := make(map[int64]*model.VisionWindow)
	window := func(ts int64) *model.VisionWindow {
		idx := ts / visionWindowMs
		w := windows[idx]
		if w == nil {
			w = &model.VisionWindow{StartMinute: int(idx * 5)}
			windows[idx] = w
		}
		return w
	}

	for _, ev := range m.Events {
		switch e := ev.(type) {
		case model.WardPlaced:
			if e.CreatorID != id || e.WardType == model.WardUndefined {
				continue
			}
			w := window(e.TimestampMs)
			w.Placed++
			res.Stats.WardsPlaced++
			if e.WardType == model.WardControl {
				w.ControlWards++
				res.Stats.ControlWardsPlaced++
			}
		case model.WardKill:
			if e.KillerID != id {
				continue
			}
			window(e.TimestampMs).Killed++
			res.Stats.WardsKilled++
		}
	}

	factor := 1.0
	if !player.IsSupport() {
		factor = nonSupportFactor
	}

	endMs := int64(m.DurationSec) * 1000
	if last := m.LastFrame().TimestampMs; last > endMs {
		endMs = last
	}
	for idx := int64(0); idx*visionWindowMs < endMs; idx++ {
		start := idx * visionWindowMs
		covered := min(visionWindowMs, endMs-start)
		w := window(start)
		ph := phase.AtMinute(w.StartMinute)
		// The floor of the last window shrinks with the time left in the game.
		w.PoorLimit = round2(visionBenchmarks[ph].poor * factor * float64(covered) / float64(visionWindowMs))
		res.Stats.Windows = append(res.Stats.Windows, *w)

		if w.StartMinute < 10 || covered < minFlaggedWindowMs {
			continue
		}
		if float64(w.Placed) < w.PoorLimit {
			res.Errors = append(res.Errors, lowVisionError(*w, ph))
		}
		if ph != phase.Early && w.ControlWards == 0 {
			res.Errors = append(res.Errors, noControlWardError(*w, ph))
		}
	}

	res.Stats.WardsPerMinute = round2(float64(res.Stats.WardsPlaced) / float64(len(m.Frames)))
	return res
}

func lowVisionError(w model.VisionWindow, ph phase.Phase) model.DetectedError {
	sev := model.SeverityMedium
	if ph == phase.Late {
		sev = model.SeverityHigh
	}
	placed := w.Placed
	return model.DetectedError{
		Type:      model.ErrorVision,
		Severity:  sev,
		Timestamp: w.StartMinute * 60,
		Title:     "Low ward count",
		Description: fmt.Sprintf("Between %d:00 and %d:00 you placed %d wards (floor %.1f).",
			w.StartMinute, w.StartMinute+5, w.Placed, w.PoorLimit),
		Suggestion:   "Use your trinket on cooldown and ward the approach to the next objective before it spawns.",
		CoachingNote: "Vision around objectives decides most mid and late game fights.",
		Context: model.ErrorContext{
			GamePhase:     string(ph),
			WardsPlaced:   &placed,
			WardThreshold: w.PoorLimit,
		},
	}
}

func noControlWardError(w model.VisionWindow, ph phase.Phase) model.DetectedError {
	return model.DetectedError{
		Type:         model.ErrorControlWard,
		Severity:     model.SeverityLow,
		Timestamp:    w.StartMinute * 60,
		Title:        "No control ward",
		Description:  fmt.Sprintf("No control ward placed between %d:00 and %d:00.", w.StartMinute, w.StartMinute+5),
		Suggestion:   "Keep a control ward in your inventory and place it in river or the enemy jungle entrance.",
		CoachingNote: "A control ward costs 75 gold and denies enemy vision for as long as it stands.",
		Context:      model.ErrorContext{GamePhase: string(ph)},
	}
}
