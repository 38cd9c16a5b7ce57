package detector

import (
	"fmt"

	"github.com/pable/lol-coach/internal/model"
	"github.com/pable/lol-coach/internal/phase"
)

var (
	dragonPit = model.Position{X: 9866, Y: 4414}
	baronPit  = model.Position{X: 5007, Y: 10471}
)

// Beyond this distance the player had no realistic chance to contest.
const contestRange = 4000.0

var respawnMs = map[phase.Phase]int64{
	phase.Early: 15000,
	phase.Mid:   30000,
	phase.Late:  50000,
}

type deathSpan struct{ start, end int64 }

// DetectObjectives walks every epic monster taken by the enemy team and
// blames the target only when they were alive and far from the pit.
func DetectObjectives(m *model.Match) Result[model.ObjectiveStats] {
	var res Result[model.ObjectiveStats]
	player := m.Target
	id := player.ParticipantID

	var deaths []deathSpan
	for _, ev := range m.Events {
		k, ok := ev.(model.ChampionKill)
		if !ok || k.VictimID != id {
			continue
		}
		deaths = append(deaths, deathSpan{
			start: k.TimestampMs,
			end:   k.TimestampMs + respawnMs[phase.Classify(k.TimestampMs)],
		})
	}
	isDead := func(ts int64) bool {
		for _, d := range deaths {
			if ts >= d.start && ts < d.end {
				return true
			}
		}
		return false
	}

	for _, ev := range m.Events {
		e, ok := ev.(model.EliteMonsterKill)
		if !ok || e.KillerTeamID == 0 || e.KillerTeamID == player.TeamID {
			continue
		}
		ph := phase.Classify(e.TimestampMs)

		var (
			pit  model.Position
			zone string
			sev  model.Severity
			name string
		)
		switch e.MonsterType {
		case model.MonsterDragon:
			res.Stats.DragonsLost++
			pit, zone, name = dragonPit, "dragon pit", "Dragon"
			switch {
			case e.IsElder():
				sev, name = model.SeverityCritical, "Elder Dragon"
			case ph == phase.Late:
				sev = model.SeverityHigh
			default:
				sev = model.SeverityMedium
			}
		case model.MonsterBaron:
			res.Stats.BaronsLost++
			pit, zone, name, sev = baronPit, "baron pit", "Baron Nashor", model.SeverityCritical
		case model.MonsterHerald:
			if ph != phase.Early {
				continue
			}
			res.Stats.HeraldsContested++
			pit, zone, name, sev = baronPit, "baron pit", "Rift Herald", model.SeverityMedium
		default:
			continue
		}

		if isDead(e.TimestampMs) {
			res.Stats.ExcusedByDeath++
			continue
		}
		frame, ok := m.FrameAt(e.TimestampMs)
		if !ok {
			continue
		}
		pf, ok := frame.Participants[id]
		if !ok {
			continue
		}
		dist := distance(pf.Position, pit)
		if dist <= contestRange {
			res.Stats.ExcusedByProximity++
			continue
		}
		res.Errors = append(res.Errors, objectiveError(e, ph, sev, name, zone, pf.Position, dist))
	}
	return res
}

func objectiveError(e model.EliteMonsterKill, ph phase.Phase, sev model.Severity, name, zone string, pos model.Position, dist float64) model.DetectedError {
	return model.DetectedError{
		Type:      model.ErrorObjective,
		Severity:  sev,
		Timestamp: seconds(e.TimestampMs),
		Title:     fmt.Sprintf("%s lost without a contest", name),
		Description: fmt.Sprintf("The enemy took %s at %s while you were alive %.0f units from the %s.",
			name, clock(e.TimestampMs), dist, zone),
		Suggestion:   "Track objective timers and start moving toward the pit about a minute before spawn.",
		CoachingNote: "Being alive and absent is the costliest way to lose an objective.",
		Context: model.ErrorContext{
			GamePhase: string(ph),
			MapState:  &model.MapState{Zone: zone, PlayerPosition: pos},
			Distance:  round1(dist),
		},
	}
}
