// Package highlight extracts the moments of a match that matter to one
// player and merges them into reviewable clips.
package highlight

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pable/lol-coach/internal/model"
)

const (
	multikillGapMs int64 = 10_000
	clipLeadMs     int64 = 15_000
	clipTailMs     int64 = 10_000
	clipMergeGapMs int64 = 5_000
)

var multikillLabels = map[int]string{
	2: "Double Kill",
	3: "Triple Kill",
	4: "Quadra Kill",
	5: "Penta Kill",
}

// Result is the extractor output for one participant.
type Result struct {
	Highlights []model.Highlight
	Clips      []model.Clip
	Kills      int
	Deaths     int
	Assists    int
}

// Extract walks the time-ordered events once and classifies each one relative
// to participant id.
func Extract(m *model.Match, id int) Result {
	var res Result
	team := m.TeamOf(id)

	var cluster []int64
	flush := func() {
		if len(cluster) >= 2 {
			res.Highlights = append(res.Highlights, multikill(cluster))
		}
		cluster = cluster[:0]
	}

	for _, ev := range m.Events {
		switch e := ev.(type) {
		case model.ChampionKill:
			switch {
			case e.VictimID == id:
				res.Deaths++
				res.Highlights = append(res.Highlights, model.Highlight{
					Kind:        model.HighlightDeath,
					TimestampMs: e.TimestampMs,
					Severity:    model.SeverityCritical,
					Description: "Died to " + championName(m, e.KillerID),
				})
			case e.KillerID == id:
				res.Kills++
				res.Highlights = append(res.Highlights, model.Highlight{
					Kind:        model.HighlightKill,
					TimestampMs: e.TimestampMs,
					Severity:    model.SeverityHigh,
					Description: "Killed " + championName(m, e.VictimID),
				})
				if n := len(cluster); n > 0 && e.TimestampMs-cluster[n-1] > multikillGapMs {
					flush()
				}
				cluster = append(cluster, e.TimestampMs)
			case e.HasAssist(id):
				res.Assists++
				res.Highlights = append(res.Highlights, model.Highlight{
					Kind:        model.HighlightAssist,
					TimestampMs: e.TimestampMs,
					Severity:    model.SeverityLow,
					Description: "Assisted on " + championName(m, e.VictimID),
				})
			}
		case model.EliteMonsterKill:
			if team == 0 || e.KillerTeamID != team {
				continue
			}
			sev := model.SeverityMedium
			if e.MonsterType == model.MonsterBaron || e.IsElder() {
				sev = model.SeverityHigh
			}
			res.Highlights = append(res.Highlights, model.Highlight{
				Kind:        model.HighlightObjective,
				TimestampMs: e.TimestampMs,
				Severity:    sev,
				Description: "Team took " + monsterName(e),
			})
		case model.BuildingKill:
			if e.BuildingType != model.BuildingTower || e.TeamID == 0 || e.TeamID == team {
				continue
			}
			res.Highlights = append(res.Highlights, model.Highlight{
				Kind:        model.HighlightTower,
				TimestampMs: e.TimestampMs,
				Severity:    model.SeverityMedium,
				Description: "Team destroyed " + towerName(e),
			})
		}
	}
	flush()

	// Multikills land after their kills; restore time order for clipping.
	sort.SliceStable(res.Highlights, func(i, j int) bool {
		return res.Highlights[i].TimestampMs < res.Highlights[j].TimestampMs
	})
	res.Clips = Clips(res.Highlights)
	return res
}

func multikill(kills []int64) model.Highlight {
	n := len(kills)
	label := multikillLabels[n]
	if n > 5 {
		label = multikillLabels[5]
	}
	sev := model.SeverityHigh
	if n >= 4 {
		sev = model.SeverityCritical
	}
	return model.Highlight{
		Kind:        model.HighlightMultikill,
		TimestampMs: kills[0],
		Severity:    sev,
		Description: fmt.Sprintf("%s (%d kills in %ds)", label, n, (kills[n-1]-kills[0])/1000),
		Label:       label,
		Size:        n,
	}
}

// Clips turns time-ordered highlights into merged clip spans. A clip joins
// the previous one when it starts within five seconds of its end.
func Clips(hs []model.Highlight) []model.Clip {
	var clips []model.Clip
	for _, h := range hs {
		start := h.TimestampMs - clipLeadMs
		if start < 0 {
			start = 0
		}
		c := model.Clip{
			StartMs:     start,
			EndMs:       h.TimestampMs + clipTailMs,
			Severity:    h.Severity,
			Description: h.Description,
			Kinds:       []model.HighlightKind{h.Kind},
		}
		if n := len(clips); n > 0 && c.StartMs-clips[n-1].EndMs <= clipMergeGapMs {
			merge(&clips[n-1], c)
			continue
		}
		clips = append(clips, c)
	}
	return clips
}

func merge(prev *model.Clip, next model.Clip) {
	if next.EndMs > prev.EndMs {
		prev.EndMs = next.EndMs
	}
	if next.Severity == model.SeverityCritical {
		prev.Severity = model.SeverityCritical
	}
	prev.Description = prev.Description + " + " + next.Description
	for _, k := range next.Kinds {
		if !hasKind(prev.Kinds, k) {
			prev.Kinds = append(prev.Kinds, k)
		}
	}
}

func hasKind(kinds []model.HighlightKind, k model.HighlightKind) bool {
	for _, x := range kinds {
		if x == k {
			return true
		}
	}
	return false
}

func championName(m *model.Match, id int) string {
	if p, ok := m.Participant(id); ok {
		return p.ChampionName
	}
	return "minions or turret"
}

func monsterName(e model.EliteMonsterKill) string {
	switch {
	case e.IsElder():
		return "Elder Dragon"
	case e.MonsterType == model.MonsterDragon:
		return "Dragon"
	case e.MonsterType == model.MonsterBaron:
		return "Baron Nashor"
	case e.MonsterType == model.MonsterHerald:
		return "Rift Herald"
	case e.MonsterType == model.MonsterHorde:
		return "Voidgrubs"
	default:
		return strings.ToLower(e.MonsterType)
	}
}

func towerName(e model.BuildingKill) string {
	lane := strings.ToLower(strings.TrimSuffix(e.LaneType, "_LANE"))
	tier := strings.ToLower(strings.TrimSuffix(e.TowerType, "_TURRET"))
	switch {
	case lane != "" && tier != "":
		return fmt.Sprintf("%s %s tower", lane, tier)
	case lane != "":
		return lane + " tower"
	default:
		return "a tower"
	}
}
