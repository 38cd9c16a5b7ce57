// Package timeline converts provider match and timeline payloads into the
// normalized model.Match every analysis component reads.
package timeline

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/pable/lol-coach/internal/model"
	"github.com/pable/lol-coach/internal/riot"
)

// ErrMalformedTimeline is matched by every *MalformedTimelineError.
var ErrMalformedTimeline = errors.New("malformed timeline")

// MalformedTimelineError means the match cannot be analyzed at all. Callers
// must not treat it as "no mistakes found".
type MalformedTimelineError struct {
	MatchID string
	Reason  string
}

func (e *MalformedTimelineError) Error() string {
	return fmt.Sprintf("malformed timeline for match %q: %s", e.MatchID, e.Reason)
}

func (e *MalformedTimelineError) Is(target error) bool {
	return target == ErrMalformedTimeline
}

// Normalize resolves participants, re-keys participant frames by id and
// flattens frame events into one time-ordered list.
func Normalize(match *riot.MatchResponse, tl *riot.TimelineResponse, puuid string) (*model.Match, error) {
	if match == nil || tl == nil {
		return nil, &MalformedTimelineError{Reason: "missing match or timeline payload"}
	}
	matchID := match.Metadata.MatchID
	if matchID == "" {
		matchID = tl.Metadata.MatchID
	}
	if len(tl.Info.Frames) == 0 {
		return nil, &MalformedTimelineError{MatchID: matchID, Reason: "timeline has no frames"}
	}

	participants := make([]model.Participant, 0, len(match.Info.Participants))
	for _, p := range match.Info.Participants {
		participants = append(participants, model.Participant{
			ParticipantID:               p.ParticipantID,
			PUUID:                       p.PUUID,
			TeamID:                      p.TeamID,
			TeamPosition:                p.TeamPosition,
			ChampionName:                p.ChampionName,
			Kills:                       p.Kills,
			Deaths:                      p.Deaths,
			Assists:                     p.Assists,
			Win:                         p.Win,
			GoldEarned:                  p.GoldEarned,
			TotalDamageDealtToChampions: p.TotalDamageDealtToChampions,
			TotalMinionsKilled:          p.TotalMinionsKilled,
			NeutralMinionsKilled:        p.NeutralMinionsKilled,
			VisionScore:                 p.VisionScore,
		})
	}
	sort.SliceStable(participants, func(i, j int) bool {
		return participants[i].ParticipantID < participants[j].ParticipantID
	})

	var target *model.Participant
	for i := range participants {
		if participants[i].PUUID == puuid {
			target = &participants[i]
			break
		}
	}
	if target == nil {
		return nil, &MalformedTimelineError{MatchID: matchID, Reason: fmt.Sprintf("puuid %q not among participants", puuid)}
	}

	frames := make([]model.Frame, 0, len(tl.Info.Frames))
	var events []model.Event
	for _, f := range tl.Info.Frames {
		frames = append(frames, model.Frame{
			TimestampMs:  f.Timestamp,
			Participants: participantFrames(f.ParticipantFrames),
		})
		for _, raw := range f.Events {
			if ev, ok := convertEvent(raw); ok {
				events = append(events, ev)
			}
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp() < events[j].Timestamp()
	})
	resolveKillerTeams(events, participants)

	duration := match.Info.GameDuration
	if duration <= 0 {
		duration = int(frames[len(frames)-1].TimestampMs / 1000)
	}

	return &model.Match{
		MatchID:      matchID,
		DurationSec:  duration,
		Frames:       frames,
		Events:       events,
		Participants: participants,
		Target:       *target,
	}, nil
}

// resolveKillerTeams fills EliteMonsterKill.KillerTeamID from the killer's
// participant when the provider omitted it.
func resolveKillerTeams(events []model.Event, participants []model.Participant) {
	teams := make(map[int]int, len(participants))
	for _, p := range participants {
		teams[p.ParticipantID] = p.TeamID
	}
	for i, ev := range events {
		m, ok := ev.(model.EliteMonsterKill)
		if !ok || m.KillerTeamID != 0 {
			continue
		}
		m.KillerTeamID = teams[m.KillerID]
		events[i] = m
	}
}

func participantFrames(raw map[string]riot.ParticipantFrame) map[int]model.ParticipantFrame {
	out := make(map[int]model.ParticipantFrame, len(raw))
	for key, pf := range raw {
		id := pf.ParticipantID
		if id == 0 {
			n, err := strconv.Atoi(key)
			if err != nil {
				continue
			}
			id = n
		}
		out[id] = model.ParticipantFrame{
			Position:            model.Position{X: pf.Position.X, Y: pf.Position.Y},
			CurrentGold:         pf.CurrentGold,
			TotalGold:           pf.TotalGold,
			Level:               pf.Level,
			XP:                  pf.XP,
			MinionsKilled:       pf.MinionsKilled,
			JungleMinionsKilled: pf.JungleMinionsKilled,
		}
	}
	return out
}

// convertEvent maps a provider event onto its typed variant. Unknown types
// are dropped.
func convertEvent(e riot.TimelineEvent) (model.Event, bool) {
	switch e.Type {
	case riot.EventChampionKill:
		k := model.ChampionKill{
			TimestampMs: e.Timestamp,
			KillerID:    e.KillerID,
			VictimID:    e.VictimID,
			AssistIDs:   append([]int(nil), e.AssistingParticipantIDs...),
		}
		if e.Position != nil {
			k.Position = model.Position{X: e.Position.X, Y: e.Position.Y}
		}
		return k, true
	case riot.EventWardPlaced:
		return model.WardPlaced{TimestampMs: e.Timestamp, CreatorID: e.CreatorID, WardType: e.WardType}, true
	case riot.EventWardKill:
		return model.WardKill{TimestampMs: e.Timestamp, KillerID: e.KillerID, WardType: e.WardType}, true
	case riot.EventEliteMonsterKill:
		return model.EliteMonsterKill{
			TimestampMs:    e.Timestamp,
			KillerID:       e.KillerID,
			KillerTeamID:   e.KillerTeamID,
			MonsterType:    e.MonsterType,
			MonsterSubType: e.MonsterSubType,
		}, true
	case riot.EventBuildingKill:
		return model.BuildingKill{
			TimestampMs:  e.Timestamp,
			KillerID:     e.KillerID,
			TeamID:       e.TeamID,
			BuildingType: e.BuildingType,
			TowerType:    e.TowerType,
			LaneType:     e.LaneType,
		}, true
	default:
		return nil, false
	}
}
