package timeline

import (
	"errors"
	"testing"

	"github.com/pable/lol-coach/internal/model"
	"github.com/pable/lol-coach/internal/riot"
)

func makePayloads() (*riot.MatchResponse, *riot.TimelineResponse) {
	match := &riot.MatchResponse{
		Metadata: riot.MatchMetadata{MatchID: "NA1_100"},
		Info: riot.MatchInfo{
			GameDuration: 1500,
			Participants: []riot.MatchParticipant{
				{ParticipantID: 2, PUUID: "enemy", TeamID: 200, TeamPosition: "MIDDLE", ChampionName: "Zed"},
				{ParticipantID: 1, PUUID: "me", TeamID: 100, TeamPosition: "MIDDLE", ChampionName: "Ahri", Kills: 3},
			},
		},
	}
	tl := &riot.TimelineResponse{
		Metadata: riot.TimelineMetadata{MatchID: "NA1_100"},
		Info: riot.TimelineInfo{
			FrameInterval: 60000,
			Frames: []riot.TimelineFrame{
				{
					Timestamp: 0,
					ParticipantFrames: map[string]riot.ParticipantFrame{
						"1": {Position: riot.Position{X: 100, Y: 200}},
					},
					Events: []riot.TimelineEvent{{Type: "PAUSE_END", Timestamp: 0}},
				},
				{
					Timestamp: 60000,
					ParticipantFrames: map[string]riot.ParticipantFrame{
						"1": {ParticipantID: 1, MinionsKilled: 8, JungleMinionsKilled: 1},
						"2": {ParticipantID: 2, MinionsKilled: 7},
					},
					Events: []riot.TimelineEvent{
						{Type: riot.EventChampionKill, Timestamp: 59000, KillerID: 1, VictimID: 2, AssistingParticipantIDs: []int{3}},
						{Type: riot.EventWardPlaced, Timestamp: 30000, CreatorID: 1, WardType: "CONTROL_WARD"},
						{Type: riot.EventEliteMonsterKill, Timestamp: 59500, KillerID: 2, MonsterType: "DRAGON"},
						{Type: "ITEM_PURCHASED", Timestamp: 40000, ParticipantID: 1, ItemID: 1055},
					},
				},
			},
		},
	}
	return match, tl
}

func TestNormalize_ResolvesParticipantsAndFrames(t *testing.T) {
	match, tl := makePayloads()

	m, err := Normalize(match, tl, "me")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if m.MatchID != "NA1_100" || m.DurationSec != 1500 {
		t.Errorf("unexpected header: id=%s dur=%d", m.MatchID, m.DurationSec)
	}
	if m.Target.ParticipantID != 1 || m.Target.ChampionName != "Ahri" {
		t.Errorf("target not resolved: %+v", m.Target)
	}
	if m.Participants[0].ParticipantID != 1 {
		t.Error("participants should be ordered by participant id")
	}
	if got := m.Frames[0].Participants[1].Position; got.X != 100 || got.Y != 200 {
		t.Errorf("frame key fallback failed: %+v", got)
	}
	if got := m.Frames[1].Participants[1].CS(); got != 9 {
		t.Errorf("CS at minute 1 = %d, want 9", got)
	}
}

func TestNormalize_EventsTypedAndSorted(t *testing.T) {
	match, tl := makePayloads()

	m, err := Normalize(match, tl, "me")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(m.Events) != 3 {
		t.Fatalf("expected 3 known events (unknown types dropped), got %d", len(m.Events))
	}
	for i := 1; i < len(m.Events); i++ {
		if m.Events[i].Timestamp() < m.Events[i-1].Timestamp() {
			t.Fatalf("events not time-ordered at %d", i)
		}
	}
	if _, ok := m.Events[0].(model.WardPlaced); !ok {
		t.Errorf("first event should be the ward, got %T", m.Events[0])
	}
	kill, ok := m.Events[1].(model.ChampionKill)
	if !ok || !kill.HasAssist(3) {
		t.Errorf("kill not converted: %+v", m.Events[1])
	}
	dragon, ok := m.Events[2].(model.EliteMonsterKill)
	if !ok || dragon.KillerTeamID != 200 {
		t.Errorf("killer team should be resolved from participant 2, got %+v", m.Events[2])
	}
}

func TestNormalize_Malformed(t *testing.T) {
	match, tl := makePayloads()

	if _, err := Normalize(match, tl, "stranger"); !errors.Is(err, ErrMalformedTimeline) {
		t.Errorf("unknown puuid: expected ErrMalformedTimeline, got %v", err)
	}

	tl.Info.Frames = nil
	_, err := Normalize(match, tl, "me")
	var mte *MalformedTimelineError
	if !errors.As(err, &mte) {
		t.Fatalf("no frames: expected *MalformedTimelineError, got %v", err)
	}
	if mte.MatchID != "NA1_100" {
		t.Errorf("error should carry match id, got %q", mte.MatchID)
	}

	if _, err := Normalize(nil, nil, "me"); !errors.Is(err, ErrMalformedTimeline) {
		t.Errorf("nil payloads: expected ErrMalformedTimeline, got %v", err)
	}
}

func TestNormalize_DurationFallback(t *testing.T) {
	match, tl := makePayloads()
	match.Info.GameDuration = 0

	m, err := Normalize(match, tl, "me")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if m.DurationSec != 60 {
		t.Errorf("DurationSec = %d, want 60 from last frame", m.DurationSec)
	}
}
