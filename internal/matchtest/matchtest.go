// Package matchtest builds normalized matches for component tests.
package matchtest

import (
	"fmt"
	"sort"

	"github.com/pable/lol-coach/internal/model"
)

var positions = []string{
	model.PositionTop, model.PositionJungle, model.PositionMiddle,
	model.PositionBottom, model.PositionUtility,
}

var champions = []string{
	"Garen", "LeeSin", "Ahri", "Jinx", "Thresh",
	"Darius", "Vi", "Zed", "Caitlyn", "Lulu",
}

// PUUID returns the puuid assigned to participant id.
func PUUID(id int) string { return fmt.Sprintf("p%d", id) }

// NewMatch returns a 10-player match with the given number of per-minute
// frames. Participants 1-5 are blue (100) and 6-10 red (200), each side
// ordered TOP, JUNGLE, MIDDLE, BOTTOM, UTILITY. Participant 1 is the target.
func NewMatch(frameCount int) *model.Match {
	m := &model.Match{
		MatchID:     "NA1_TEST",
		DurationSec: frameCount * 60,
	}
	for id := 1; id <= 10; id++ {
		team := model.TeamBlue
		if id > 5 {
			team = model.TeamRed
		}
		m.Participants = append(m.Participants, model.Participant{
			ParticipantID: id,
			PUUID:         PUUID(id),
			TeamID:        team,
			TeamPosition:  positions[(id-1)%5],
			ChampionName:  champions[id-1],
		})
	}
	for i := 0; i < frameCount; i++ {
		f := model.Frame{
			TimestampMs:  int64(i) * 60000,
			Participants: make(map[int]model.ParticipantFrame, 10),
		}
		for id := 1; id <= 10; id++ {
			f.Participants[id] = model.ParticipantFrame{Level: 1}
		}
		m.Frames = append(m.Frames, f)
	}
	m.Target = m.Participants[0]
	return m
}

// SetTarget makes participant id the analyzed player.
func SetTarget(m *model.Match, id int) {
	p, _ := m.Participant(id)
	m.Target = p
}

// SetPosition overwrites a participant's team position.
func SetPosition(m *model.Match, id int, pos string) {
	for i := range m.Participants {
		if m.Participants[i].ParticipantID == id {
			m.Participants[i].TeamPosition = pos
		}
	}
	if m.Target.ParticipantID == id {
		m.Target.TeamPosition = pos
	}
}

// SetCS sets lane minions for participant id at every frame using csAt(minute).
func SetCS(m *model.Match, id int, csAt func(minute int) int) {
	for i := range m.Frames {
		pf := m.Frames[i].Participants[id]
		pf.MinionsKilled = csAt(i)
		m.Frames[i].Participants[id] = pf
	}
}

// LinearCS returns a csAt function yielding perMinute*minute.
func LinearCS(perMinute float64) func(int) int {
	return func(minute int) int { return int(perMinute * float64(minute)) }
}

// SetFramePosition places participant id at pos from minute onward.
func SetFramePosition(m *model.Match, id, fromMinute int, pos model.Position) {
	for i := fromMinute; i < len(m.Frames); i++ {
		pf := m.Frames[i].Participants[id]
		pf.Position = pos
		m.Frames[i].Participants[id] = pf
	}
}

// AddEvents appends events and keeps the event list time-ordered.
func AddEvents(m *model.Match, evs ...model.Event) {
	m.Events = append(m.Events, evs...)
	sort.SliceStable(m.Events, func(i, j int) bool {
		return m.Events[i].Timestamp() < m.Events[j].Timestamp()
	})
}

// Sec converts game seconds to milliseconds.
func Sec(s int) int64 { return int64(s) * 1000 }

// Min converts game minutes (possibly fractional) to milliseconds.
func Min(minutes float64) int64 { return int64(minutes * 60000) }
