package model

// Team identifiers as used by the match provider.
const (
	TeamBlue = 100
	TeamRed  = 200
)

// Team positions reported in match details.
const (
	PositionTop     = "TOP"
	PositionJungle  = "JUNGLE"
	PositionMiddle  = "MIDDLE"
	PositionBottom  = "BOTTOM"
	PositionUtility = "UTILITY"
)

// Position is a 2D map coordinate in game units.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ParticipantFrame is one participant's snapshot inside a per-minute frame.
type ParticipantFrame struct {
	Position            Position
	CurrentGold         int
	TotalGold           int
	Level               int
	XP                  int
	MinionsKilled       int
	JungleMinionsKilled int
}

// CS returns lane minions plus jungle monsters.
func (f ParticipantFrame) CS() int {
	return f.MinionsKilled + f.JungleMinionsKilled
}

// Frame is one per-minute snapshot. Frame index i corresponds to minute i.
type Frame struct {
	TimestampMs  int64
	Participants map[int]ParticipantFrame
}

// Participant is one player's end-of-match summary.
type Participant struct {
	ParticipantID int
	PUUID         string
	TeamID        int
	TeamPosition  string
	ChampionName  string

	Kills   int
	Deaths  int
	Assists int
	Win     bool

	GoldEarned                  int
	TotalDamageDealtToChampions int
	TotalMinionsKilled          int
	NeutralMinionsKilled        int
	VisionScore                 int
}

// CS returns total minions plus neutral monsters.
func (p *Participant) CS() int {
	return p.TotalMinionsKilled + p.NeutralMinionsKilled
}

// IsSupport reports whether the participant played the utility role.
func (p *Participant) IsSupport() bool {
	return p.TeamPosition == PositionUtility
}

// IsJungler reports whether the participant played jungle.
func (p *Participant) IsJungler() bool {
	return p.TeamPosition == PositionJungle
}

// Match is the normalized, immutable snapshot every component reads.
type Match struct {
	MatchID     string
	DurationSec int
	Frames      []Frame
	Events      []Event // all frame events, stable-sorted by timestamp
	// Participants ordered by participant id.
	Participants []Participant
	Target       Participant
}

// Participant looks up a participant by id.
func (m *Match) Participant(id int) (Participant, bool) {
	for _, p := range m.Participants {
		if p.ParticipantID == id {
			return p, true
		}
	}
	return Participant{}, false
}

// TeamOf returns the team of participant id, or 0 if unknown.
func (m *Match) TeamOf(id int) int {
	if p, ok := m.Participant(id); ok {
		return p.TeamID
	}
	return 0
}

// FrameAt returns the frame for the given in-game timestamp, clamped to the last frame.
func (m *Match) FrameAt(ms int64) (Frame, bool) {
	if len(m.Frames) == 0 {
		return Frame{}, false
	}
	idx := int(ms / 60000)
	if idx < 0 {
		idx = 0
	}
	if idx >= len(m.Frames) {
		idx = len(m.Frames) - 1
	}
	return m.Frames[idx], true
}

// LastFrame returns the final frame.
func (m *Match) LastFrame() Frame {
	return m.Frames[len(m.Frames)-1]
}
