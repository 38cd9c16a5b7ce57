// Package riot holds the match-v5 payload shapes returned by the match data
// provider, a rate-limited client for fetching them, and file loaders for
// payloads saved to disk.
package riot

// MatchResponse represents the response from /lol/match/v5/matches/{matchId}
type MatchResponse struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"` // PUUIDs
}

type MatchInfo struct {
	GameCreation int64              `json:"gameCreation"`
	GameDuration int                `json:"gameDuration"` // seconds
	GameVersion  string             `json:"gameVersion"`
	QueueID      int                `json:"queueId"`
	Participants []MatchParticipant `json:"participants"`
}

type MatchParticipant struct {
	ParticipantID  int    `json:"participantId"`
	PUUID          string `json:"puuid"`
	RiotIdGameName string `json:"riotIdGameName"`
	RiotIdTagline  string `json:"riotIdTagline"`
	ChampionID     int    `json:"championId"`
	ChampionName   string `json:"championName"`
	TeamID         int    `json:"teamId"`       // 100 or 200
	TeamPosition   string `json:"teamPosition"` // TOP, JUNGLE, MIDDLE, BOTTOM, UTILITY
	Win            bool   `json:"win"`

	Kills                       int `json:"kills"`
	Deaths                      int `json:"deaths"`
	Assists                     int `json:"assists"`
	GoldEarned                  int `json:"goldEarned"`
	TotalDamageDealtToChampions int `json:"totalDamageDealtToChampions"`
	TotalMinionsKilled          int `json:"totalMinionsKilled"`
	NeutralMinionsKilled        int `json:"neutralMinionsKilled"`
	VisionScore                 int `json:"visionScore"`
}

// TimelineResponse represents the response from /lol/match/v5/matches/{matchId}/timeline
type TimelineResponse struct {
	Metadata TimelineMetadata `json:"metadata"`
	Info     TimelineInfo     `json:"info"`
}

type TimelineMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"` // PUUIDs
}

type TimelineInfo struct {
	FrameInterval int             `json:"frameInterval"`
	Frames        []TimelineFrame `json:"frames"`
}

type TimelineFrame struct {
	Timestamp         int64                       `json:"timestamp"`
	ParticipantFrames map[string]ParticipantFrame `json:"participantFrames"` // keyed "1".."10"
	Events            []TimelineEvent             `json:"events"`
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type ParticipantFrame struct {
	ParticipantID       int      `json:"participantId"`
	Position            Position `json:"position"`
	CurrentGold         int      `json:"currentGold"`
	TotalGold           int      `json:"totalGold"`
	Level               int      `json:"level"`
	XP                  int      `json:"xp"`
	MinionsKilled       int      `json:"minionsKilled"`
	JungleMinionsKilled int      `json:"jungleMinionsKilled"`
}

// TimelineEvent is the provider's untyped event record. Only the fields for
// the event's Type are populated.
type TimelineEvent struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`

	ParticipantID int `json:"participantId,omitempty"`
	ItemID        int `json:"itemId,omitempty"`

	KillerID                int       `json:"killerId,omitempty"`
	VictimID                int       `json:"victimId,omitempty"`
	AssistingParticipantIDs []int     `json:"assistingParticipantIds,omitempty"`
	Position                *Position `json:"position,omitempty"`

	KillerTeamID   int    `json:"killerTeamId,omitempty"`
	MonsterType    string `json:"monsterType,omitempty"`
	MonsterSubType string `json:"monsterSubType,omitempty"`

	TeamID       int    `json:"teamId,omitempty"`
	BuildingType string `json:"buildingType,omitempty"`
	TowerType    string `json:"towerType,omitempty"`
	LaneType     string `json:"laneType,omitempty"`

	CreatorID int    `json:"creatorId,omitempty"`
	WardType  string `json:"wardType,omitempty"`
}

// Event type keys understood by the normalizer.
const (
	EventChampionKill     = "CHAMPION_KILL"
	EventWardPlaced       = "WARD_PLACED"
	EventWardKill         = "WARD_KILL"
	EventEliteMonsterKill = "ELITE_MONSTER_KILL"
	EventBuildingKill     = "BUILDING_KILL"
)
