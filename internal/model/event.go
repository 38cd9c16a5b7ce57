package model

// Event is one timestamped in-game occurrence. The set of implementations is
// closed: ChampionKill, WardPlaced, WardKill, EliteMonsterKill, BuildingKill.
type Event interface {
	Timestamp() int64
	isEvent()
}

// Monster types and sub-types carried by EliteMonsterKill.
const (
	MonsterDragon   = "DRAGON"
	MonsterBaron    = "BARON_NASHOR"
	MonsterHerald   = "RIFTHERALD"
	MonsterHorde    = "HORDE"
	SubTypeElder    = "ELDER_DRAGON"
	BuildingTower   = "TOWER_BUILDING"
	BuildingInhib   = "INHIBITOR_BUILDING"
	WardControl     = "CONTROL_WARD"
	WardYellowTotem = "YELLOW_TRINKET"
	WardSight       = "SIGHT_WARD"
	WardBlueTrinket = "BLUE_TRINKET"
	WardUndefined   = "UNDEFINED"
)

type ChampionKill struct {
	TimestampMs int64
	KillerID    int // 0 when executed by minions/turrets
	VictimID    int
	AssistIDs   []int
	Position    Position
}

type WardPlaced struct {
	TimestampMs int64
	CreatorID   int
	WardType    string
}

type WardKill struct {
	TimestampMs int64
	KillerID    int
	WardType    string
}

type EliteMonsterKill struct {
	TimestampMs    int64
	KillerID       int
	KillerTeamID   int
	MonsterType    string
	MonsterSubType string
}

// IsElder reports whether the monster was the Elder Dragon.
func (e EliteMonsterKill) IsElder() bool {
	return e.MonsterType == MonsterDragon && e.MonsterSubType == SubTypeElder
}

// BuildingKill records a destroyed structure. TeamID is the team that owned
// (and lost) the building.
type BuildingKill struct {
	TimestampMs  int64
	KillerID     int
	TeamID       int
	BuildingType string
	TowerType    string
	LaneType     string
}

func (e ChampionKill) Timestamp() int64     { return e.TimestampMs }
func (e WardPlaced) Timestamp() int64       { return e.TimestampMs }
func (e WardKill) Timestamp() int64         { return e.TimestampMs }
func (e EliteMonsterKill) Timestamp() int64 { return e.TimestampMs }
func (e BuildingKill) Timestamp() int64     { return e.TimestampMs }

func (ChampionKill) isEvent()     {}
func (WardPlaced) isEvent()       {}
func (WardKill) isEvent()         {}
func (EliteMonsterKill) isEvent() {}
func (BuildingKill) isEvent()     {}

// HasAssist reports whether id assisted the kill.
func (e ChampionKill) HasAssist(id int) bool {
	for _, a := range e.AssistIDs {
		if a == id {
			return true
		}
	}
	return false
}
