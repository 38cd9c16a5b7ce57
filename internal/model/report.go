package model

// Severity ranks how costly a mistake or highlight was.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// ErrorType is the category key of a detected mistake.
type ErrorType string

const (
	ErrorCSMissing   ErrorType = "cs-missing"
	ErrorVision      ErrorType = "vision"
	ErrorControlWard ErrorType = "control-ward"
	ErrorObjective   ErrorType = "objective"
)

// Category groups error types for scoring and tip fallback.
type Category string

const (
	CategoryCS          Category = "cs"
	CategoryVision      Category = "vision"
	CategoryPositioning Category = "positioning"
	CategoryObjective   Category = "objective"
	CategoryTrading     Category = "trading"
)

// Categories is the fixed category order used by reports.
var Categories = []Category{CategoryCS, CategoryVision, CategoryPositioning, CategoryObjective, CategoryTrading}

// CategoryOf maps an error type to its category.
func CategoryOf(t ErrorType) Category {
	switch t {
	case ErrorCSMissing:
		return CategoryCS
	case ErrorVision, ErrorControlWard:
		return CategoryVision
	case ErrorObjective:
		return CategoryObjective
	default:
		return ""
	}
}

type CSState struct {
	Player       int `json:"player"`
	Opponent     int `json:"opponent"`
	Differential int `json:"differential"`
}

type MapState struct {
	Zone           string   `json:"zone"`
	PlayerPosition Position `json:"playerPosition"`
}

// ErrorContext is the situational snapshot attached to a DetectedError.
type ErrorContext struct {
	GamePhase     string    `json:"gamePhase"`
	CSState       *CSState  `json:"csState,omitempty"`
	MapState      *MapState `json:"mapState,omitempty"`
	GoldLost      int       `json:"goldLost,omitempty"`
	ExpectedCS    int       `json:"expectedCs,omitempty"`
	WardsPlaced   *int      `json:"wardsPlaced,omitempty"`
	WardThreshold float64   `json:"wardThreshold,omitempty"`
	Distance      float64   `json:"distance,omitempty"`
}

// DetectedError is one coachable mistake. Timestamp is in game seconds.
type DetectedError struct {
	Type         ErrorType    `json:"type"`
	Severity     Severity     `json:"severity"`
	Timestamp    int          `json:"timestamp"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Suggestion   string       `json:"suggestion"`
	CoachingNote string       `json:"coachingNote"`
	Context      ErrorContext `json:"context"`
}

// CoachingTip is a catalog entry selected for a report.
type CoachingTip struct {
	ID            string   `json:"id"`
	Category      Category `json:"category"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Priority      int      `json:"priority"`
	RelatedErrors []string `json:"relatedErrors,omitempty"`
}

type SubScores struct {
	KDA           float64 `json:"kda"`
	Damage        float64 `json:"damage"`
	Gold          float64 `json:"gold"`
	CS            float64 `json:"cs"`
	Vision        float64 `json:"vision"`
	Participation float64 `json:"participation"`
}

// PerformanceScore is the composite 0-100 rating of one participant.
type PerformanceScore struct {
	PUUID           string    `json:"puuid"`
	ParticipantID   int       `json:"participantId"`
	ChampionName    string    `json:"championName"`
	SubScores       SubScores `json:"subScores"`
	TotalScore      float64   `json:"totalScore"`
	WinBonusApplied bool      `json:"winBonusApplied"`
	Composite       float64   `json:"composite"` // unclamped, unrounded; ranking key
}

// HighlightKind classifies an extracted event relative to one player.
type HighlightKind string

const (
	HighlightKill      HighlightKind = "kill"
	HighlightDeath     HighlightKind = "death"
	HighlightAssist    HighlightKind = "assist"
	HighlightObjective HighlightKind = "objective"
	HighlightTower     HighlightKind = "tower"
	HighlightMultikill HighlightKind = "multikill"
)

type Highlight struct {
	Kind        HighlightKind `json:"kind"`
	TimestampMs int64         `json:"timestampMs"`
	Severity    Severity      `json:"severity"`
	Description string        `json:"description"`
	Label       string        `json:"label,omitempty"`
	Size        int           `json:"size,omitempty"` // multikill cluster size
}

// Clip is a merged time span around one or more highlights.
type Clip struct {
	StartMs     int64           `json:"startMs"`
	EndMs       int64           `json:"endMs"`
	Severity    Severity        `json:"severity"`
	Description string          `json:"description"`
	Kinds       []HighlightKind `json:"kinds"`
}

// DurationMs returns the clip length.
func (c Clip) DurationMs() int64 { return c.EndMs - c.StartMs }

type CSStats struct {
	AvgCSPerMin       float64 `json:"avgCsPerMin"`
	FinalCS           int     `json:"finalCs"`
	OpponentID        int     `json:"opponentId,omitempty"`
	OpponentHeuristic bool    `json:"opponentHeuristic,omitempty"`
	BenchmarkOnly     bool    `json:"benchmarkOnly"`
	CheckpointsRead   int     `json:"checkpointsRead"`
	WorstDifferential int     `json:"worstDifferential"`
}

type VisionWindow struct {
	StartMinute  int     `json:"startMinute"`
	Placed       int     `json:"placed"`
	Killed       int     `json:"killed"`
	ControlWards int     `json:"controlWards"`
	PoorLimit    float64 `json:"poorLimit"`
}

type VisionStats struct {
	WardsPlaced        int            `json:"wardsPlaced"`
	WardsKilled        int            `json:"wardsKilled"`
	ControlWardsPlaced int            `json:"controlWardsPlaced"`
	WardsPerMinute     float64        `json:"wardsPerMinute"`
	Windows            []VisionWindow `json:"windows"`
}

type ObjectiveStats struct {
	DragonsLost        int `json:"dragonsLost"`
	BaronsLost         int `json:"baronsLost"`
	HeraldsContested   int `json:"heraldsContested"`
	ExcusedByDeath     int `json:"excusedByDeath"`
	ExcusedByProximity int `json:"excusedByProximity"`
}

// Stats bundles every detector's aggregate. A failed component leaves its
// entry at the zero value.
type Stats struct {
	CS        CSStats        `json:"cs"`
	Vision    VisionStats    `json:"vision"`
	Objective ObjectiveStats `json:"objective"`
}

// Warning is a non-fatal degradation recorded during analysis.
type Warning struct {
	Component string `json:"component"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// Warning codes.
const (
	WarnMissingOpponent   = "missing-opponent"
	WarnOpponentHeuristic = "opponent-heuristic"
)

// ComponentFailure records a component that aborted; its output is empty.
type ComponentFailure struct {
	Component string `json:"component"`
	Reason    string `json:"reason"`
}

// Report is the full output of one match analysis for one player.
type Report struct {
	MatchID        string             `json:"matchId"`
	PUUID          string             `json:"puuid"`
	Champion       string             `json:"champion"`
	Position       string             `json:"position"`
	Win            bool               `json:"win"`
	DurationSec    int                `json:"durationSec"`
	Errors         []DetectedError    `json:"errors"`
	Stats          Stats              `json:"stats"`
	CategoryScores map[Category]int   `json:"categoryScores"`
	OverallScore   int                `json:"overallScore"`
	Tips           []CoachingTip      `json:"tips"`
	Highlights     []Highlight        `json:"highlights"`
	Clips          []Clip             `json:"clips"`
	Scores         []PerformanceScore `json:"scores"`
	Ranking        map[string]int     `json:"ranking"`
	Warnings       []Warning          `json:"warnings,omitempty"`
	Failures       []ComponentFailure `json:"failures,omitempty"`
}

// AnalysisSummary is the stored header row of one analysis.
type AnalysisSummary struct {
	MatchID      string
	PUUID        string
	Champion     string
	Position     string
	Win          bool
	DurationSec  int
	OverallScore int
	ErrorCount   int
	AnalyzedAt   string // RFC 3339, UTC
}

// TrendPoint is one stored match in a player's chronological history.
type TrendPoint struct {
	AnalysisSummary
	CategoryScores map[Category]int
}
