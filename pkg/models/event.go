package models

// GameStatus represents the phase of play a game is in
type GameStatus string

const (
	StatusComing       GameStatus = "Coming"
	StatusPeriod1      GameStatus = "Period1"
	StatusPeriod2      GameStatus = "Period2"
	StatusPeriod3      GameStatus = "Period3"
	StatusOvertime     GameStatus = "Overtime"
	StatusShootout     GameStatus = "Shootout"
	StatusIntermission GameStatus = "Intermission"
)

// StatusFromPeriod derives a game status from the provider's numeric period
func StatusFromPeriod(period int) GameStatus {
	switch period {
	case 0:
		return StatusComing
	case 1:
		return StatusPeriod1
	case 2:
		return StatusPeriod2
	case 3:
		return StatusPeriod3
	case 4:
		return StatusOvertime
	case 5:
		return StatusShootout
	default:
		return StatusIntermission
	}
}

// EventType is the closed set of normalized event variants
type EventType string

const (
	EventTypeGoal        EventType = "Goal"
	EventTypePeriodStart EventType = "PeriodStart"
	EventTypePeriodEnd   EventType = "PeriodEnd"
	EventTypeGameStart   EventType = "GameStart"
	EventTypeGameEnd     EventType = "GameEnd"
	EventTypePenalty     EventType = "Penalty"
	EventTypeShot        EventType = "Shot"
	EventTypeTimeout     EventType = "Timeout"
	EventTypeGeneral     EventType = "General"
)

// Location is a rink position in provider coordinates
type Location struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// GoalInfo carries the details of a Goal event
type GoalInfo struct {
	Team           string   `json:"team"`
	Player         *Player  `json:"player,omitempty"`
	TeamAdvantage  string   `json:"team_advantage"`
	Assist         *string  `json:"assist,omitempty"`
	HomeTeamResult int      `json:"home_team_result"`
	AwayTeamResult int      `json:"away_team_result"`
	Location       Location `json:"location"`
}

// PenaltyInfo carries the details of a Penalty event.
// Player, Penalty and Reason are best-effort parsed from the provider's
// free-text description and may all be absent.
type PenaltyInfo struct {
	Team    string  `json:"team"`
	Player  *Player `json:"player,omitempty"`
	Penalty *string `json:"penalty,omitempty"`
	Reason  *string `json:"reason,omitempty"`
}

// ShotInfo carries the details of a Shot event
type ShotInfo struct {
	Team     string   `json:"team"`
	Location Location `json:"location"`
}

// GameEndInfo carries the details of a GameEnd event
type GameEndInfo struct {
	Winner *string `json:"winner,omitempty"`
}

// GameEvent is the normalized projection of one play-by-play record.
// Exactly one of the info pointers is set, matching Type; variants without
// extra detail (PeriodStart, Timeout, ...) carry the tag alone.
type GameEvent struct {
	GameUUID    string     `json:"game_uuid"`
	EventID     string     `json:"event_id"`
	Revision    int        `json:"revision"`
	Status      GameStatus `json:"status"`
	GameTime    string     `json:"gametime"`
	Description string     `json:"description"`
	Type        EventType  `json:"type"`

	Goal    *GoalInfo    `json:"goal,omitempty"`
	Penalty *PenaltyInfo `json:"penalty,omitempty"`
	Shot    *ShotInfo    `json:"shot,omitempty"`
	GameEnd *GameEndInfo `json:"game_end,omitempty"`
}

// ShouldPublish reports whether this event warrants a downstream
// notification. Pure function of the variant tag.
func (e *GameEvent) ShouldPublish() bool {
	switch e.Type {
	case EventTypeGoal, EventTypeGameStart, EventTypeGameEnd:
		return true
	default:
		return false
	}
}
