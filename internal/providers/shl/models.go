package shl

import (
	"strconv"
	"strings"
)

// Play-by-play class tags as the provider sends them.
// "GoolkeeperEvent" is the provider's own spelling.
const (
	ClassGoal                = "Goal"
	ClassShot                = "Shot"
	ClassShotBlocked         = "ShotBlocked"
	ClassShotWide            = "ShotWide"
	ClassShotIron            = "ShotIron"
	ClassPenaltyShot         = "PenaltyShot"
	ClassShootoutPenaltyShot = "ShootoutPenaltyShot"
	ClassPenalty             = "Penalty"
	ClassTimeout             = "Timeout"
	ClassPeriod              = "Period"
	ClassGeneral             = "General"
	ClassLivefeed            = "Livefeed"
	ClassGoalkeeperEvent     = "GoolkeeperEvent"
)

// IntOrString decodes a JSON field the provider sends sometimes as a number
// and sometimes as a quoted string. Unparseable values decode to zero rather
// than failing the whole payload.
type IntOrString int

// UnmarshalJSON implements json.Unmarshaler
func (n *IntOrString) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			*n = 0
			return nil
		}
		v = int(f)
	}
	*n = IntOrString(v)
	return nil
}

// Int returns the decoded value
func (n IntOrString) Int() int {
	return int(n)
}

// Location is a rink position in the provider's coordinate system
type Location struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PlayExtra is the class-dependent tail of a play-by-play record. The
// provider only populates the fields relevant to the record's class.
type PlayExtra struct {
	ScorerLong    string      `json:"scorerLong,omitempty"`
	TeamAdvantage string      `json:"teamAdvantage,omitempty"`
	Assist        string      `json:"assist,omitempty"`
	HomeForward   IntOrString `json:"homeForward,omitempty"`
	HomeAgainst   IntOrString `json:"homeAgainst,omitempty"`
	GameStatus    string      `json:"gameStatus,omitempty"`
}

// PlayByPlay is one raw play-by-play record from the events feed.
// Identity within a game is EventID; Revision increases on edits to the
// same event.
type PlayByPlay struct {
	EventID     int         `json:"eventId"`
	Revision    int         `json:"revision"`
	Period      IntOrString `json:"period"`
	GameTime    string      `json:"gametime"`
	Description string      `json:"description"`
	Class       string      `json:"class"`
	Team        string      `json:"team,omitempty"`
	Location    Location    `json:"location,omitempty"`
	Extra       PlayExtra   `json:"extra,omitempty"`
}

// PlayerName is one entry in the playerId-keyed roster maps
type PlayerName struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// PlayerInfo identifies who a stat line belongs to
type PlayerInfo struct {
	PlayerID int    `json:"playerId"`
	TeamID   string `json:"teamId"`
}

// SkaterLine is a skater's raw stat line
type SkaterLine struct {
	Info      PlayerInfo  `json:"info"`
	PlusMinus IntOrString `json:"+/-"`
	Assists   IntOrString `json:"A"`
	FOL       IntOrString `json:"FOL"`
	FOW       IntOrString `json:"FOW"`
	Goals     IntOrString `json:"G"`
	Hits      IntOrString `json:"Hits"`
	PIM       IntOrString `json:"PIM"`
	SOG       IntOrString `json:"SOG"`
	SW        IntOrString `json:"SW"`
	TOI       string      `json:"TOI"`
	Position  string      `json:"POS"`
	Jersey    IntOrString `json:"NR"`
}

// GoalkeeperLine is a goalkeeper's raw stat line
type GoalkeeperLine struct {
	Info   PlayerInfo  `json:"info"`
	GA     IntOrString `json:"GA"`
	SOGA   IntOrString `json:"SOGA"`
	SPGA   IntOrString `json:"SPGA"`
	SVS    IntOrString `json:"SVS"`
	Jersey IntOrString `json:"NR"`
}

// SkaterListPair holds home/away skater stat lines
type SkaterListPair struct {
	HomeTeamValue []SkaterLine `json:"homeTeamValue"`
	AwayTeamValue []SkaterLine `json:"awayTeamValue"`
}

// GoalkeeperListPair holds home/away goalkeeper stat lines
type GoalkeeperListPair struct {
	HomeTeamValue []GoalkeeperLine `json:"homeTeamValue"`
	AwayTeamValue []GoalkeeperLine `json:"awayTeamValue"`
}

// NameMapPair holds home/away roster maps keyed by playerId.
// JSON object keys are strings even though the ids are numeric.
type NameMapPair struct {
	HomeTeamValue map[string]PlayerName `json:"homeTeamValue"`
	AwayTeamValue map[string]PlayerName `json:"awayTeamValue"`
}

// PlayerStatsRsp is the player stats feed payload
type PlayerStatsRsp struct {
	Stats       SkaterListPair     `json:"stats"`
	Players     NameMapPair        `json:"players"`
	GKStats     GoalkeeperListPair `json:"gkStats"`
	Goalkeepers NameMapPair        `json:"goalkeepers"`
}

// CaptionedValue is one statistic in a period breakdown, located by its
// caption ("G", "SOG", "FOWon", "PIM", ...), not by position
type CaptionedValue struct {
	Caption       string      `json:"caption"`
	HomeTeamValue IntOrString `json:"homeTeamValue"`
	AwayTeamValue IntOrString `json:"awayTeamValue"`
}

// PeriodLabel wraps the breakdown entry's period tag
type PeriodLabel struct {
	Value string `json:"value"`
}

// PeriodStats is one entry in the per-period breakdown
type PeriodStats struct {
	Period     PeriodLabel      `json:"period"`
	Statistics []CaptionedValue `json:"statistics"`
}

// GameStatsV2 is the team stats feed payload
type GameStatsV2 struct {
	PeriodStatsBreakdown []PeriodStats `json:"period_stats_breakdown"`
}
