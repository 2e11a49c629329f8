package models

// Season is the fixed season tag stamped on every athlete record.
// One deployment serves exactly one season.
type Season string

const CurrentSeason Season = "2023"

// AthleteType discriminates skater from goalkeeper stat lines
type AthleteType string

const (
	AthleteTypePlayer     AthleteType = "Player"
	AthleteTypeGoalkeeper AthleteType = "Goalkeeper"
)

// SkaterStats holds a skater's accumulated in-game statistics
type SkaterStats struct {
	PlusMinus   int `json:"+/-"`
	Assists     int `json:"a"`
	FaceoffLost int `json:"fol"`
	FaceoffWon  int `json:"fow"`
	Goals       int `json:"g"`
	Hits        int `json:"hits"`
	PenaltyMins int `json:"pim"`
	ShotsOnGoal int `json:"sog"`
	ShotsWide   int `json:"sw"`
	TOISeconds  int `json:"toi_s"`
	GamesPlayed int `json:"gp"`
}

// GoalkeeperStats holds a goalkeeper's accumulated in-game statistics
type GoalkeeperStats struct {
	GoalsAgainst        int `json:"ga"`
	ShotsOnGoalAgainst  int `json:"soga"`
	ShotAttemptsAgainst int `json:"spga"`
	Saves               int `json:"svs"`
	GamesPlayed         int `json:"gp"`
}

// Athlete merges a player's identity with one of the two stat shapes.
// Identity is the provider's numeric player id; exactly one of Skater or
// Goalkeeper is set, matching Type.
type Athlete struct {
	ID         int         `json:"id"`
	FirstName  string      `json:"first_name"`
	FamilyName string      `json:"family_name"`
	Jersey     int         `json:"jersey"`
	TeamCode   string      `json:"team_code"`
	Position   string      `json:"position"`
	Season     Season      `json:"season"`
	Type       AthleteType `json:"type"`

	Skater     *SkaterStats     `json:"skater,omitempty"`
	Goalkeeper *GoalkeeperStats `json:"goalkeeper,omitempty"`
}
