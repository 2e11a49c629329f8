package models

// TeamStats is one side's totals for a game
type TeamStats struct {
	Goals       int `json:"g"`
	ShotsOnGoal int `json:"sog"`
	PenaltyMins int `json:"pim"`
	FaceoffWon  int `json:"fow"`
}

// HomeAwayStats pairs both sides' totals
type HomeAwayStats struct {
	Home TeamStats `json:"home"`
	Away TeamStats `json:"away"`
}
