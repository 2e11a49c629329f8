package feed

import (
	"strconv"
	"strings"

	"github.com/fortuna/services/game-feed-service/internal/providers/shl"
	"github.com/fortuna/services/game-feed-service/pkg/models"
)

// markers holds the feed's locale-specific lexical markers. The provider
// writes descriptions in Swedish; localization is a data change here, not
// a parser rewrite.
var markers = struct {
	// Penalized separates the penalized player from the penalty details
	// in a penalty description ("is penalized").
	Penalized string
}{
	Penalized: "utvisas ",
}

// periodStatusPlaying is the raw period-marker status that means the
// period just started. Exact, case-sensitive match; every other value,
// known or not, marks a period end.
const periodStatusPlaying = "Playing"

// MapEvent converts one raw play-by-play record into its normalized
// projection. Total and non-failing: every raw class maps to exactly one
// variant, unrecognized or informational classes map to General.
func MapEvent(gameUUID string, raw shl.PlayByPlay) models.GameEvent {
	event := models.GameEvent{
		GameUUID:    gameUUID,
		EventID:     strconv.Itoa(raw.EventID),
		Revision:    raw.Revision,
		Status:      models.StatusFromPeriod(raw.Period.Int()),
		GameTime:    raw.GameTime,
		Description: raw.Description,
	}

	switch raw.Class {
	case shl.ClassGoal:
		event.Type = models.EventTypeGoal
		event.Goal = mapGoal(raw)

	case shl.ClassShot, shl.ClassShotBlocked, shl.ClassShotWide, shl.ClassShotIron,
		shl.ClassPenaltyShot, shl.ClassShootoutPenaltyShot:
		event.Type = models.EventTypeShot
		event.Shot = &models.ShotInfo{
			Team:     raw.Team,
			Location: models.Location{X: raw.Location.X, Y: raw.Location.Y},
		}

	case shl.ClassPenalty:
		event.Type = models.EventTypePenalty
		event.Penalty = mapPenalty(raw.Description, raw.Team)

	case shl.ClassTimeout:
		event.Type = models.EventTypeTimeout

	case shl.ClassPeriod:
		if raw.Extra.GameStatus == periodStatusPlaying {
			event.Type = models.EventTypePeriodStart
		} else {
			event.Type = models.EventTypePeriodEnd
		}

	default:
		// General, Livefeed, GoolkeeperEvent and anything new
		event.Type = models.EventTypeGeneral
	}

	return event
}

// mapGoal extracts goal details from a raw Goal record
func mapGoal(raw shl.PlayByPlay) *models.GoalInfo {
	info := &models.GoalInfo{
		Team:           raw.Team,
		TeamAdvantage:  raw.Extra.TeamAdvantage,
		HomeTeamResult: raw.Extra.HomeForward.Int(),
		AwayTeamResult: raw.Extra.HomeAgainst.Int(),
		Location:       models.Location{X: raw.Location.X, Y: raw.Location.Y},
	}

	if player, ok := models.ParsePlayer(raw.Extra.ScorerLong); ok {
		info.Player = &player
	}
	if raw.Extra.Assist != "" {
		assist := raw.Extra.Assist
		info.Assist = &assist
	}

	return info
}

// mapPenalty parses a penalty description of the form
// "<jersey> <name> utvisas <penalty>, <reason>". When the marker word is
// missing the player, penalty and reason are all absent, never partially
// populated.
func mapPenalty(description, team string) *models.PenaltyInfo {
	info := &models.PenaltyInfo{Team: team}

	playerPart, detailPart, found := strings.Cut(description, markers.Penalized)
	if !found {
		return info
	}

	if player, ok := models.ParsePlayer(strings.TrimSpace(playerPart)); ok {
		info.Player = &player
	}

	if penalty, reason, ok := strings.Cut(detailPart, ","); ok {
		penalty, reason = strings.TrimSpace(penalty), strings.TrimSpace(reason)
		info.Penalty = &penalty
		info.Reason = &reason
	}

	return info
}
