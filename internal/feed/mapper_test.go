package feed

import (
	"testing"

	"github.com/fortuna/services/game-feed-service/internal/providers/shl"
	"github.com/fortuna/services/game-feed-service/pkg/models"
)

func TestMapEventVariants(t *testing.T) {
	tests := []struct {
		class string
		want  models.EventType
	}{
		{shl.ClassGoal, models.EventTypeGoal},
		{shl.ClassShot, models.EventTypeShot},
		{shl.ClassShotBlocked, models.EventTypeShot},
		{shl.ClassShotWide, models.EventTypeShot},
		{shl.ClassShotIron, models.EventTypeShot},
		{shl.ClassPenaltyShot, models.EventTypeShot},
		{shl.ClassShootoutPenaltyShot, models.EventTypeShot},
		{shl.ClassPenalty, models.EventTypePenalty},
		{shl.ClassTimeout, models.EventTypeTimeout},
		{shl.ClassGeneral, models.EventTypeGeneral},
		{shl.ClassLivefeed, models.EventTypeGeneral},
		{shl.ClassGoalkeeperEvent, models.EventTypeGeneral},
		{"SomethingNew", models.EventTypeGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			event := MapEvent("game-1", shl.PlayByPlay{EventID: 1, Class: tt.class})
			if event.Type != tt.want {
				t.Errorf("MapEvent class %q type = %v, want %v", tt.class, event.Type, tt.want)
			}
		})
	}
}

func TestMapEventPeriodClassification(t *testing.T) {
	tests := []struct {
		status string
		want   models.EventType
	}{
		{"Playing", models.EventTypePeriodStart},
		{"Ended", models.EventTypePeriodEnd},
		{"", models.EventTypePeriodEnd},
		{"Intermission", models.EventTypePeriodEnd},
		{"playing", models.EventTypePeriodEnd}, // exact, case-sensitive match
	}

	for _, tt := range tests {
		t.Run("status "+tt.status, func(t *testing.T) {
			raw := shl.PlayByPlay{
				EventID: 1,
				Class:   shl.ClassPeriod,
				Extra:   shl.PlayExtra{GameStatus: tt.status},
			}
			if got := MapEvent("game-1", raw).Type; got != tt.want {
				t.Errorf("period status %q -> %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestMapEventPenaltySplit(t *testing.T) {
	raw := shl.PlayByPlay{
		EventID:     7,
		Class:       shl.ClassPenalty,
		Team:        "LHF",
		Description: "5 Karl Karlsson utvisas 2 min, Hooking",
	}

	event := MapEvent("game-1", raw)
	if event.Type != models.EventTypePenalty {
		t.Fatalf("Type = %v, want Penalty", event.Type)
	}
	if event.Penalty == nil {
		t.Fatal("Penalty info missing")
	}

	info := event.Penalty
	if info.Team != "LHF" {
		t.Errorf("Team = %q, want LHF", info.Team)
	}
	if info.Player == nil {
		t.Fatal("Player missing")
	}
	if info.Player.Jersey != "5" || info.Player.FirstName != "Karl" || info.Player.FamilyName != "Karlsson" {
		t.Errorf("Player = %+v", info.Player)
	}
	if info.Penalty == nil || *info.Penalty != "2 min" {
		t.Errorf("Penalty = %v, want 2 min", info.Penalty)
	}
	if info.Reason == nil || *info.Reason != "Hooking" {
		t.Errorf("Reason = %v, want Hooking", info.Reason)
	}
}

func TestMapEventPenaltyWithoutMarker(t *testing.T) {
	raw := shl.PlayByPlay{
		EventID:     8,
		Class:       shl.ClassPenalty,
		Team:        "FHC",
		Description: "Too many men on the ice",
	}

	info := MapEvent("game-1", raw).Penalty
	if info == nil {
		t.Fatal("Penalty info missing")
	}
	if info.Player != nil || info.Penalty != nil || info.Reason != nil {
		t.Errorf("expected all optional fields absent, got %+v", info)
	}
}

func TestMapEventPenaltyWithoutComma(t *testing.T) {
	raw := shl.PlayByPlay{
		EventID:     9,
		Class:       shl.ClassPenalty,
		Team:        "FHC",
		Description: "12 Anna Andersson utvisas 2 min Hooking",
	}

	info := MapEvent("game-1", raw).Penalty
	if info == nil {
		t.Fatal("Penalty info missing")
	}
	if info.Player == nil {
		t.Error("Player should still be parsed")
	}
	if info.Penalty != nil || info.Reason != nil {
		t.Errorf("Penalty and Reason should be absent without a comma, got %+v", info)
	}
}

func TestMapEventGoal(t *testing.T) {
	raw := shl.PlayByPlay{
		EventID:     42,
		Revision:    3,
		Period:      shl.IntOrString(2),
		GameTime:    "27:14",
		Description: "Mål!",
		Class:       shl.ClassGoal,
		Team:        "LHF",
		Location:    shl.Location{X: 12.5, Y: -3},
		Extra: shl.PlayExtra{
			ScorerLong:    "40 Marcus Nilsson",
			TeamAdvantage: "PP1",
			Assist:        "29 Erik Lindgren",
			HomeForward:   shl.IntOrString(2),
			HomeAgainst:   shl.IntOrString(1),
		},
	}

	event := MapEvent("game-1", raw)
	if event.EventID != "42" {
		t.Errorf("EventID = %q, want 42", event.EventID)
	}
	if event.Revision != 3 {
		t.Errorf("Revision = %d, want 3", event.Revision)
	}
	if event.Status != models.StatusPeriod2 {
		t.Errorf("Status = %v, want Period2", event.Status)
	}
	if event.Goal == nil {
		t.Fatal("Goal info missing")
	}

	goal := event.Goal
	if goal.Player == nil || goal.Player.FamilyName != "Nilsson" {
		t.Errorf("Player = %+v", goal.Player)
	}
	if goal.TeamAdvantage != "PP1" {
		t.Errorf("TeamAdvantage = %q", goal.TeamAdvantage)
	}
	if goal.Assist == nil || *goal.Assist != "29 Erik Lindgren" {
		t.Errorf("Assist = %v", goal.Assist)
	}
	if goal.HomeTeamResult != 2 || goal.AwayTeamResult != 1 {
		t.Errorf("score = %d-%d, want 2-1", goal.HomeTeamResult, goal.AwayTeamResult)
	}
	if goal.Location.X != 12.5 || goal.Location.Y != -3 {
		t.Errorf("Location = %+v", goal.Location)
	}
}

func TestMapEventShotCarriesLocation(t *testing.T) {
	raw := shl.PlayByPlay{
		EventID:  10,
		Class:    shl.ClassShotWide,
		Team:     "FHC",
		Location: shl.Location{X: -1, Y: 44},
	}

	event := MapEvent("game-1", raw)
	if event.Shot == nil {
		t.Fatal("Shot info missing")
	}
	if event.Shot.Team != "FHC" {
		t.Errorf("Team = %q", event.Shot.Team)
	}
	if event.Shot.Location.Y != 44 {
		t.Errorf("Location = %+v", event.Shot.Location)
	}
}
