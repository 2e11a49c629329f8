package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fortuna/services/game-feed-service/internal/providers/shl"
	"github.com/fortuna/services/game-feed-service/internal/store"
	"github.com/fortuna/services/game-feed-service/pkg/models"
)

const playerStatsBody = `{
	"stats": {
		"homeTeamValue": [
			{"info": {"playerId": 101, "teamId": "LHF"}, "+/-": 1, "A": 2, "FOL": 3, "FOW": 4, "G": 1, "Hits": 5, "PIM": 2, "SOG": 6, "SW": 2, "TOI": "12:34", "POS": "CE", "NR": 40}
		],
		"awayTeamValue": [
			{"info": {"playerId": 202, "teamId": "FHC"}, "+/-": "-1", "A": 0, "FOL": 0, "FOW": 0, "G": 0, "Hits": 1, "PIM": 0, "SOG": 1, "SW": 0, "TOI": "08:02", "POS": "LW", "NR": "17"}
		]
	},
	"players": {
		"homeTeamValue": {"101": {"firstName": "Marcus", "lastName": "Nilsson"}},
		"awayTeamValue": {"202": {"firstName": "Erik", "lastName": "Lindgren"}}
	},
	"gkStats": {
		"homeTeamValue": [
			{"info": {"playerId": 301, "teamId": "LHF"}, "GA": 1, "SOGA": 20, "SPGA": 33, "SVS": 19, "NR": 1}
		],
		"awayTeamValue": [
			{"info": {"playerId": 302, "teamId": "FHC"}, "GA": 0, "SOGA": 0, "SPGA": 0, "SVS": 0, "NR": 30}
		]
	},
	"goalkeepers": {
		"homeTeamValue": {"301": {"firstName": "Anton", "lastName": "Berg"}},
		"awayTeamValue": {"302": {"firstName": "Oskar", "lastName": "Sund"}}
	}
}`

func newPlayerService(t *testing.T, handler http.HandlerFunc) (*PlayerService, *store.MemoryStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	st := store.NewMemoryStore()
	return NewPlayerService(st, shl.NewWithBaseURL(server.URL)), st
}

func TestPlayerServiceUpdate(t *testing.T) {
	svc, _ := newPlayerService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, playerStatsBody)
	})

	athletes, err := svc.Update(context.Background(), models.LeagueSHL, "game-1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(athletes) != 4 {
		t.Fatalf("len(athletes) = %d, want 4", len(athletes))
	}

	// Skaters first (home, then away), goalkeepers appended after.
	skater := athletes[0]
	if skater.ID != 101 {
		t.Errorf("ID = %d, want 101", skater.ID)
	}
	if skater.FirstName != "Marcus" || skater.FamilyName != "Nilsson" {
		t.Errorf("name = %s %s", skater.FirstName, skater.FamilyName)
	}
	if skater.Type != models.AthleteTypePlayer || skater.Skater == nil {
		t.Fatalf("expected skater stats, got %+v", skater)
	}
	if skater.Skater.TOISeconds != 754 {
		t.Errorf("TOISeconds = %d, want 754", skater.Skater.TOISeconds)
	}
	if skater.Skater.GamesPlayed != 1 {
		t.Errorf("GamesPlayed = %d, want 1", skater.Skater.GamesPlayed)
	}
	if skater.Season != models.CurrentSeason {
		t.Errorf("Season = %v", skater.Season)
	}

	away := athletes[1]
	if away.ID != 202 || away.TeamCode != "FHC" {
		t.Errorf("athletes[1] = %+v", away)
	}
	if away.Skater == nil || away.Skater.PlusMinus != -1 {
		t.Errorf("string-encoded +/- not decoded: %+v", away.Skater)
	}

	gk := athletes[2]
	if gk.Type != models.AthleteTypeGoalkeeper || gk.Goalkeeper == nil {
		t.Fatalf("expected goalkeeper, got %+v", gk)
	}
	if gk.Position != "GK" {
		t.Errorf("Position = %q, want GK", gk.Position)
	}
	if gk.Goalkeeper.GamesPlayed != 1 {
		t.Errorf("goalkeeper with saves should have GamesPlayed = 1, got %d", gk.Goalkeeper.GamesPlayed)
	}

	idle := athletes[3]
	if idle.Goalkeeper == nil || idle.Goalkeeper.GamesPlayed != 0 {
		t.Errorf("goalkeeper without saves should have GamesPlayed = 0, got %+v", idle.Goalkeeper)
	}
}

func TestPlayerServiceUpdateFetchFailure(t *testing.T) {
	svc, _ := newPlayerService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	athletes, err := svc.Update(context.Background(), models.LeagueSHL, "game-1", nil)
	if err != nil {
		t.Fatalf("upstream failure must not propagate, got %v", err)
	}
	if len(athletes) != 0 {
		t.Errorf("len(athletes) = %d, want 0", len(athletes))
	}
}

func TestPlayerServiceUpdateThrottled(t *testing.T) {
	requests := 0
	svc, _ := newPlayerService(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, playerStatsBody)
	})

	ctx := context.Background()
	ttl := time.Minute

	if _, err := svc.Update(ctx, models.LeagueSHL, "game-1", &ttl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Update(ctx, models.LeagueSHL, "game-1", &ttl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requests != 1 {
		t.Errorf("requests = %d, want 1", requests)
	}

	// A different game misses the cache.
	if _, err := svc.Update(ctx, models.LeagueSHL, "game-2", &ttl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requests != 2 {
		t.Errorf("requests = %d, want 2", requests)
	}
}

func TestPlayerServiceRead(t *testing.T) {
	svc, _ := newPlayerService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, playerStatsBody)
	})
	ctx := context.Background()

	// Nothing cached yet.
	_, ok, err := svc.Read(ctx, models.LeagueSHL, "game-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false before any update")
	}

	if _, err := svc.Update(ctx, models.LeagueSHL, "game-1", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	athletes, ok, err := svc.Read(ctx, models.LeagueSHL, "game-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true after update")
	}
	if len(athletes) != 4 {
		t.Errorf("len(athletes) = %d, want 4", len(athletes))
	}
}

func TestPlayerServiceIsStale(t *testing.T) {
	svc, _ := newPlayerService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, playerStatsBody)
	})
	ctx := context.Background()
	ttl := time.Minute

	if !svc.IsStale(ctx, models.LeagueSHL, "game-1", &ttl) {
		t.Error("empty cache should be stale")
	}

	if _, err := svc.Update(ctx, models.LeagueSHL, "game-1", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if svc.IsStale(ctx, models.LeagueSHL, "game-1", &ttl) {
		t.Error("freshly updated cache should not be stale")
	}
	if !svc.IsStale(ctx, models.LeagueSHL, "game-1", nil) {
		t.Error("nil ttl should always be stale")
	}
}
