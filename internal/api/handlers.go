package api

import (
	"encoding/json"
	"net/http"

	"github.com/fortuna/services/game-feed-service/internal/feed"
	"github.com/fortuna/services/game-feed-service/internal/providers/shl"
	"github.com/fortuna/services/game-feed-service/pkg/models"
	"github.com/go-chi/chi/v5"
)

// FeedHandler serves cache-only reads of the three feeds plus the push
// ingestion endpoint. Reads never trigger upstream fetches.
type FeedHandler struct {
	events  *feed.EventService
	players *feed.PlayerService
	stats   *feed.StatsService
}

// NewFeedHandler creates a feed handler over the feed services
func NewFeedHandler(events *feed.EventService, players *feed.PlayerService, stats *feed.StatsService) *FeedHandler {
	return &FeedHandler{
		events:  events,
		players: players,
		stats:   stats,
	}
}

// HandleGetEvents returns the stored normalized events for a game
// GET /api/v1/games/{gameUUID}/events
func (h *FeedHandler) HandleGetEvents(w http.ResponseWriter, r *http.Request) {
	gameUUID := chi.URLParam(r, "gameUUID")
	if gameUUID == "" {
		http.Error(w, "gameUUID is required", http.StatusBadRequest)
		return
	}

	events, err := h.events.Read(r.Context(), gameUUID)
	if err != nil {
		http.Error(w, "Error reading events", http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []models.GameEvent{}
	}

	writeJSON(w, map[string]interface{}{
		"game_uuid": gameUUID,
		"events":    events,
		"count":     len(events),
	})
}

// HandleGetPlayers returns the cached athlete records for a game
// GET /api/v1/games/{gameUUID}/players?league={league}
func (h *FeedHandler) HandleGetPlayers(w http.ResponseWriter, r *http.Request) {
	gameUUID := chi.URLParam(r, "gameUUID")
	if gameUUID == "" {
		http.Error(w, "gameUUID is required", http.StatusBadRequest)
		return
	}
	league := leagueParam(r)

	athletes, ok, err := h.players.Read(r.Context(), league, gameUUID)
	if err != nil {
		http.Error(w, "Error reading player stats", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Player stats not found", http.StatusNotFound)
		return
	}

	writeJSON(w, map[string]interface{}{
		"game_uuid": gameUUID,
		"league":    league,
		"players":   athletes,
		"count":     len(athletes),
	})
}

// HandleGetStats returns the cached team totals for a game
// GET /api/v1/games/{gameUUID}/stats?league={league}
func (h *FeedHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	gameUUID := chi.URLParam(r, "gameUUID")
	if gameUUID == "" {
		http.Error(w, "gameUUID is required", http.StatusBadRequest)
		return
	}
	league := leagueParam(r)

	stats, ok, err := h.stats.Read(r.Context(), league, gameUUID)
	if err != nil {
		http.Error(w, "Error reading team stats", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Team stats not found", http.StatusNotFound)
		return
	}

	writeJSON(w, map[string]interface{}{
		"game_uuid": gameUUID,
		"league":    league,
		"stats":     stats,
	})
}

// HandlePushEvent ingests a single raw record pushed by the provider,
// upserting it into both the raw and the normalized sequences
// POST /api/v1/games/{gameUUID}/events
func (h *FeedHandler) HandlePushEvent(w http.ResponseWriter, r *http.Request) {
	gameUUID := chi.URLParam(r, "gameUUID")
	if gameUUID == "" {
		http.Error(w, "gameUUID is required", http.StatusBadRequest)
		return
	}

	var raw shl.PlayByPlay
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, "Invalid event payload", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	inserted, err := h.events.StoreRaw(ctx, gameUUID, raw)
	if err != nil {
		http.Error(w, "Error storing event", http.StatusInternalServerError)
		return
	}

	event := feed.MapEvent(gameUUID, raw)
	if _, err := h.events.Store(ctx, gameUUID, event); err != nil {
		http.Error(w, "Error storing event", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]interface{}{
		"game_uuid": gameUUID,
		"event_id":  event.EventID,
		"new":       inserted,
	})
}

// HandleHealth is the liveness endpoint
// GET /health
func (h *FeedHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status": "ok",
	})
}

// leagueParam reads the league query param, defaulting to SHL
func leagueParam(r *http.Request) models.League {
	switch models.League(r.URL.Query().Get("league")) {
	case models.LeagueHA:
		return models.LeagueHA
	default:
		return models.LeagueSHL
	}
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
