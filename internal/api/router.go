package api

import (
	"context"
	"net/http"
	"time"

	"github.com/fortuna/services/game-feed-service/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter assembles the HTTP surface: feed reads, push ingestion and the
// WebSocket upgrade. serverCtx bounds the lifetime of upgraded connections.
func NewRouter(serverCtx context.Context, handler *FeedHandler, hub *ws.Hub, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", handler.HandleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/games/{gameUUID}/events", handler.HandleGetEvents)
		r.Post("/games/{gameUUID}/events", handler.HandlePushEvent)
		r.Get("/games/{gameUUID}/players", handler.HandleGetPlayers)
		r.Get("/games/{gameUUID}/stats", handler.HandleGetStats)
	})

	r.Get("/ws", func(w http.ResponseWriter, req *http.Request) {
		ws.ServeWS(serverCtx, hub, w, req)
	})

	return r
}
