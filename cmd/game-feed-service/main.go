package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fortuna/services/game-feed-service/internal/api"
	"github.com/fortuna/services/game-feed-service/internal/feed"
	"github.com/fortuna/services/game-feed-service/internal/poller"
	"github.com/fortuna/services/game-feed-service/internal/providers/shl"
	"github.com/fortuna/services/game-feed-service/internal/publisher"
	"github.com/fortuna/services/game-feed-service/internal/store"
	"github.com/fortuna/services/game-feed-service/internal/ws"
	"github.com/redis/go-redis/v9"
)

func main() {
	log.Println("Starting Game Feed Service...")

	// Load configuration from environment
	redisURL := getEnv("REDIS_URL", "redis://localhost:6380")
	listenAddr := getEnv("LISTEN_ADDR", ":8085")
	apiBaseURL := getEnv("FEED_API_URL", shl.BaseURL)
	corsOrigins := strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ",")
	pollInterval := getDurationEnv("POLL_INTERVAL", 10*time.Second)
	eventsTTL := getDurationEnv("EVENTS_TTL", 5*time.Second)
	statsTTL := getDurationEnv("STATS_TTL", 60*time.Second)

	// Initialize Redis client
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	redisClient := redis.NewClient(opts)
	defer redisClient.Close()

	// Test Redis connection
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis")

	// Initialize components
	keyedStore := store.NewRedisStore(redisClient)
	client := shl.NewWithBaseURL(apiBaseURL)
	eventService := feed.NewEventService(keyedStore, client)
	playerService := feed.NewPlayerService(keyedStore, client)
	statsService := feed.NewStatsService(keyedStore, client)
	streamPublisher := publisher.NewStreamPublisher(redisClient)
	hub := ws.NewHub()

	gamePoller := poller.New(keyedStore, eventService, playerService, statsService, streamPublisher, hub, poller.Config{
		Interval:  pollInterval,
		EventsTTL: eventsTTL,
		StatsTTL:  statsTTL,
	})

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
	}()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		hub.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		gamePoller.Run(ctx)
	}()

	// Start HTTP server
	handler := api.NewFeedHandler(eventService, playerService, statsService)
	srv := &http.Server{
		Addr:         listenAddr,
		Handler:      api.NewRouter(ctx, handler, hub, corsOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("API listening on %s", listenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Game Feed Service stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using default %s", key, defaultValue)
	}
	return defaultValue
}
