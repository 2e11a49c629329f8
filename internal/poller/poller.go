package poller

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/fortuna/services/game-feed-service/internal/feed"
	"github.com/fortuna/services/game-feed-service/pkg/models"
)

// GameLister supplies the set of games currently worth polling.
// The schedule service maintains it; entries are either a bare game UUID
// (defaults to SHL) or "<league>:<uuid>".
type GameLister interface {
	LiveGames(ctx context.Context) ([]string, error)
}

// EventPublisher pushes publish-worthy events to downstream consumers
type EventPublisher interface {
	PublishEvent(ctx context.Context, league models.League, event models.GameEvent) error
}

// Broadcaster fans events out to connected UI clients
type Broadcaster interface {
	Broadcast(event models.GameEvent)
}

// Config holds the poller's intervals and per-feed TTLs. The TTLs throttle
// upstream call frequency per game; the tick interval only bounds how often
// staleness is re-checked.
type Config struct {
	Interval  time.Duration
	EventsTTL time.Duration
	StatsTTL  time.Duration
}

// DefaultConfig matches live-game cadence: events every few seconds,
// stats feeds less often
func DefaultConfig() Config {
	return Config{
		Interval:  10 * time.Second,
		EventsTTL: 5 * time.Second,
		StatsTTL:  60 * time.Second,
	}
}

// Poller drives the update path for every tracked live game and hands
// newly stored publish-worthy events to the publisher and the hub.
type Poller struct {
	games     GameLister
	events    *feed.EventService
	players   *feed.PlayerService
	stats     *feed.StatsService
	publisher EventPublisher
	hub       Broadcaster
	config    Config
}

// New creates a poller over the feed services
func New(
	games GameLister,
	events *feed.EventService,
	players *feed.PlayerService,
	stats *feed.StatsService,
	pub EventPublisher,
	hub Broadcaster,
	config Config,
) *Poller {
	return &Poller{
		games:     games,
		events:    events,
		players:   players,
		stats:     stats,
		publisher: pub,
		hub:       hub,
		config:    config,
	}
}

// Run starts the polling loop
func (p *Poller) Run(ctx context.Context) {
	log.Printf("[poller] starting, interval=%s", p.config.Interval)

	ticker := time.NewTicker(p.config.Interval)
	defer ticker.Stop()

	p.pollOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("[poller] stopping")
			return
		case <-ticker.C:
			p.pollOnce(ctx)
		}
	}
}

// pollOnce runs one update cycle over all tracked games
func (p *Poller) pollOnce(ctx context.Context) {
	entries, err := p.games.LiveGames(ctx)
	if err != nil {
		log.Printf("[poller] error listing live games: %v", err)
		return
	}

	for _, entry := range entries {
		league, gameUUID := parseGameEntry(entry)
		p.pollGame(ctx, league, gameUUID)
	}
}

// pollGame updates all three feeds for one game
func (p *Poller) pollGame(ctx context.Context, league models.League, gameUUID string) {
	events, err := p.events.Update(ctx, gameUUID, &p.config.EventsTTL)
	if err != nil {
		log.Printf("[poller] error updating events for %s: %v", gameUUID, err)
		return
	}

	published := 0
	for _, event := range events {
		inserted, err := p.events.Store(ctx, gameUUID, event)
		if err != nil {
			log.Printf("[poller] error storing event %s/%s: %v", gameUUID, event.EventID, err)
			continue
		}
		if !inserted || !event.ShouldPublish() {
			continue
		}

		if err := p.publisher.PublishEvent(ctx, league, event); err != nil {
			log.Printf("[poller] error publishing event %s/%s: %v", gameUUID, event.EventID, err)
		}
		p.hub.Broadcast(event)
		published++
	}

	if _, err := p.players.Update(ctx, league, gameUUID, &p.config.StatsTTL); err != nil {
		log.Printf("[poller] error updating player stats for %s: %v", gameUUID, err)
	}
	if _, err := p.stats.Update(ctx, league, gameUUID, &p.config.StatsTTL); err != nil {
		log.Printf("[poller] error updating team stats for %s: %v", gameUUID, err)
	}

	log.Printf("[poller] %s: %d events, %d published", gameUUID, len(events), published)
}

// parseGameEntry splits a tracked-game entry into league and game UUID
func parseGameEntry(entry string) (models.League, string) {
	prefix, rest, found := strings.Cut(entry, ":")
	if found {
		switch models.League(prefix) {
		case models.LeagueSHL, models.LeagueHA:
			return models.League(prefix), rest
		}
	}
	return models.LeagueSHL, entry
}
