package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fortuna/services/game-feed-service/internal/providers/shl"
	"github.com/fortuna/services/game-feed-service/internal/store"
	"github.com/fortuna/services/game-feed-service/pkg/models"
)

// totalPeriodLabel tags the breakdown entry holding full-game totals
const totalPeriodLabel = "Total"

// Captions locating each statistic inside a period's captioned value list
const (
	captionGoals       = "G"
	captionShotsOnGoal = "SOG"
	captionFaceoffWon  = "FOWon"
	captionPenaltyMins = "PIM"
)

// StatsService maintains the per-game team stats feed, cached under the
// shared rest namespace keyed by its provider URL.
type StatsService struct {
	gateway *Gateway
	store   store.KeyedStore
	client  *shl.Client
}

// NewStatsService creates a team stats service over the given store and client
func NewStatsService(st store.KeyedStore, client *shl.Client) *StatsService {
	return &StatsService{
		gateway: NewGateway(st),
		store:   st,
		client:  client,
	}
}

// Update refreshes the team stats cache for a game when it is stale and
// returns the extracted totals. Upstream failure yields zeroed totals,
// never an error.
func (s *StatsService) Update(ctx context.Context, league models.League, gameUUID string, ttl *time.Duration) (models.HomeAwayStats, error) {
	url := s.client.GameStatsURL(league, gameUUID)

	data, err := s.gateway.GetOrRefresh(ctx, store.NamespaceRest, url, ttl, emptyObject, func(ctx context.Context) ([]byte, error) {
		rsp, err := s.client.FetchGameStats(ctx, league, gameUUID)
		if err != nil {
			return nil, err
		}
		return json.Marshal(rsp)
	})
	if err != nil {
		return models.HomeAwayStats{}, err
	}

	var rsp shl.GameStatsV2
	if err := json.Unmarshal(data, &rsp); err != nil {
		return models.HomeAwayStats{}, fmt.Errorf("unmarshaling team stats for %s: %w", gameUUID, err)
	}
	return extractStats(&rsp), nil
}

// Read returns the cached team totals for a game, without fetching.
// ok is false when nothing has been cached yet.
func (s *StatsService) Read(ctx context.Context, league models.League, gameUUID string) (models.HomeAwayStats, bool, error) {
	url := s.client.GameStatsURL(league, gameUUID)

	data, ok, err := s.store.Read(ctx, store.NamespaceRest, url)
	if err != nil {
		return models.HomeAwayStats{}, false, err
	}
	if !ok {
		return models.HomeAwayStats{}, false, nil
	}

	var rsp shl.GameStatsV2
	if err := json.Unmarshal(data, &rsp); err != nil {
		return models.HomeAwayStats{}, false, fmt.Errorf("unmarshaling team stats for %s: %w", gameUUID, err)
	}
	return extractStats(&rsp), true, nil
}

// IsStale reports whether the cached team stats for a game are older than
// ttl. A nil ttl always reports stale.
func (s *StatsService) IsStale(ctx context.Context, league models.League, gameUUID string, ttl *time.Duration) bool {
	url := s.client.GameStatsURL(league, gameUUID)
	return s.store.IsStale(ctx, store.NamespaceRest, url, ttl)
}

// extractStats pulls both teams' totals out of the "Total" breakdown
// entry. Each caption is searched independently; a missing caption (or a
// missing Total entry entirely) yields zero for both sides.
func extractStats(rsp *shl.GameStatsV2) models.HomeAwayStats {
	var statistics []shl.CaptionedValue
	for _, entry := range rsp.PeriodStatsBreakdown {
		if entry.Period.Value == totalPeriodLabel {
			statistics = entry.Statistics
			break
		}
	}

	goals := findCaption(statistics, captionGoals)
	sog := findCaption(statistics, captionShotsOnGoal)
	fow := findCaption(statistics, captionFaceoffWon)
	pim := findCaption(statistics, captionPenaltyMins)

	return models.HomeAwayStats{
		Home: models.TeamStats{
			Goals:       goals.HomeTeamValue.Int(),
			ShotsOnGoal: sog.HomeTeamValue.Int(),
			PenaltyMins: pim.HomeTeamValue.Int(),
			FaceoffWon:  fow.HomeTeamValue.Int(),
		},
		Away: models.TeamStats{
			Goals:       goals.AwayTeamValue.Int(),
			ShotsOnGoal: sog.AwayTeamValue.Int(),
			PenaltyMins: pim.AwayTeamValue.Int(),
			FaceoffWon:  fow.AwayTeamValue.Int(),
		},
	}
}

// findCaption linear-searches a captioned value list, zero when absent
func findCaption(statistics []shl.CaptionedValue, caption string) shl.CaptionedValue {
	for _, stat := range statistics {
		if stat.Caption == caption {
			return stat
		}
	}
	return shl.CaptionedValue{}
}
