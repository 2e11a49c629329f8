package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/fortuna/services/game-feed-service/internal/providers/shl"
	"github.com/fortuna/services/game-feed-service/internal/store"
	"github.com/fortuna/services/game-feed-service/pkg/models"
)

var emptyObject = []byte("{}")

// PlayerService maintains the per-game player stats feed. The raw payload
// is cached under the shared rest namespace keyed by its provider URL.
type PlayerService struct {
	gateway *Gateway
	store   store.KeyedStore
	client  *shl.Client
}

// NewPlayerService creates a player stats service over the given store and client
func NewPlayerService(st store.KeyedStore, client *shl.Client) *PlayerService {
	return &PlayerService{
		gateway: NewGateway(st),
		store:   st,
		client:  client,
	}
}

// Update refreshes the player stats cache for a game when it is stale and
// returns the merged athlete records. Upstream failure yields an empty
// result, never an error.
func (s *PlayerService) Update(ctx context.Context, league models.League, gameUUID string, ttl *time.Duration) ([]models.Athlete, error) {
	url := s.client.PlayerStatsURL(league, gameUUID)

	data, err := s.gateway.GetOrRefresh(ctx, store.NamespaceRest, url, ttl, emptyObject, func(ctx context.Context) ([]byte, error) {
		rsp, err := s.client.FetchPlayerStats(ctx, league, gameUUID)
		if err != nil {
			return nil, err
		}
		return json.Marshal(rsp)
	})
	if err != nil {
		return nil, err
	}

	var rsp shl.PlayerStatsRsp
	if err := json.Unmarshal(data, &rsp); err != nil {
		return nil, fmt.Errorf("unmarshaling player stats for %s: %w", gameUUID, err)
	}
	return mapAthletes(&rsp), nil
}

// Read returns the cached athlete records for a game, without fetching.
// ok is false when nothing has been cached yet.
func (s *PlayerService) Read(ctx context.Context, league models.League, gameUUID string) ([]models.Athlete, bool, error) {
	url := s.client.PlayerStatsURL(league, gameUUID)

	data, ok, err := s.store.Read(ctx, store.NamespaceRest, url)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	var rsp shl.PlayerStatsRsp
	if err := json.Unmarshal(data, &rsp); err != nil {
		return nil, false, fmt.Errorf("unmarshaling player stats for %s: %w", gameUUID, err)
	}
	return mapAthletes(&rsp), true, nil
}

// IsStale reports whether the cached player stats for a game are older
// than ttl. A nil ttl always reports stale.
func (s *PlayerService) IsStale(ctx context.Context, league models.League, gameUUID string, ttl *time.Duration) bool {
	url := s.client.PlayerStatsURL(league, gameUUID)
	return s.store.IsStale(ctx, store.NamespaceRest, url, ttl)
}

// mapAthletes merges the payload's roster maps with its stat lines.
// Skaters come first, then goalkeepers; a stat line without a roster entry
// still produces a record, just with empty names.
func mapAthletes(rsp *shl.PlayerStatsRsp) []models.Athlete {
	skaterNames := mergeNames(rsp.Players)
	gkNames := mergeNames(rsp.Goalkeepers)

	var athletes []models.Athlete

	skaters := append(append([]shl.SkaterLine{}, rsp.Stats.HomeTeamValue...), rsp.Stats.AwayTeamValue...)
	for _, line := range skaters {
		athletes = append(athletes, mapSkater(line, skaterNames[strconv.Itoa(line.Info.PlayerID)]))
	}

	goalkeepers := append(append([]shl.GoalkeeperLine{}, rsp.GKStats.HomeTeamValue...), rsp.GKStats.AwayTeamValue...)
	for _, line := range goalkeepers {
		athletes = append(athletes, mapGoalkeeper(line, gkNames[strconv.Itoa(line.Info.PlayerID)]))
	}

	return athletes
}

// mergeNames flattens a home/away roster pair into one playerId-keyed map
func mergeNames(pair shl.NameMapPair) map[string]shl.PlayerName {
	names := make(map[string]shl.PlayerName, len(pair.HomeTeamValue)+len(pair.AwayTeamValue))
	for id, name := range pair.HomeTeamValue {
		names[id] = name
	}
	for id, name := range pair.AwayTeamValue {
		names[id] = name
	}
	return names
}

// mapSkater converts one raw skater line into an athlete record
func mapSkater(line shl.SkaterLine, name shl.PlayerName) models.Athlete {
	return models.Athlete{
		ID:         line.Info.PlayerID,
		FirstName:  name.FirstName,
		FamilyName: name.LastName,
		Jersey:     line.Jersey.Int(),
		TeamCode:   line.Info.TeamID,
		Position:   line.Position,
		Season:     models.CurrentSeason,
		Type:       models.AthleteTypePlayer,
		Skater: &models.SkaterStats{
			PlusMinus:   line.PlusMinus.Int(),
			Assists:     line.Assists.Int(),
			FaceoffLost: line.FOL.Int(),
			FaceoffWon:  line.FOW.Int(),
			Goals:       line.Goals.Int(),
			Hits:        line.Hits.Int(),
			PenaltyMins: line.PIM.Int(),
			ShotsOnGoal: line.SOG.Int(),
			ShotsWide:   line.SW.Int(),
			TOISeconds:  models.ParseTimeOnIce(line.TOI),
			GamesPlayed: 1,
		},
	}
}

// mapGoalkeeper converts one raw goalkeeper line into an athlete record.
// A goalkeeper counts as having played iff they made at least one save.
func mapGoalkeeper(line shl.GoalkeeperLine, name shl.PlayerName) models.Athlete {
	gamesPlayed := 0
	if line.SVS.Int() > 0 {
		gamesPlayed = 1
	}

	return models.Athlete{
		ID:         line.Info.PlayerID,
		FirstName:  name.FirstName,
		FamilyName: name.LastName,
		Jersey:     line.Jersey.Int(),
		TeamCode:   line.Info.TeamID,
		Position:   "GK",
		Season:     models.CurrentSeason,
		Type:       models.AthleteTypeGoalkeeper,
		Goalkeeper: &models.GoalkeeperStats{
			GoalsAgainst:        line.GA.Int(),
			ShotsOnGoalAgainst:  line.SOGA.Int(),
			ShotAttemptsAgainst: line.SPGA.Int(),
			Saves:               line.SVS.Int(),
			GamesPlayed:         gamesPlayed,
		},
	}
}
