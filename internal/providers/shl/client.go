package shl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fortuna/services/game-feed-service/pkg/models"
)

const (
	BaseURL = "https://www.shl.se/api"
)

// Client handles requests against the league statistics API
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// New creates a client against the production API
func New() *Client {
	return NewWithBaseURL(BaseURL)
}

// NewWithBaseURL creates a client against a custom base URL (tests)
func NewWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		userAgent: "Mozilla/5.0 (compatible; FortunaBot/1.0)",
	}
}

// EventsURL builds the play-by-play feed URL for a game
func (c *Client) EventsURL(gameUUID string) string {
	return fmt.Sprintf("%s/gameday/live/events/%s", c.baseURL, gameUUID)
}

// PlayerStatsURL builds the player stats feed URL for a game
func (c *Client) PlayerStatsURL(league models.League, gameUUID string) string {
	return fmt.Sprintf("%s/gameday/%s/statistics/players/%s", c.baseURL, strings.ToLower(string(league)), gameUUID)
}

// GameStatsURL builds the team stats feed URL for a game
func (c *Client) GameStatsURL(league models.League, gameUUID string) string {
	return fmt.Sprintf("%s/gameday/%s/statistics/teams/%s", c.baseURL, strings.ToLower(string(league)), gameUUID)
}

// FetchEvents fetches the play-by-play feed for a game
func (c *Client) FetchEvents(ctx context.Context, gameUUID string) ([]PlayByPlay, error) {
	var events []PlayByPlay
	if err := c.fetch(ctx, c.EventsURL(gameUUID), &events); err != nil {
		return nil, err
	}
	return events, nil
}

// FetchPlayerStats fetches the player stats feed for a game
func (c *Client) FetchPlayerStats(ctx context.Context, league models.League, gameUUID string) (*PlayerStatsRsp, error) {
	var rsp PlayerStatsRsp
	if err := c.fetch(ctx, c.PlayerStatsURL(league, gameUUID), &rsp); err != nil {
		return nil, err
	}
	return &rsp, nil
}

// FetchGameStats fetches the team stats feed for a game
func (c *Client) FetchGameStats(ctx context.Context, league models.League, gameUUID string) (*GameStatsV2, error) {
	var rsp GameStatsV2
	if err := c.fetch(ctx, c.GameStatsURL(league, gameUUID), &rsp); err != nil {
		return nil, err
	}
	return &rsp, nil
}

// fetch makes an HTTP GET request and decodes the JSON response into out
func (c *Client) fetch(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("feed API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
