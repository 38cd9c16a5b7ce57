package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"
)

const (
	americasBaseURL = "https://americas.api.riotgames.com"

	// Dev key limits are 20/s and 100/2min; stay under both.
	requestsPerSecond = 15
	requestsPer2Min   = 90

	defaultRetryAfter = 10 * time.Second
	maxRetries        = 3
)

var (
	ErrForbidden = errors.New("riot api: 403 forbidden, check the API key")
	ErrNotFound  = errors.New("riot api: 404 not found")
)

// Client is a rate-limited Riot API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client

	mu          sync.Mutex
	shortWindow []time.Time // requests in the last second
	longWindow  []time.Time // requests in the last 2 minutes

	sleep func(context.Context, time.Duration) error
}

// NewClient creates a client using RIOT_API_KEY from the environment.
func NewClient() (*Client, error) {
	apiKey := os.Getenv("RIOT_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("RIOT_API_KEY environment variable not set")
	}
	return NewClientWithKey(apiKey, americasBaseURL), nil
}

// NewClientWithKey creates a client against an explicit base URL.
func NewClientWithKey(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		sleep:      sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// reserve returns how long to wait before the next request may go out, or
// zero after recording the request.
func (c *Client) reserve(now time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.shortWindow = pruneBefore(c.shortWindow, now.Add(-time.Second))
	c.longWindow = pruneBefore(c.longWindow, now.Add(-2*time.Minute))

	if len(c.shortWindow) >= requestsPerSecond {
		return c.shortWindow[0].Add(time.Second).Sub(now) + 100*time.Millisecond
	}
	if len(c.longWindow) >= requestsPer2Min {
		return c.longWindow[0].Add(2*time.Minute).Sub(now) + 100*time.Millisecond
	}
	c.shortWindow = append(c.shortWindow, now)
	c.longWindow = append(c.longWindow, now)
	return 0
}

func pruneBefore(ts []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(ts) && !ts[i].After(cutoff) {
		i++
	}
	return ts[i:]
}

func (c *Client) waitForRateLimit(ctx context.Context) error {
	for {
		wait := c.reserve(time.Now())
		if wait <= 0 {
			return nil
		}
		if err := c.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

func (c *Client) doRequest(ctx context.Context, url string, result interface{}) error {
	for attempt := 0; ; attempt++ {
		if err := c.waitForRateLimit(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("X-Riot-Token", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}

		switch resp.StatusCode {
		case http.StatusOK:
			defer resp.Body.Close()
			return json.NewDecoder(resp.Body).Decode(result)
		case http.StatusTooManyRequests:
			resp.Body.Close()
			if attempt >= maxRetries {
				return fmt.Errorf("riot api: still rate limited after %d retries", maxRetries)
			}
			wait := defaultRetryAfter
			if s, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && s > 0 {
				wait = time.Duration(s) * time.Second
			}
			if err := c.sleep(ctx, wait); err != nil {
				return err
			}
		case http.StatusForbidden:
			resp.Body.Close()
			return ErrForbidden
		case http.StatusNotFound:
			resp.Body.Close()
			return ErrNotFound
		default:
			resp.Body.Close()
			return fmt.Errorf("riot api: status %d", resp.StatusCode)
		}
	}
}

// GetMatchIDs fetches recent ranked match ids for a player.
func (c *Client) GetMatchIDs(ctx context.Context, puuid string, count int) ([]string, error) {
	url := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?queue=420&count=%d",
		c.baseURL, puuid, count)

	var matchIDs []string
	if err := c.doRequest(ctx, url, &matchIDs); err != nil {
		return nil, fmt.Errorf("get match ids: %w", err)
	}
	return matchIDs, nil
}

// GetMatch fetches match details.
func (c *Client) GetMatch(ctx context.Context, matchID string) (*MatchResponse, error) {
	url := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.baseURL, matchID)

	var match MatchResponse
	if err := c.doRequest(ctx, url, &match); err != nil {
		return nil, fmt.Errorf("get match %s: %w", matchID, err)
	}
	return &match, nil
}

// GetTimeline fetches the match timeline.
func (c *Client) GetTimeline(ctx context.Context, matchID string) (*TimelineResponse, error) {
	url := fmt.Sprintf("%s/lol/match/v5/matches/%s/timeline", c.baseURL, matchID)

	var timeline TimelineResponse
	if err := c.doRequest(ctx, url, &timeline); err != nil {
		return nil, fmt.Errorf("get timeline %s: %w", matchID, err)
	}
	return &timeline, nil
}
