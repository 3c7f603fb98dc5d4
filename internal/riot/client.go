// Package riot is a rate-limited client for the Riot match-v5 and
// account-v1 APIs. All resilience for the analysis path lives here: a 90
// calls/minute sliding window and exponential-backoff retries (3 attempts)
// around every request. The analyzer itself never touches the network.
package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/pable/go-lol-insights/internal/model"
)

// callsPerMinute stays under Riot's documented dev-key cap (100 per 2
// minutes would allow bursts the server still rejects; 90/min matches the
// limit the server actually enforces for match-v5).
const callsPerMinute = 90

const maxAttempts = 3

// Regional routing hosts for match-v5 and account-v1.
var regionHosts = map[string]string{
	"americas": "https://americas.api.riotgames.com",
	"europe":   "https://europe.api.riotgames.com",
	"asia":     "https://asia.api.riotgames.com",
	"sea":      "https://sea.api.riotgames.com",
}

// Client is a rate-limited Riot API client.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client

	mu     sync.Mutex
	window []time.Time // request times in the last minute
}

// NewClient returns a client for the given regional routing value
// ("americas", "europe", "asia", "sea").
func NewClient(apiKey, region string) (*Client, error) {
	base, ok := regionHosts[region]
	if !ok {
		return nil, fmt.Errorf("unknown region %q (want americas, europe, asia, or sea)", region)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("riot: empty API key")
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: base,
		http:    &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// waitForRateLimit blocks until another request is allowed, or the context
// is cancelled.
func (c *Client) waitForRateLimit(ctx context.Context) error {
	for {
		c.mu.Lock()
		now := time.Now()
		cutoff := now.Add(-time.Minute)
		kept := c.window[:0]
		for _, t := range c.window {
			if t.After(cutoff) {
				kept = append(kept, t)
			}
		}
		c.window = kept

		if len(c.window) < callsPerMinute {
			c.window = append(c.window, now)
			c.mu.Unlock()
			return nil
		}
		wait := c.window[0].Add(time.Minute).Sub(now) + 100*time.Millisecond
		c.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// get performs a rate-limited GET with exponential-backoff retries and
// decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxAttempts-1), ctx)

	op := func() error {
		if err := c.waitForRateLimit(ctx); err != nil {
			return backoff.Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("X-Riot-Token", c.apiKey)

		resp, err := c.http.Do(req)
		if err != nil {
			return err // transient; retry
		}
		defer resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return backoff.Permanent(fmt.Errorf("decode response: %w", err))
			}
			return nil
		case http.StatusTooManyRequests:
			// Honor Retry-After before the next backoff attempt.
			if s := resp.Header.Get("Retry-After"); s != "" {
				if secs, err := strconv.Atoi(s); err == nil {
					select {
					case <-ctx.Done():
						return backoff.Permanent(ctx.Err())
					case <-time.After(time.Duration(secs) * time.Second):
					}
				}
			}
			return fmt.Errorf("riot: rate limited (429)")
		case http.StatusForbidden:
			return backoff.Permanent(fmt.Errorf("riot: 403 Forbidden, check the API key"))
		case http.StatusNotFound:
			return backoff.Permanent(fmt.Errorf("riot: 404 Not Found for %s", path))
		default:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
			if resp.StatusCode >= 500 {
				return fmt.Errorf("riot: HTTP %d: %s", resp.StatusCode, body)
			}
			return backoff.Permanent(fmt.Errorf("riot: HTTP %d: %s", resp.StatusCode, body))
		}
	}

	return backoff.Retry(op, policy)
}

// Account is the response from /riot/account/v1/accounts/by-riot-id.
type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// GetAccountByRiotID resolves a Riot ID (gameName#tagLine) to an account.
func (c *Client) GetAccountByRiotID(ctx context.Context, gameName, tagLine string) (*Account, error) {
	path := fmt.Sprintf("/riot/account/v1/accounts/by-riot-id/%s/%s",
		url.PathEscape(gameName), url.PathEscape(tagLine))
	var account Account
	if err := c.get(ctx, path, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// GetMatchIDs fetches up to count recent match IDs for a player, newest
// first. startTime, when non-zero, is a Unix-seconds lower bound.
func (c *Client) GetMatchIDs(ctx context.Context, puuid string, count int, startTime int64) ([]string, error) {
	q := url.Values{}
	if count > 0 {
		q.Set("count", strconv.Itoa(count))
	}
	if startTime > 0 {
		q.Set("startTime", strconv.FormatInt(startTime, 10))
	}
	path := fmt.Sprintf("/lol/match/v5/matches/by-puuid/%s/ids", url.PathEscape(puuid))
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}
	var ids []string
	if err := c.get(ctx, path, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// GetMatch fetches a full match record.
func (c *Client) GetMatch(ctx context.Context, matchID string) (*model.Match, error) {
	var match model.Match
	if err := c.get(ctx, "/lol/match/v5/matches/"+url.PathEscape(matchID), &match); err != nil {
		return nil, err
	}
	return &match, nil
}

// GetTimeline fetches the per-minute timeline for a match.
func (c *Client) GetTimeline(ctx context.Context, matchID string) (*model.Timeline, error) {
	var timeline model.Timeline
	if err := c.get(ctx, "/lol/match/v5/matches/"+url.PathEscape(matchID)+"/timeline", &timeline); err != nil {
		return nil, err
	}
	return &timeline, nil
}
