package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"excer/internal/adapters/config"
	"excer/internal/domain/stocks"
	"excer/internal/metrics"
	"excer/pkg/errors"
	"excer/pkg/logger"
)

// Client is a rate-limited, retrying client for Reddit's public read API.
// All calls go through one shared limiter so the whole process stays under
// Reddit's informal request budget.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	cfg        config.RedditConfig
	log        *logger.Logger

	// sleep is swapped out in tests to avoid real backoff delays
	sleep func(ctx context.Context, d time.Duration) error

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a Reddit API client
func NewClient(cfg config.RedditConfig) *Client {
	callDelay := cfg.CallDelay
	if callDelay <= 0 {
		callDelay = 2 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Every(callDelay), 1),
		cfg:        cfg,
		log:        logger.Get().With("component", "reddit"),
		sleep:      sleepContext,
	}
}

// FetchPosts fetches one listing page for a subreddit. listing is "new" or
// "top"; top listings are restricted to the past week. Malformed records
// are skipped one at a time, never failing the whole page.
func (c *Client) FetchPosts(ctx context.Context, subreddit, listing string, limit int) ([]stocks.Post, error) {
	url := fmt.Sprintf("%s/r/%s/%s.json?limit=%d", c.cfg.BaseURL, subreddit, listing, limit)
	if listing == "top" {
		url += "&t=week"
	}

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch r/%s %s listing", subreddit, listing)
	}

	var envelope listingEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.Wrapf(err, "decode r/%s %s listing", subreddit, listing)
	}

	posts := make([]stocks.Post, 0, len(envelope.Data.Children))
	for _, child := range envelope.Data.Children {
		if child.Data.ID == "" || child.Data.Title == "" {
			c.log.Debugw("skipping malformed post record", "subreddit", subreddit)
			continue
		}
		posts = append(posts, child.Data)
	}

	return posts, nil
}

// FetchComments fetches the comment thread behind a post permalink. Reddit
// returns a two-element array: the post listing and the comment listing;
// only t1 (comment) children of the second element are kept.
func (c *Client) FetchComments(ctx context.Context, permalink string) ([]stocks.Comment, error) {
	url := fmt.Sprintf("%s%s.json", c.cfg.BaseURL, strings.TrimSuffix(permalink, "/"))

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch comments %s", permalink)
	}

	var thread []commentEnvelope
	if err := json.Unmarshal(body, &thread); err != nil {
		return nil, errors.Wrapf(err, "decode comments %s", permalink)
	}
	if len(thread) < 2 {
		return nil, nil
	}

	comments := make([]stocks.Comment, 0, len(thread[1].Data.Children))
	for _, child := range thread[1].Data.Children {
		// t1 is a comment; anything else is a "more comments" stub
		if child.Kind != "t1" {
			continue
		}
		if child.Data.ID == "" {
			continue
		}
		comments = append(comments, child.Data)
	}

	return comments, nil
}

// get performs one paced GET. HTTP 429 is retried with exponential backoff
// starting at the configured base delay and doubling each retry, up to
// MaxRetries attempts; exhaustion yields ErrFetchExhausted. Any other
// failure returns immediately without retry.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "rate limiter wait")
	}

	if err := c.ensureToken(ctx); err != nil {
		return nil, err
	}

	attempts := c.cfg.MaxRetries
	if attempts <= 0 {
		attempts = 5
	}
	backoff := c.cfg.RetryBackoff
	if backoff <= 0 {
		backoff = 10 * time.Second
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		body, err := c.doGet(ctx, url)
		if err == nil {
			metrics.FetchRequests.WithLabelValues("success").Inc()
			return body, nil
		}

		if !errors.Is(err, errors.ErrRateLimited) {
			metrics.FetchRequests.WithLabelValues("error").Inc()
			return nil, err
		}

		metrics.FetchRequests.WithLabelValues("rate_limited").Inc()
		if attempt == attempts {
			break
		}

		c.log.Warnw("rate limited, backing off",
			"url", url,
			"wait", backoff,
			"attempt", attempt,
			"max_attempts", attempts,
		)
		if err := c.sleep(ctx, backoff); err != nil {
			return nil, err
		}
		backoff *= 2
	}

	metrics.FetchRetriesExhausted.Inc()
	return nil, errors.Wrapf(errors.ErrFetchExhausted, "failed after %d attempts: %s", attempts, url)
}

// doGet performs a single HTTP round trip
func (c *Client) doGet(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}

	req.Header.Set("User-Agent", c.cfg.UserAgent)
	c.mu.Lock()
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}
	c.mu.Unlock()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, errors.ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response body")
	}
	return body, nil
}

// ensureToken refreshes the OAuth token when credentials are configured and
// the cached token has expired. Without credentials the client runs
// unauthenticated against the public JSON endpoints.
func (c *Client) ensureToken(ctx context.Context) error {
	if c.cfg.ClientID == "" || c.cfg.ClientSecret == "" {
		return nil
	}

	c.mu.Lock()
	expired := time.Now().After(c.tokenExpiry)
	c.mu.Unlock()
	if !expired {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.AuthURL,
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return errors.Wrap(err, "create oauth request")
	}

	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "oauth request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return errors.Newf("oauth failed with status %d: %s", resp.StatusCode, string(body))
	}

	var oauth oauthResponse
	if err := json.NewDecoder(resp.Body).Decode(&oauth); err != nil {
		return errors.Wrap(err, "decode oauth response")
	}

	c.mu.Lock()
	c.accessToken = oauth.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(oauth.ExpiresIn) * time.Second)
	c.mu.Unlock()

	c.log.Debugw("oauth token refreshed", "expires_in", oauth.ExpiresIn)
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
