package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"excer/internal/domain/stocks"
	"excer/pkg/errors"
)

// Client reads the published snapshot over HTTP
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a snapshot reader for the given server
func NewClient(serverURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    strings.TrimSuffix(serverURL, "/"),
	}
}

// FetchSnapshot reads the current snapshot. The request carries a
// cache-busting timestamp so intermediaries never serve a stale body.
// Stock records without a symbol or a posts list are dropped.
func (c *Client) FetchSnapshot(ctx context.Context) (*stocks.Snapshot, error) {
	url := fmt.Sprintf("%s/api/stocks?_=%d", c.baseURL, time.Now().UnixMilli())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch snapshot")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("unexpected status %d fetching snapshot", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read snapshot body")
	}

	var snapshot stocks.Snapshot
	if err := json.Unmarshal(body, &snapshot); err != nil {
		return nil, errors.Wrap(err, "decode snapshot")
	}

	kept := make([]stocks.StockAggregate, 0, len(snapshot.Stocks))
	for _, stock := range snapshot.Stocks {
		if stock.Symbol == "" || stock.Posts == nil {
			continue
		}
		kept = append(kept, stock)
	}
	snapshot.Stocks = kept

	return &snapshot, nil
}
