package notifier

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"excer/internal/domain/stocks"
)

func TestFormatDigest(t *testing.T) {
	snapshot := &stocks.Snapshot{
		Stocks: []stocks.StockAggregate{
			{Symbol: "GME", TrendingScore: 14.2, Mentions: 12, UniquePosts: 7},
			{Symbol: "AMC", TrendingScore: 9.8, Mentions: 1, UniquePosts: 1},
		},
		LastUpdated:  time.Now().Add(-2 * time.Minute).UnixMilli(),
		TotalSources: 4,
		DataSource:   stocks.DataSourceReddit,
	}

	digest := FormatDigest(snapshot)

	assert.Contains(t, digest, "*GME* score 14.2")
	assert.Contains(t, digest, "12 mentions across 7 posts")
	assert.Contains(t, digest, "1 mention across 1 post")
	assert.Contains(t, digest, "2 symbols tracked from 4 subreddits")
	assert.Contains(t, digest, "minutes ago")
}

func TestFormatDigest_TruncatesToTopFive(t *testing.T) {
	snapshot := &stocks.Snapshot{
		Stocks: []stocks.StockAggregate{
			{Symbol: "AA"}, {Symbol: "BB"}, {Symbol: "CC"},
			{Symbol: "DD"}, {Symbol: "EE"}, {Symbol: "FF"},
		},
		LastUpdated:  time.Now().UnixMilli(),
		TotalSources: 4,
		DataSource:   stocks.DataSourceReddit,
	}

	digest := FormatDigest(snapshot)

	assert.Contains(t, digest, "*EE*")
	assert.NotContains(t, digest, "*FF*")
	assert.Equal(t, 5, strings.Count(digest, ". *"))
}
