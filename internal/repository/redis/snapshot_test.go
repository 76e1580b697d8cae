package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"excer/internal/domain/stocks"
	"excer/internal/testsupport"
)

func TestSnapshotRepository_SaveAndLoad(t *testing.T) {
	cfg := testsupport.LoadRedisConfigFromEnv(t)
	client := testsupport.NewRedisClient(t, cfg)
	repo := NewSnapshotRepository(client)
	ctx := context.Background()

	snapshot := &stocks.Snapshot{
		Stocks: []stocks.StockAggregate{
			{Symbol: "GME", Mentions: 3, UniquePosts: 2, TrendingScore: 7.5},
		},
		LastUpdated:  time.Now().UnixMilli(),
		TotalSources: 4,
		DataSource:   stocks.DataSourceReddit,
	}

	require.NoError(t, repo.Save(ctx, snapshot))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, snapshot.LastUpdated, loaded.LastUpdated)
	assert.Equal(t, snapshot.TotalSources, loaded.TotalSources)
	assert.Equal(t, stocks.DataSourceReddit, loaded.DataSource)
	require.Len(t, loaded.Stocks, 1)
	assert.Equal(t, "GME", loaded.Stocks[0].Symbol)
}

func TestSnapshotRepository_LoadMissingReturnsNil(t *testing.T) {
	cfg := testsupport.LoadRedisConfigFromEnv(t)
	client := testsupport.NewRedisClient(t, cfg)
	repo := NewSnapshotRepository(client)

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSnapshotRepository_SaveReplacesPrevious(t *testing.T) {
	cfg := testsupport.LoadRedisConfigFromEnv(t)
	client := testsupport.NewRedisClient(t, cfg)
	repo := NewSnapshotRepository(client)
	ctx := context.Background()

	first := &stocks.Snapshot{
		Stocks:       []stocks.StockAggregate{{Symbol: "GME"}, {Symbol: "AMC"}},
		LastUpdated:  1000,
		TotalSources: 4,
		DataSource:   stocks.DataSourceReddit,
	}
	require.NoError(t, repo.Save(ctx, first))

	second := &stocks.Snapshot{
		Stocks:       []stocks.StockAggregate{},
		LastUpdated:  2000,
		TotalSources: 4,
		DataSource:   stocks.DataSourceError,
	}
	require.NoError(t, repo.Save(ctx, second))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, int64(2000), loaded.LastUpdated)
	assert.Equal(t, stocks.DataSourceError, loaded.DataSource)
	assert.Empty(t, loaded.Stocks)
}
