package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"excer/internal/adapters/config"
	"excer/internal/domain/stocks"
	"excer/pkg/errors"
)

type fakeFetcher struct {
	posts    map[string][]stocks.Post // keyed by subreddit + "/" + listing
	comments map[string][]stocks.Comment
	failing  map[string]error // keyed by subreddit
}

func (f *fakeFetcher) FetchPosts(ctx context.Context, subreddit, listing string, limit int) ([]stocks.Post, error) {
	if err := f.failing[subreddit]; err != nil {
		return nil, err
	}
	return f.posts[subreddit+"/"+listing], nil
}

func (f *fakeFetcher) FetchComments(ctx context.Context, permalink string) ([]stocks.Comment, error) {
	return f.comments[permalink], nil
}

type memSnapshotRepo struct {
	saved    []*stocks.Snapshot
	failNext int
}

func (r *memSnapshotRepo) Save(ctx context.Context, snapshot *stocks.Snapshot) error {
	if r.failNext > 0 {
		r.failNext--
		return errors.Wrapf(errors.ErrPersistence, "simulated store failure")
	}
	r.saved = append(r.saved, snapshot)
	return nil
}

func (r *memSnapshotRepo) Load(ctx context.Context) (*stocks.Snapshot, error) {
	if len(r.saved) == 0 {
		return nil, nil
	}
	return r.saved[len(r.saved)-1], nil
}

func testConfig(subreddits ...string) config.IngestConfig {
	return config.IngestConfig{
		Subreddits:   subreddits,
		Interval:     time.Minute,
		Enabled:      true,
		SourceDelay:  0,
		PageLimit:    50,
		TopStocks:    20,
		MinPostScore: 10,
	}
}

func newTestWorker(fetcher *fakeFetcher, repo *memSnapshotRepo, subreddits ...string) *Worker {
	w := NewWorker(testConfig(subreddits...), fetcher, repo, nil)
	w.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	return w
}

func TestRun_PublishesRankedSnapshot(t *testing.T) {
	fetcher := &fakeFetcher{
		posts: map[string][]stocks.Post{
			"pennystocks/new": {
				{ID: "p1", Title: "$GME to the moon", Score: 20, Author: "u1"},
				{ID: "p2", Title: "$GME again, huge catalyst", Score: 15, Author: "u2"},
			},
			"pennystocks/top": {
				{ID: "p3", Title: "$AMC squeeze watch", Score: 8, Author: "u3"},
			},
			"wallstreetbets/new": {
				{ID: "p4", Title: "thoughts on $GME", Score: 5, Author: "u4"},
			},
		},
	}
	repo := &memSnapshotRepo{}
	worker := newTestWorker(fetcher, repo, "pennystocks", "wallstreetbets")

	require.NoError(t, worker.Run(context.Background()))
	require.Len(t, repo.saved, 1)

	snapshot := repo.saved[0]
	assert.Equal(t, stocks.DataSourceReddit, snapshot.DataSource)
	assert.Equal(t, 2, snapshot.TotalSources)
	assert.Positive(t, snapshot.LastUpdated)

	require.Len(t, snapshot.Stocks, 2)
	assert.Equal(t, "GME", snapshot.Stocks[0].Symbol)
	assert.Equal(t, 3, snapshot.Stocks[0].Mentions)
	assert.Equal(t, 3, snapshot.Stocks[0].UniquePosts)
	assert.Equal(t, "AMC", snapshot.Stocks[1].Symbol)
}

func TestRun_DuplicatePostAcrossListingsCountedOnce(t *testing.T) {
	shared := stocks.Post{ID: "p1", Title: "$GME breakout", Score: 30, Author: "u1"}
	fetcher := &fakeFetcher{
		posts: map[string][]stocks.Post{
			"pennystocks/new": {shared},
			"pennystocks/top": {shared},
		},
	}
	repo := &memSnapshotRepo{}
	worker := newTestWorker(fetcher, repo, "pennystocks")

	require.NoError(t, worker.Run(context.Background()))
	require.Len(t, repo.saved, 1)

	require.Len(t, repo.saved[0].Stocks, 1)
	assert.Equal(t, 1, repo.saved[0].Stocks[0].Mentions)
	assert.Equal(t, 1, repo.saved[0].Stocks[0].UniquePosts)
}

func TestRunOnce_SourceFailureDegradesFully(t *testing.T) {
	fetcher := &fakeFetcher{
		posts: map[string][]stocks.Post{
			"wallstreetbets/new": {
				{ID: "p1", Title: "$BBIG run", Score: 12, Author: "u1"},
			},
		},
		failing: map[string]error{
			"pennystocks": errors.Wrapf(errors.ErrFetchExhausted, "rate limited"),
		},
	}
	repo := &memSnapshotRepo{}
	worker := newTestWorker(fetcher, repo, "pennystocks", "wallstreetbets")

	result, err := worker.runOnce(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "r/pennystocks")
	require.Len(t, result.Sources, 1)
	assert.Equal(t, "wallstreetbets", result.Sources[0].Subreddit)

	require.NotNil(t, result.Snapshot)
	assert.Equal(t, stocks.DataSourceReddit, result.Snapshot.DataSource)
	require.Len(t, result.Snapshot.Stocks, 1)
	assert.Equal(t, "BBIG", result.Snapshot.Stocks[0].Symbol)
}

func TestRun_StoreFailureWritesErrorSnapshot(t *testing.T) {
	fetcher := &fakeFetcher{
		posts: map[string][]stocks.Post{
			"pennystocks/new": {
				{ID: "p1", Title: "$GME news", Score: 20, Author: "u1"},
			},
		},
	}
	repo := &memSnapshotRepo{failNext: 1}
	worker := newTestWorker(fetcher, repo, "pennystocks")

	// Run absorbs the failure so the scheduler keeps ticking
	require.NoError(t, worker.Run(context.Background()))

	require.Len(t, repo.saved, 1)
	assert.Equal(t, stocks.DataSourceError, repo.saved[0].DataSource)
	assert.Empty(t, repo.saved[0].Stocks)
	assert.Positive(t, repo.saved[0].LastUpdated)

	health := worker.Health()
	assert.Equal(t, int64(1), health.ErrorCount)
}

func TestFetchSource_AttachesCommentSamplesToQualifyingPosts(t *testing.T) {
	fetcher := &fakeFetcher{
		posts: map[string][]stocks.Post{
			"pennystocks/new": {
				{ID: "p1", Title: "$GME earnings play", Score: 50, Permalink: "/r/pennystocks/comments/p1/", Author: "u1"},
				{ID: "p2", Title: "$AMC quiet day", Score: 3, Permalink: "/r/pennystocks/comments/p2/", Author: "u2"},
			},
		},
		comments: map[string][]stocks.Comment{
			"/r/pennystocks/comments/p1/": {
				{ID: "c1", Body: "$GME all the way", Score: 4, Author: "u3"},
			},
		},
	}
	repo := &memSnapshotRepo{}
	worker := newTestWorker(fetcher, repo, "pennystocks")

	posts, err := worker.fetchSource(context.Background(), "pennystocks")
	require.NoError(t, err)
	require.Len(t, posts, 2)

	require.Len(t, posts[0].Comments, 1)
	assert.Equal(t, "c1", posts[0].Comments[0].ID)

	// Low-score post never qualifies for a thread fetch
	assert.Empty(t, posts[1].Comments)
}
