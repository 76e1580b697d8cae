package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"excer/internal/adapters/config"
	"excer/internal/domain/stocks"
	"excer/internal/metrics"
	"excer/internal/workers"
	"excer/pkg/errors"
)

// Fetcher is the slice of the Reddit client the worker needs
type Fetcher interface {
	CommentFetcher
	FetchPosts(ctx context.Context, subreddit, listing string, limit int) ([]stocks.Post, error)
}

// Notifier delivers a digest of a freshly published snapshot. Delivery is
// best effort; failures never affect the run.
type Notifier interface {
	SendDigest(ctx context.Context, snapshot *stocks.Snapshot) error
}

// SourceResult records what one subreddit contributed to a run
type SourceResult struct {
	Subreddit string
	Posts     int
}

// RunResult summarizes one ingestion run
type RunResult struct {
	RunID    string
	Sources  []SourceResult
	Warnings []string
	Snapshot *stocks.Snapshot
}

// Worker runs the full ingestion pipeline on a fixed interval: fetch every
// configured subreddit, extract and score symbols, rank, and publish one
// snapshot. A run never fails the scheduler loop; failures degrade to an
// error snapshot so readers can tell stale data from a broken pipeline.
type Worker struct {
	*workers.BaseWorker

	fetcher    Fetcher
	sampler    *Sampler
	aggregator *stocks.Aggregator
	snapshots  stocks.SnapshotRepository
	notifier   Notifier
	cfg        config.IngestConfig

	// sleep is swapped out in tests to skip the inter-source delay
	sleep func(ctx context.Context, d time.Duration) error
}

// NewWorker creates the ingestion worker. notifier may be nil.
func NewWorker(
	cfg config.IngestConfig,
	fetcher Fetcher,
	snapshots stocks.SnapshotRepository,
	notifier Notifier,
) *Worker {
	extractor := stocks.NewExtractor(stocks.DefaultExclusions())
	scorer := stocks.NewScorer()

	return &Worker{
		BaseWorker: workers.NewBaseWorker("ingest", cfg.Interval, cfg.Enabled),
		fetcher:    fetcher,
		sampler:    NewSampler(fetcher, cfg.MinPostScore),
		aggregator: stocks.NewAggregator(extractor, scorer, cfg.TopStocks),
		snapshots:  snapshots,
		notifier:   notifier,
		cfg:        cfg,
		sleep:      sleepContext,
	}
}

// Run executes one full ingestion pass
func (w *Worker) Run(ctx context.Context) error {
	start := time.Now()

	result, err := w.runOnce(ctx)
	if err != nil {
		w.RecordError(err, time.Since(start))
		w.publishErrorSnapshot(ctx)
		// Deliberately absorbed: next interval gets a fresh attempt and
		// readers see the error snapshot in the meantime.
		return nil
	}

	w.RecordRun(time.Since(start))
	w.Log().Infow("ingestion run completed",
		"run_id", result.RunID,
		"stocks", len(result.Snapshot.Stocks),
		"warnings", len(result.Warnings),
		"duration", time.Since(start),
	)
	return nil
}

// runOnce performs the fetch-extract-score-rank-persist pipeline
func (w *Worker) runOnce(ctx context.Context) (*RunResult, error) {
	result := &RunResult{RunID: uuid.NewString()}
	log := w.Log().With("run_id", result.RunID)

	run := make(map[string]*stocks.StockAggregate)

	for i, subreddit := range w.cfg.Subreddits {
		if i > 0 && w.cfg.SourceDelay > 0 {
			if err := w.sleep(ctx, w.cfg.SourceDelay); err != nil {
				return nil, errors.Wrap(err, "cancelled between sources")
			}
		}

		posts, err := w.fetchSource(ctx, subreddit)
		if err != nil {
			if ctx.Err() != nil {
				return nil, errors.Wrapf(err, "cancelled while fetching r/%s", subreddit)
			}
			warning := fmt.Sprintf("r/%s failed: %v", subreddit, err)
			result.Warnings = append(result.Warnings, warning)
			metrics.SourceFailures.WithLabelValues(subreddit).Inc()
			log.Warnw("source failed, continuing with remaining subreddits",
				"subreddit", subreddit,
				"error", err,
			)
			continue
		}

		metrics.PostsIngested.WithLabelValues(subreddit).Add(float64(len(posts)))
		result.Sources = append(result.Sources, SourceResult{
			Subreddit: subreddit,
			Posts:     len(posts),
		})

		w.aggregator.Merge(run, w.aggregator.ProcessPosts(posts))
		log.Infow("source processed", "subreddit", subreddit, "posts", len(posts))
	}

	ranked := w.aggregator.Rank(run)

	snapshot := &stocks.Snapshot{
		Stocks:       ranked,
		LastUpdated:  time.Now().UnixMilli(),
		TotalSources: len(w.cfg.Subreddits),
		DataSource:   stocks.DataSourceReddit,
	}

	if err := w.snapshots.Save(ctx, snapshot); err != nil {
		metrics.SnapshotSaves.WithLabelValues("error").Inc()
		return nil, errors.Wrap(err, "publish snapshot")
	}
	metrics.SnapshotSaves.WithLabelValues("ok").Inc()
	metrics.SnapshotStocks.Set(float64(len(ranked)))

	result.Snapshot = snapshot

	if w.notifier != nil {
		if err := w.notifier.SendDigest(ctx, snapshot); err != nil {
			log.Warnw("digest delivery failed", "error", err)
		}
	}

	return result, nil
}

// fetchSource pulls both listings for one subreddit, deduplicates, and
// attaches comment samples to posts that qualify.
func (w *Worker) fetchSource(ctx context.Context, subreddit string) ([]stocks.Post, error) {
	fresh, err := w.fetcher.FetchPosts(ctx, subreddit, "new", w.cfg.PageLimit)
	if err != nil {
		return nil, err
	}

	top, err := w.fetcher.FetchPosts(ctx, subreddit, "top", w.cfg.PageLimit)
	if err != nil {
		return nil, err
	}

	posts := stocks.DeduplicatePosts(append(fresh, top...))

	for i := range posts {
		if !w.sampler.Qualifies(posts[i]) {
			continue
		}
		posts[i].Comments = w.sampler.SampleComments(ctx, posts[i])
	}

	return posts, nil
}

// publishErrorSnapshot marks the store so readers can distinguish a broken
// pipeline from merely stale data. Best effort; a second failure here is
// only logged.
func (w *Worker) publishErrorSnapshot(ctx context.Context) {
	snapshot := &stocks.Snapshot{
		Stocks:       []stocks.StockAggregate{},
		LastUpdated:  time.Now().UnixMilli(),
		TotalSources: len(w.cfg.Subreddits),
		DataSource:   stocks.DataSourceError,
	}

	if err := w.snapshots.Save(ctx, snapshot); err != nil {
		metrics.SnapshotSaves.WithLabelValues("error").Inc()
		w.Log().Errorw("failed to publish error snapshot", "error", err)
		return
	}
	metrics.SnapshotSaves.WithLabelValues("ok").Inc()
	metrics.SnapshotStocks.Set(0)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
