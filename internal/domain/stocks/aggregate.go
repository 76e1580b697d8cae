package stocks

import (
	"math"
	"sort"
	"strings"
)

const (
	// DefaultTopStocks bounds the published snapshot
	DefaultTopStocks = 20

	commentSamplesPerPost = 5
)

// Aggregator folds per-source posts into symbol-keyed aggregates, merges
// them across sources and ranks the result. Extraction and scoring are
// injected so tests can run isolated, parallel instances.
type Aggregator struct {
	extractor *Extractor
	scorer    *Scorer
	topN      int
}

// NewAggregator creates an aggregator. topN <= 0 falls back to the default
// snapshot bound of 20 stocks.
func NewAggregator(extractor *Extractor, scorer *Scorer, topN int) *Aggregator {
	if topN <= 0 {
		topN = DefaultTopStocks
	}
	return &Aggregator{extractor: extractor, scorer: scorer, topN: topN}
}

// DeduplicatePosts drops posts whose ID was already seen, first occurrence
// wins. The operation is idempotent and never grows the list.
func DeduplicatePosts(posts []Post) []Post {
	seen := make(map[string]struct{}, len(posts))
	out := make([]Post, 0, len(posts))
	for _, post := range posts {
		if _, dup := seen[post.ID]; dup {
			continue
		}
		seen[post.ID] = struct{}{}
		out = append(out, post)
	}
	return out
}

// ProcessPosts extracts symbols from each post title and accumulates one
// aggregate per symbol for a single source. Each mention contributes the
// post itself plus one sample for the post content and up to five samples
// for its top-scored comments.
func (a *Aggregator) ProcessPosts(posts []Post) map[string]*StockAggregate {
	stocks := make(map[string]*StockAggregate)

	for _, post := range posts {
		for _, symbol := range a.extractor.Extract(post.Title) {
			agg, ok := stocks[symbol]
			if !ok {
				agg = &StockAggregate{Symbol: symbol}
				stocks[symbol] = agg
			}

			agg.Mentions++
			agg.Posts = append(agg.Posts, post)
			agg.Samples = append(agg.Samples, a.sampleSet(post)...)
			agg.UniquePosts = len(agg.Posts)
			agg.UniqueUsers = countUniqueAuthors(agg.Samples)
			agg.SentimentScore = a.scorer.Score(agg.Samples)
		}
	}

	return stocks
}

// sampleSet builds the sentiment samples one mention contributes: the post
// content (score doubled, it is primary content) and its top five comments
// by score.
func (a *Aggregator) sampleSet(post Post) []SentimentSample {
	content := post.Title + "\n" + post.Selftext

	samples := []SentimentSample{{
		Author:    post.Author,
		Sentiment: a.scorer.Classify(content),
		Timestamp: post.CreatedUTC,
		Weight:    post.Score * 2,
		Source: SampleSource{
			Kind: SourcePost,
			ID:   post.ID,
			Text: strings.ToLower(content),
		},
	}}

	comments := make([]Comment, len(post.Comments))
	copy(comments, post.Comments)
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].Score > comments[j].Score
	})
	if len(comments) > commentSamplesPerPost {
		comments = comments[:commentSamplesPerPost]
	}

	for _, c := range comments {
		samples = append(samples, SentimentSample{
			Author:    c.Author,
			Sentiment: a.scorer.Classify(c.Body),
			Timestamp: c.CreatedUTC,
			Weight:    c.Score,
			Source: SampleSource{
				Kind: SourceComment,
				ID:   c.ID,
				Text: c.Body,
			},
		})
	}

	return samples
}

// Merge folds one source's aggregates into the run-scoped map. Mentions are
// summed and never deduplicated; posts are deduplicated by ID with the
// first occurrence winning; samples are concatenated and the sentiment
// score is recomputed over the merged set.
func (a *Aggregator) Merge(run, source map[string]*StockAggregate) {
	for symbol, src := range source {
		dst, ok := run[symbol]
		if !ok {
			src.Posts = DeduplicatePosts(src.Posts)
			src.UniquePosts = len(src.Posts)
			run[symbol] = src
			continue
		}

		dst.Mentions += src.Mentions
		dst.Posts = DeduplicatePosts(append(dst.Posts, src.Posts...))
		dst.UniquePosts = len(dst.Posts)
		dst.Samples = append(dst.Samples, src.Samples...)
		dst.UniqueUsers = countUniqueAuthors(dst.Samples)
		dst.SentimentScore = a.scorer.Score(dst.Samples)
	}
}

// Rank finishes a run: a final dedup pass, the country-code sanitation
// sweep, dropping aggregates left without posts, recomputing scores, and
// sorting by trending score descending, truncated to topN.
func (a *Aggregator) Rank(run map[string]*StockAggregate) []StockAggregate {
	for _, symbol := range InvalidSymbols() {
		delete(run, symbol)
	}

	out := make([]StockAggregate, 0, len(run))
	for _, agg := range run {
		agg.Posts = DeduplicatePosts(agg.Posts)
		agg.UniquePosts = len(agg.Posts)
		if agg.UniquePosts == 0 {
			continue
		}

		agg.UniqueUsers = countUniqueAuthors(agg.Samples)
		agg.SentimentScore = a.scorer.Score(agg.Samples)
		agg.TrendingScore = trendingScore(agg)
		out = append(out, *agg)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TrendingScore > out[j].TrendingScore
	})
	if len(out) > a.topN {
		out = out[:a.topN]
	}
	return out
}

// trendingScore combines post diversity, mention volume, engagement and
// sentiment magnitude. Used only to order output, never displayed.
func trendingScore(agg *StockAggregate) float64 {
	var postScore float64
	for _, p := range agg.Posts {
		postScore += math.Max(float64(p.Score), 1)
	}
	avgScore := postScore / float64(len(agg.Posts))

	diversity := float64(agg.UniquePosts) * 3
	mentionScore := float64(agg.Mentions) * 0.5
	engagement := math.Log10(avgScore+1) * 2
	sentimentImpact := math.Abs(agg.SentimentScore)

	return diversity + mentionScore + engagement + sentimentImpact
}

func countUniqueAuthors(samples []SentimentSample) int {
	authors := make(map[string]struct{}, len(samples))
	for _, s := range samples {
		authors[s.Author] = struct{}{}
	}
	return len(authors)
}
