package ingest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"excer/internal/domain/stocks"
	"excer/pkg/errors"
)

type fakeCommentFetcher struct {
	comments map[string][]stocks.Comment
	err      error
	calls    int
}

func (f *fakeCommentFetcher) FetchComments(ctx context.Context, permalink string) ([]stocks.Comment, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.comments[permalink], nil
}

func TestQualifies(t *testing.T) {
	sampler := NewSampler(&fakeCommentFetcher{}, 10)

	tests := []struct {
		name  string
		title string
		score int
		want  bool
	}{
		{"dollar symbol with engagement", "$GME to the moon", 15, true},
		{"dollar symbol low score", "$GME to the moon", 5, false},
		{"symbol before keyword", "MULN stock is wild today", 12, true},
		{"keyword before symbol", "thoughts on ticker BBIG here", 30, true},
		{"plural keyword", "AMC shares keep climbing", 10, true},
		{"bare symbol only", "GME is unstoppable", 100, false},
		{"no symbol at all", "market looking rough today", 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := stocks.Post{Title: tt.title, Score: tt.score}
			assert.Equal(t, tt.want, sampler.Qualifies(post))
		})
	}
}

func TestSampleComments_FiltersAndRanks(t *testing.T) {
	fetcher := &fakeCommentFetcher{
		comments: map[string][]stocks.Comment{
			"/r/pennystocks/comments/abc/": {
				{ID: "c1", Body: "$GME is the play", Score: 5, Author: "u1"},
				{ID: "c2", Body: "totally unrelated chatter", Score: 50, Author: "u2"},
				{ID: "c3", Body: "holding GME, not selling", Score: 9, Author: "u3"},
				{ID: "c4", Body: "bought GME. best decision", Score: 2, Author: "u4"},
				{ID: "c5", Body: "GME! diamond hands", Score: -3, Author: "u5"},
				{ID: "c6", Body: "is GME? worth it", Score: 7, Author: "u6"},
			},
		},
	}
	sampler := NewSampler(fetcher, 10)

	post := stocks.Post{
		ID:        "abc",
		Title:     "$GME squeeze incoming",
		Score:     42,
		Permalink: "/r/pennystocks/comments/abc/",
	}

	comments := sampler.SampleComments(context.Background(), post)
	require.Len(t, comments, 3)

	// Top three positive-score comments that reference the symbol
	assert.Equal(t, "c3", comments[0].ID)
	assert.Equal(t, "c6", comments[1].ID)
	assert.Equal(t, "c1", comments[2].ID)
}

func TestSampleComments_FetchErrorYieldsNone(t *testing.T) {
	fetcher := &fakeCommentFetcher{err: errors.New("thread unavailable")}
	sampler := NewSampler(fetcher, 10)

	post := stocks.Post{
		ID:        "abc",
		Title:     "$SNDL breakout",
		Score:     20,
		Permalink: "/r/pennystocks/comments/abc/",
	}

	assert.Empty(t, sampler.SampleComments(context.Background(), post))
}

func TestSampleComments_NoHeadlineSymbolSkipsFetch(t *testing.T) {
	fetcher := &fakeCommentFetcher{}
	sampler := NewSampler(fetcher, 10)

	post := stocks.Post{Title: "no tickers here", Score: 50}

	assert.Empty(t, sampler.SampleComments(context.Background(), post))
	assert.Zero(t, fetcher.calls)
}
