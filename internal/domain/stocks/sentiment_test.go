package stocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	scorer := NewScorer()

	tests := []struct {
		name string
		text string
		want Sentiment
	}{
		{"positive keywords win", "this rocket is going to the moon", SentimentPositive},
		{"negative keywords win", "total scam, dump it before the crash", SentimentNegative},
		{"no keywords is neutral", "earnings call scheduled for Tuesday", SentimentNeutral},
		{"tie is neutral", "buy the dip or sell the rip", SentimentNeutral},
		{"case insensitive", "BULLISH BREAKOUT incoming", SentimentPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scorer.Classify(tt.text))
		})
	}
}

func TestScore_EmptySetScoresZero(t *testing.T) {
	scorer := NewScorer()

	assert.Zero(t, scorer.Score(nil))
	assert.Zero(t, scorer.Score([]SentimentSample{}))
}

func TestScore_BoundedByUnitInterval(t *testing.T) {
	scorer := NewScorer()

	samples := []SentimentSample{
		{Sentiment: SentimentPositive, Weight: 5000},
		{Sentiment: SentimentPositive, Weight: 10},
		{Sentiment: SentimentNegative, Weight: 3},
		{Sentiment: SentimentNeutral, Weight: 120},
	}

	score := scorer.Score(samples)
	assert.GreaterOrEqual(t, score, -1.0)
	assert.LessOrEqual(t, score, 1.0)
}

func TestScore_AllPositiveIsOne(t *testing.T) {
	scorer := NewScorer()

	samples := []SentimentSample{
		{Sentiment: SentimentPositive, Weight: 100},
		{Sentiment: SentimentPositive, Weight: 0},
	}

	assert.InDelta(t, 1.0, scorer.Score(samples), 1e-9)
}

func TestScore_ZeroScoreSamplesStillWeighted(t *testing.T) {
	scorer := NewScorer()

	// A zero or negative upvote score clamps to weight 1, it never drops
	// the sample from the average
	samples := []SentimentSample{
		{Sentiment: SentimentPositive, Weight: 0},
		{Sentiment: SentimentNegative, Weight: -4},
	}

	assert.InDelta(t, 0.0, scorer.Score(samples), 1e-9)
}

func TestScore_HigherUpvotesCarryMoreWeight(t *testing.T) {
	scorer := NewScorer()

	samples := []SentimentSample{
		{Sentiment: SentimentPositive, Weight: 1000},
		{Sentiment: SentimentNegative, Weight: 1},
	}

	assert.Greater(t, scorer.Score(samples), 0.0)
}

func TestScorerWithKeywords_Isolated(t *testing.T) {
	scorer := NewScorerWithKeywords([]string{"lambo"}, []string{"rekt"})

	assert.Equal(t, SentimentPositive, scorer.Classify("lambo soon"))
	assert.Equal(t, SentimentNegative, scorer.Classify("got rekt today"))
	assert.Equal(t, SentimentNeutral, scorer.Classify("to the moon"))
}
