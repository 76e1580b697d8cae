package stocks

import (
	"math"
	"strings"
)

// Keyword lists driving classification. Matching is case-insensitive
// substring presence, one count per keyword.
var (
	defaultPositiveKeywords = []string{
		"moon", "rocket", "breakout", "squeeze", "catalyst", "bullish", "pump",
		"explosive", "gains", "profit", "buy", "long", "hodl", "diamond hands",
	}

	defaultNegativeKeywords = []string{
		"dump", "crash", "avoid", "scam", "bearish", "sell", "short", "paper hands",
		"loss", "bag", "pump and dump", "manipulation",
	}
)

// Scorer classifies text fragments and converts sample sets into one
// weighted score. Keyword lists are injected so tests can run isolated
// instances.
type Scorer struct {
	positive []string
	negative []string
}

// NewScorer creates a scorer with the default keyword lists.
func NewScorer() *Scorer {
	return NewScorerWithKeywords(defaultPositiveKeywords, defaultNegativeKeywords)
}

// NewScorerWithKeywords creates a scorer with custom keyword lists.
func NewScorerWithKeywords(positive, negative []string) *Scorer {
	return &Scorer{positive: positive, negative: negative}
}

// Classify returns the sentiment of a text fragment: whichever keyword list
// has the strictly larger presence count wins, otherwise neutral.
func (s *Scorer) Classify(text string) Sentiment {
	lower := strings.ToLower(text)

	positiveCount := 0
	for _, k := range s.positive {
		if strings.Contains(lower, k) {
			positiveCount++
		}
	}

	negativeCount := 0
	for _, k := range s.negative {
		if strings.Contains(lower, k) {
			negativeCount++
		}
	}

	switch {
	case positiveCount > negativeCount:
		return SentimentPositive
	case negativeCount > positiveCount:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// Score converts a sample set into a weighted average in [-1, 1]. Each
// sample maps to {+1, 0, -1}; its weight is log10(max(score,1)) + 1, so a
// zero or negative score still contributes weight 1 and weight grows
// logarithmically with upvotes. An empty or all-zero-weight set scores 0.
func (s *Scorer) Score(samples []SentimentSample) float64 {
	var weightedSum, totalWeight float64

	for _, sample := range samples {
		weight := math.Log10(math.Max(float64(sample.Weight), 1)) + 1
		weightedSum += float64(sentimentValue(sample.Sentiment)) * weight
		totalWeight += weight
	}

	if totalWeight == 0 {
		return 0
	}
	return weightedSum / totalWeight
}

func sentimentValue(s Sentiment) int {
	switch s {
	case SentimentPositive:
		return 1
	case SentimentNegative:
		return -1
	default:
		return 0
	}
}
