package ingest

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"excer/internal/domain/stocks"
	"excer/pkg/logger"
)

// commentsPerPost caps how many thread comments are attached to one post
const commentsPerPost = 3

// Qualification patterns run against the uppercased title. A post earns a
// comment fetch only when the title names a symbol explicitly; bare
// uppercase tokens alone are not enough.
var (
	dollarSymbolRe  = regexp.MustCompile(`\$[A-Z]{2,5}\b`)
	symbolKeywordRe = regexp.MustCompile(`\b[A-Z]{2,5}\s+(?:STOCK|SHARE|TICKER)S?\b`)
	keywordSymbolRe = regexp.MustCompile(`\b(?:STOCK|SHARE|TICKER)S?\s+[A-Z]{2,5}\b`)

	// headlineSymbolRe picks the symbol the comment filter looks for. It is
	// looser than the qualification patterns on purpose: the first 2-5 letter
	// uppercase token wins, with or without a dollar prefix.
	headlineSymbolRe = regexp.MustCompile(`\$?([A-Z]{2,5})\b`)
)

// CommentFetcher is the slice of the Reddit client the sampler needs
type CommentFetcher interface {
	FetchComments(ctx context.Context, permalink string) ([]stocks.Comment, error)
}

// Sampler decides which posts deserve a comment fetch and filters the
// thread down to the few comments that actually discuss the symbol.
type Sampler struct {
	fetcher  CommentFetcher
	minScore int
	log      *logger.Logger
}

// NewSampler creates a comment sampler. minScore is the engagement floor a
// post must clear before its thread is fetched.
func NewSampler(fetcher CommentFetcher, minScore int) *Sampler {
	return &Sampler{
		fetcher:  fetcher,
		minScore: minScore,
		log:      logger.Get().With("component", "sampler"),
	}
}

// Qualifies reports whether a post's thread is worth fetching: the title
// must carry an explicit symbol mention and the post must have engagement.
func (s *Sampler) Qualifies(post stocks.Post) bool {
	if post.Score < s.minScore {
		return false
	}

	title := strings.ToUpper(post.Title)
	return dollarSymbolRe.MatchString(title) ||
		symbolKeywordRe.MatchString(title) ||
		keywordSymbolRe.MatchString(title)
}

// SampleComments fetches the post's thread and returns up to commentsPerPost
// positively scored comments that reference the headline symbol, best first.
// Fetch failures degrade to no comments rather than failing the post.
func (s *Sampler) SampleComments(ctx context.Context, post stocks.Post) []stocks.Comment {
	match := headlineSymbolRe.FindStringSubmatch(strings.ToUpper(post.Title))
	if match == nil {
		return nil
	}
	symbol := match[1]

	comments, err := s.fetcher.FetchComments(ctx, post.Permalink)
	if err != nil {
		s.log.Warnw("comment fetch failed, continuing without samples",
			"post_id", post.ID,
			"error", err,
		)
		return nil
	}

	relevant := make([]stocks.Comment, 0, len(comments))
	for _, comment := range comments {
		if comment.Score <= 0 {
			continue
		}
		if !mentionsSymbol(comment.Body, symbol) {
			continue
		}
		relevant = append(relevant, comment)
	}

	sort.SliceStable(relevant, func(i, j int) bool {
		return relevant[i].Score > relevant[j].Score
	})

	if len(relevant) > commentsPerPost {
		relevant = relevant[:commentsPerPost]
	}
	return relevant
}

// mentionsSymbol checks for the symbol with a dollar prefix, surrounded by
// spaces, or trailed by sentence punctuation. A bare substring match would
// catch symbols embedded inside longer words.
func mentionsSymbol(body, symbol string) bool {
	text := strings.ToUpper(body)
	for _, probe := range []string{
		"$" + symbol,
		" " + symbol + " ",
		symbol + ",",
		symbol + ".",
		symbol + "!",
		symbol + "?",
	} {
		if strings.Contains(text, probe) {
			return true
		}
	}
	return false
}
