package stocks

import (
	"regexp"
	"strings"
)

// A Strategy derives raw symbol candidates from a post title. Strategies are
// pure; the extractor unions their output and filters it once, keeping the
// exclusion check in a single place.
type Strategy func(title string) []string

var (
	dollarTickerRe  = regexp.MustCompile(`(?i)\$([a-z]{2,5})\b`)
	keywordBeforeRe = regexp.MustCompile(`(?i)\b(?:ticker|stock|share)s?\s+([a-z]{2,5})\b`)
	keywordAfterRe  = regexp.MustCompile(`(?i)\b([a-z]{2,5})\s+(?:ticker|stock|share)s?\b`)
)

// Extractor derives ticker-symbol candidates from post titles. Titles only:
// scanning bodies produced too many false positives to be worth it.
type Extractor struct {
	strategies []Strategy
	exclusions map[string]struct{}
}

// NewExtractor builds an extractor with the default strategies and the
// given exclusion set (DefaultExclusions in production).
func NewExtractor(exclusions map[string]struct{}) *Extractor {
	return &Extractor{
		strategies: []Strategy{
			BareUppercaseTokens,
			DollarTickers,
			KeywordAdjacentTickers,
		},
		exclusions: exclusions,
	}
}

// Extract returns the surviving symbols for a title, in first-seen order.
// Candidates are uppercased, stripped of a leading $, length-bounded to 2-5
// characters, and checked against the exclusion set.
func (e *Extractor) Extract(title string) []string {
	var out []string
	seen := make(map[string]struct{})

	for _, strategy := range e.strategies {
		for _, candidate := range strategy(title) {
			symbol := strings.ToUpper(strings.TrimPrefix(candidate, "$"))
			if len(symbol) < 2 || len(symbol) > 5 {
				continue
			}
			if _, excluded := e.exclusions[symbol]; excluded {
				continue
			}
			if _, dup := seen[symbol]; dup {
				continue
			}
			seen[symbol] = struct{}{}
			out = append(out, symbol)
		}
	}

	return out
}

// BareUppercaseTokens finds 2-5 letter uppercase runs that stand alone:
// preceded by start-of-string, whitespace or $, and not followed by another
// word character.
func BareUppercaseTokens(title string) []string {
	var out []string

	runes := []rune(title)
	for i := 0; i < len(runes); {
		if runes[i] < 'A' || runes[i] > 'Z' {
			i++
			continue
		}
		start := i
		for i < len(runes) && runes[i] >= 'A' && runes[i] <= 'Z' {
			i++
		}
		length := i - start
		if length < 2 || length > 5 {
			continue
		}
		if start > 0 {
			prev := runes[start-1]
			if prev != '$' && !isSpace(prev) {
				continue
			}
		}
		if i < len(runes) && isWordChar(runes[i]) {
			continue
		}
		out = append(out, string(runes[start:i]))
	}

	return out
}

// DollarTickers finds $TICK-style tokens, the most reliable signal.
func DollarTickers(title string) []string {
	var out []string
	for _, m := range dollarTickerRe.FindAllStringSubmatch(title, -1) {
		out = append(out, m[1])
	}
	return out
}

// KeywordAdjacentTickers finds "ticker/stock/share(s) TICK" phrases in
// either order.
func KeywordAdjacentTickers(title string) []string {
	var out []string
	for _, m := range keywordBeforeRe.FindAllStringSubmatch(title, -1) {
		out = append(out, m[1])
	}
	for _, m := range keywordAfterRe.FindAllStringSubmatch(title, -1) {
		out = append(out, m[1])
	}
	return out
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isWordChar(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
