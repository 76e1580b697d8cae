package stocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestExtractor() *Extractor {
	return NewExtractor(DefaultExclusions())
}

func TestExtract_DollarTicker(t *testing.T) {
	ex := newTestExtractor()

	symbols := ex.Extract("$GME to the moon")
	assert.Equal(t, []string{"GME"}, symbols)
}

func TestExtract_AllTokensExcluded(t *testing.T) {
	ex := newTestExtractor()

	symbols := ex.Extract("THE CEO SAID IT WILL MOON")
	assert.Empty(t, symbols)
}

func TestExtract_BareUppercaseToken(t *testing.T) {
	ex := newTestExtractor()

	symbols := ex.Extract("AMC squeeze starting tomorrow")
	assert.Equal(t, []string{"AMC"}, symbols)
}

func TestExtract_KeywordPhrases(t *testing.T) {
	ex := newTestExtractor()

	assert.Equal(t, []string{"BBIG"}, ex.Extract("why I'm loading up on ticker bbig"))
	assert.Equal(t, []string{"MULN"}, ex.Extract("muln shares are about to rip"))
}

func TestExtract_LowercaseDollarTicker(t *testing.T) {
	ex := newTestExtractor()

	symbols := ex.Extract("loaded up on $sndl this morning")
	assert.Equal(t, []string{"SNDL"}, symbols)
}

func TestExtract_LengthBounds(t *testing.T) {
	ex := newTestExtractor()

	// Single letters and 6+ letter runs never qualify
	assert.Empty(t, ex.Extract("I bought QQQQQQ today"))
	assert.Empty(t, ex.Extract("grade A stuff"))
}

func TestExtract_AdjacentWordCharsRejected(t *testing.T) {
	ex := newTestExtractor()

	// Uppercase run glued to digits or other word characters is not a token
	assert.Empty(t, ex.Extract("error code ABC123 again"))
}

func TestExtract_UnionDeduplicates(t *testing.T) {
	ex := newTestExtractor()

	// $GME matches both the bare pass and the dollar pass; output once
	symbols := ex.Extract("$GME $GME GME stock")
	assert.Equal(t, []string{"GME"}, symbols)
}

func TestExtract_MultipleSymbols(t *testing.T) {
	ex := newTestExtractor()

	symbols := ex.Extract("$GME and AMC both squeezing")
	assert.ElementsMatch(t, []string{"GME", "AMC"}, symbols)
}

func TestBareUppercaseTokens_PrecededByPunctuation(t *testing.T) {
	// Only start-of-string, whitespace or $ may precede a bare token
	assert.Empty(t, BareUppercaseTokens("check (GME) out"))
	assert.Equal(t, []string{"GME"}, BareUppercaseTokens("check GME out"))
}

func TestDefaultExclusions_CoversBusinessAcronyms(t *testing.T) {
	set := DefaultExclusions()

	for _, word := range []string{"CEO", "IPO", "ETF", "YOLO", "MOON"} {
		_, ok := set[word]
		assert.True(t, ok, "expected %s in exclusion set", word)
	}
}
