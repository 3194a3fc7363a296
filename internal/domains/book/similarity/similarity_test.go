package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreIdenticalTitles(t *testing.T) {
	sim, dist := Score("The Intelligent Investor", "The Intelligent Investor")

	assert.Equal(t, 1.0, sim)
	assert.Equal(t, 0, dist)
}

func TestScoreNormalizesBeforeComparing(t *testing.T) {
	// Case and whitespace differences must not count as edits.
	sim, dist := Score("  The   Intelligent Investor ", "the intelligent investor")

	assert.Equal(t, 1.0, sim)
	assert.Equal(t, 0, dist)
}

func TestScoreKnownDistance(t *testing.T) {
	// "the " prefix is 4 edits; the longer side is 24 runes.
	sim, dist := Score("Intelligent Investor", "The Intelligent Investor")

	assert.Equal(t, 4, dist)
	assert.InDelta(t, 1.0-4.0/24.0, sim, 1e-9)
	assert.Greater(t, sim, 0.5)
}

func TestScoreSymmetry(t *testing.T) {
	simAB, distAB := Score("A Random Walk Down Wall Street", "Random Walk")
	simBA, distBA := Score("Random Walk", "A Random Walk Down Wall Street")

	assert.Equal(t, distAB, distBA)
	assert.Equal(t, simAB, simBA)
}

func TestScoreBounds(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
	}{
		{"completely different", "xxxxx", "yyyyyyyyyy"},
		{"one empty", "", "some title"},
		{"both empty", "", ""},
		{"multibyte", "株式投資の未来", "ウォール街のランダム・ウォーカー"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim, dist := Score(tt.a, tt.b)
			assert.GreaterOrEqual(t, sim, 0.0)
			assert.LessOrEqual(t, sim, 1.0)
			assert.GreaterOrEqual(t, dist, 0)
		})
	}
}

func TestScoreBothEmptyIsExactMatch(t *testing.T) {
	sim, dist := Score("   ", "")

	assert.Equal(t, 1.0, sim)
	assert.Equal(t, 0, dist)
}

func TestScoreMultibyteCountsRunes(t *testing.T) {
	// One code point changed out of seven; bytes would give a much
	// larger distance.
	sim, dist := Score("株式投資の未来", "株式投資の将来")

	assert.Equal(t, 1, dist)
	assert.InDelta(t, 1.0-1.0/7.0, sim, 1e-9)
}

func TestScoreNormalizedMatchesScore(t *testing.T) {
	sim1, dist1 := Score("Rich Dad Poor Dad", "Rich Dad, Poor Dad")
	sim2, dist2 := ScoreNormalized("rich dad poor dad", "rich dad, poor dad")

	assert.Equal(t, dist1, dist2)
	assert.Equal(t, sim1, sim2)
}
