// Package similarity scores how close two book titles are, for ranking
// duplicate candidates. Pure functions only; safe for concurrent use.
package similarity

import (
	"github.com/agnivade/levenshtein"

	"bookrec-backend/internal/shared/utils"
)

// Score returns a normalized similarity in [0,1] and the Levenshtein
// distance between two titles. Both inputs are normalized first (trim,
// case-fold, whitespace collapse) so formatting differences do not
// inflate the distance.
//
// similarity = 1 - distance/max(runeLen(a), runeLen(b)), clamped to [0,1].
// Equal strings after normalization score exactly 1.0.
func Score(a, b string) (float64, int) {
	na := utils.NormalizeTitle(a)
	nb := utils.NormalizeTitle(b)

	if na == nb {
		return 1.0, 0
	}

	// ComputeDistance works on runes, so multi-byte titles are measured
	// in code points, matching the rune-based length below.
	dist := levenshtein.ComputeDistance(na, nb)

	maxLen := len([]rune(na))
	if lb := len([]rune(nb)); lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1.0, 0
	}

	sim := 1.0 - float64(dist)/float64(maxLen)
	if sim < 0 {
		sim = 0
	}
	if sim > 1 {
		sim = 1
	}

	return sim, dist
}

// ScoreNormalized is Score for inputs already passed through
// utils.NormalizeTitle. The suggest path pre-normalizes its query once
// and the index stores normalized titles, so per-candidate work is just
// the distance computation.
func ScoreNormalized(na, nb string) (float64, int) {
	if na == nb {
		return 1.0, 0
	}

	dist := levenshtein.ComputeDistance(na, nb)

	maxLen := len([]rune(na))
	if lb := len([]rune(nb)); lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1.0, 0
	}

	sim := 1.0 - float64(dist)/float64(maxLen)
	if sim < 0 {
		sim = 0
	}
	if sim > 1 {
		sim = 1
	}

	return sim, dist
}
