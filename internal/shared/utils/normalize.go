package utils

import (
	"strings"
)

// NormalizeTitle canonicalizes a book title for comparison:
// trim, case-fold, collapse runs of whitespace to a single space.
// "  The  INTELLIGENT investor " -> "the intelligent investor"
//
// Both the resolver's exact-match lookup and the similarity scorer go
// through this function, so "same title" means the same thing everywhere.
func NormalizeTitle(title string) string {
	folded := strings.ToLower(title)
	return strings.Join(strings.Fields(folded), " ")
}
