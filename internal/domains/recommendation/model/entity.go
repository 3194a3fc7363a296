package model

import (
	"time"

	"github.com/google/uuid"
)

// Recommendation is one user's rating and optional commentary for a book.
// Rows are append-only: created once by a submission, never mutated or
// deleted. Identical payloads intentionally create new rows each time -
// a user may legitimately rate twice.
type Recommendation struct {
	ID     uuid.UUID  `json:"id"`
	BookID uuid.UUID  `json:"book_id"`
	UserID *uuid.UUID `json:"user_id"` // always nil today, submissions are anonymous

	Rating      int     `json:"rating"` // 1-5
	Reason      *string `json:"reason"`
	DisplayName *string `json:"display_name"`
	SourceURL   *string `json:"source_url"`

	CreatedAt time.Time `json:"created_at"`
}
