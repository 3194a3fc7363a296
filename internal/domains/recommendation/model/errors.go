package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeInvalidRating = "REC001"
	ErrCodeBookNotFound  = "REC002"
	ErrCodeStoreFailure  = "REC003"
	ErrCodeConsistency   = "REC004"
)

// Errors
var (
	// ErrBookMissing is the repository's translation of the book_id
	// foreign key firing on insert.
	ErrBookMissing = errors.New("referenced book does not exist")
)

// RecommendationError carries an error code for the HTTP boundary.
type RecommendationError struct {
	Code    string
	Message string
	Err     error
}

func (e *RecommendationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *RecommendationError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewInvalidRatingError(rating int) *RecommendationError {
	return &RecommendationError{
		Code:    ErrCodeInvalidRating,
		Message: fmt.Sprintf("Rating must be between 1 and 5, got %d", rating),
	}
}

func NewBookNotFoundError() *RecommendationError {
	return &RecommendationError{
		Code:    ErrCodeBookNotFound,
		Message: "Book not found",
		Err:     ErrBookMissing,
	}
}

func NewStoreFailureError(err error) *RecommendationError {
	return &RecommendationError{
		Code:    ErrCodeStoreFailure,
		Message: "Recommendation store unavailable",
		Err:     err,
	}
}

// NewConsistencyError marks a state that must not occur when the
// invariants hold: a recommendation written against a book id that the
// resolver just returned, yet the row is gone. Logged and surfaced as an
// internal error, never swallowed.
func NewConsistencyError(err error) *RecommendationError {
	return &RecommendationError{
		Code:    ErrCodeConsistency,
		Message: "Catalog consistency violation",
		Err:     err,
	}
}
