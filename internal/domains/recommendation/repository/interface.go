package repository

import (
	"context"

	"github.com/google/uuid"

	"bookrec-backend/internal/domains/recommendation/model"
)

// RecommendationRepository persists recommendation rows. Rows are
// append-only; there is no update or delete.
type RecommendationRepository interface {
	// Create inserts the recommendation and touches the parent book's
	// updated_at in the same transaction, so listings sorted by activity
	// pick the book up. Returns model.ErrBookMissing when the book row
	// does not exist.
	Create(ctx context.Context, rec *model.Recommendation) error

	// ListByBook returns all recommendations for a book, newest first.
	ListByBook(ctx context.Context, bookID uuid.UUID) ([]*model.Recommendation, error)
}
