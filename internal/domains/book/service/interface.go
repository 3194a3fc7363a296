package service

import (
	"context"

	"github.com/google/uuid"

	"bookrec-backend/internal/domains/book/model"
)

// ServiceInterface exposes the catalog operations: candidate ranking,
// resolve-or-create and the aggregate reads.
type ServiceInterface interface {
	// Suggest ranks existing titles by similarity to the query.
	// Empty or whitespace-only queries return an empty list, never an error.
	Suggest(ctx context.Context, query string, limit int) ([]model.SuggestCandidate, error)

	// ResolveOrCreate maps a submitted title to an existing book or
	// creates a new one, exactly once per distinct normalized title.
	// Concurrent calls with the same normalized title all return the same id.
	ResolveOrCreate(ctx context.Context, title string, author *string, category model.Category) (uuid.UUID, error)

	// ListBooks returns aggregate rows, optionally filtered by category.
	ListBooks(ctx context.Context, req model.ListBooksRequest) ([]model.BookStatsResponse, error)

	// GetBookStats returns the aggregate row of one book.
	GetBookStats(ctx context.Context, id uuid.UUID) (*model.BookStatsResponse, error)
}
