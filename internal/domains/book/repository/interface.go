package repository

import (
	"context"

	"github.com/google/uuid"

	"bookrec-backend/internal/domains/book/model"
)

// BookRepository is the catalog data access contract.
type BookRepository interface {
	// Create inserts a new book row. Returns model.ErrDuplicateTitle when
	// the normalized-title unique index fires (another submission won the
	// race); callers recover by re-reading.
	Create(ctx context.Context, book *model.Book) error

	// GetByNormalizedTitle looks up a book whose normalized title matches
	// exactly. Returns model.ErrBookNotFound on a miss.
	GetByNormalizedTitle(ctx context.Context, normalized string) (*model.Book, error)

	// GetStatsByID reads one row of the book_stats view.
	GetStatsByID(ctx context.Context, id uuid.UUID) (*model.BookStats, error)

	// ListStats reads book_stats rows, optionally filtered by category,
	// newest-updated first.
	ListStats(ctx context.Context, category *model.Category, limit int) ([]*model.BookStats, error)

	// TitleEntries returns every catalog title for the suggestion index.
	TitleEntries(ctx context.Context) ([]model.TitleEntry, error)
}
