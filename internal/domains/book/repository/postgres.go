package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookrec-backend/internal/domains/book/model"
	"bookrec-backend/internal/shared/utils"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

const uniqueViolationCode = "23505"

type postgresBookRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresBookRepository(pool *pgxpool.Pool) BookRepository {
	return &postgresBookRepository{pool: pool}
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresBookRepository) Create(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (id, title, normalized_title, author, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	// normalized_title is always computed here, never in SQL, so the
	// unique index and the lookup agree with NormalizeTitle on every
	// database locale.
	_, err := r.pool.Exec(ctx, query,
		book.ID,
		book.Title,
		utils.NormalizeTitle(book.Title),
		book.Author,
		book.Category,
		book.CreatedAt,
		book.UpdatedAt,
	)

	if err != nil {
		// The unique index on normalized_title is the serialization
		// point for concurrent create-or-get.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return model.ErrDuplicateTitle
		}
		return fmt.Errorf("failed to create book: %w", err)
	}

	return nil
}

// =====================================================
// GET BY NORMALIZED TITLE
// =====================================================

func (r *postgresBookRepository) GetByNormalizedTitle(ctx context.Context, normalized string) (*model.Book, error) {
	query := `
		SELECT id, title, author, category, created_at, updated_at
		FROM books
		WHERE normalized_title = $1
		LIMIT 1
	`

	book := &model.Book{}
	err := r.pool.QueryRow(ctx, query, normalized).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Category,
		&book.CreatedAt,
		&book.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by title: %w", err)
	}

	return book, nil
}

// =====================================================
// STATS READS (book_stats view)
// =====================================================

func (r *postgresBookRepository) GetStatsByID(ctx context.Context, id uuid.UUID) (*model.BookStats, error) {
	query := `
		SELECT id, title, author, category, created_at, updated_at, avg_rating, rec_count
		FROM book_stats
		WHERE id = $1
	`

	stats := &model.BookStats{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&stats.ID,
		&stats.Title,
		&stats.Author,
		&stats.Category,
		&stats.CreatedAt,
		&stats.UpdatedAt,
		&stats.AvgRating,
		&stats.RecCount,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book stats: %w", err)
	}

	return stats, nil
}

func (r *postgresBookRepository) ListStats(ctx context.Context, category *model.Category, limit int) ([]*model.BookStats, error) {
	query := `
		SELECT id, title, author, category, created_at, updated_at, avg_rating, rec_count
		FROM book_stats
	`

	args := []interface{}{}
	if category != nil {
		query += ` WHERE category = $1`
		args = append(args, *category)
	}

	query += fmt.Sprintf(" ORDER BY updated_at DESC LIMIT $%d", len(args)+1)
	args = append(args, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list book stats: %w", err)
	}
	defer rows.Close()

	var result []*model.BookStats
	for rows.Next() {
		stats := &model.BookStats{}
		err := rows.Scan(
			&stats.ID,
			&stats.Title,
			&stats.Author,
			&stats.Category,
			&stats.CreatedAt,
			&stats.UpdatedAt,
			&stats.AvgRating,
			&stats.RecCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book stats: %w", err)
		}
		result = append(result, stats)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read book stats rows: %w", err)
	}

	return result, nil
}

// =====================================================
// TITLE ENTRIES (suggestion index source)
// =====================================================

func (r *postgresBookRepository) TitleEntries(ctx context.Context) ([]model.TitleEntry, error) {
	query := `
		SELECT id, title, normalized_title, author, created_at
		FROM books
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load title entries: %w", err)
	}
	defer rows.Close()

	var entries []model.TitleEntry
	for rows.Next() {
		var e model.TitleEntry
		if err := rows.Scan(&e.ID, &e.Title, &e.Normalized, &e.Author, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan title entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read title entry rows: %w", err)
	}

	return entries, nil
}
