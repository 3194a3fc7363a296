package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookrec-backend/internal/domains/recommendation/model"
	"bookrec-backend/pkg/database"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

const foreignKeyViolationCode = "23503"

type postgresRecommendationRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRecommendationRepository(pool *pgxpool.Pool) RecommendationRepository {
	return &postgresRecommendationRepository{pool: pool}
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresRecommendationRepository) Create(ctx context.Context, rec *model.Recommendation) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		insertQuery := `
			INSERT INTO recommendations (id, book_id, user_id, rating, reason, display_name, source_url, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`

		_, err := tx.Exec(ctx, insertQuery,
			rec.ID,
			rec.BookID,
			rec.UserID,
			rec.Rating,
			rec.Reason,
			rec.DisplayName,
			rec.SourceURL,
			rec.CreatedAt,
		)
		if err != nil {
			return err
		}

		// Touch the book so activity-ordered listings surface it.
		touchQuery := `UPDATE books SET updated_at = $1 WHERE id = $2`
		_, err = tx.Exec(ctx, touchQuery, rec.CreatedAt, rec.BookID)
		return err
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode {
			return model.ErrBookMissing
		}
		return fmt.Errorf("failed to create recommendation: %w", err)
	}

	return nil
}

// =====================================================
// LIST BY BOOK
// =====================================================

func (r *postgresRecommendationRepository) ListByBook(ctx context.Context, bookID uuid.UUID) ([]*model.Recommendation, error) {
	query := `
		SELECT id, book_id, user_id, rating, reason, display_name, source_url, created_at
		FROM recommendations
		WHERE book_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	defer rows.Close()

	var result []*model.Recommendation
	for rows.Next() {
		rec := &model.Recommendation{}
		err := rows.Scan(
			&rec.ID,
			&rec.BookID,
			&rec.UserID,
			&rec.Rating,
			&rec.Reason,
			&rec.DisplayName,
			&rec.SourceURL,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		result = append(result, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recommendation rows: %w", err)
	}

	return result, nil
}
