package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// SuggestRequest - live title suggestion while the user types.
// Callers debounce; the endpoint itself imposes no rate limit.
// The service clamps the limit, so no Normalize here.
type SuggestRequest struct {
	Query string `form:"q"`
	Limit int    `form:"limit"`
}

// ListBooksRequest - aggregate listing, optionally filtered by category.
// Rating-threshold filtering, substring search and sorting happen in the
// frontend over this list, as in the original board.
type ListBooksRequest struct {
	Category *string `form:"category"`
	Limit    int     `form:"limit"`
}

func (r *ListBooksRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Category,
			validation.In(CategoryValues()...).Error("unknown category"),
		),
		validation.Field(&r.Limit,
			validation.Min(0).Error("limit must be >= 0"),
			validation.Max(200).Error("limit must be <= 200"),
		),
	)
}

func (r *ListBooksRequest) Normalize() {
	if r.Limit < 1 {
		r.Limit = 50
	}
	if r.Category != nil && strings.TrimSpace(*r.Category) == "" {
		r.Category = nil
	}
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// SuggestCandidate is one entry of the ordered suggestion list.
// Similarity is pre-rounded to 2 decimals for display.
type SuggestCandidate struct {
	BookID     uuid.UUID `json:"book_id"`
	Title      string    `json:"title"`
	Author     *string   `json:"author"`
	Similarity float64   `json:"similarity"`
	Distance   int       `json:"distance"`
}

// BookStatsResponse mirrors the book_stats view row.
type BookStatsResponse struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	Author    *string         `json:"author"`
	Category  Category        `json:"category"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	AvgRating decimal.Decimal `json:"avg_rating"`
	RecCount  int             `json:"rec_count"`
}

func NewBookStatsResponse(s *BookStats) BookStatsResponse {
	return BookStatsResponse{
		ID:        s.ID,
		Title:     s.Title,
		Author:    s.Author,
		Category:  s.Category,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		AvgRating: s.AvgRating,
		RecCount:  s.RecCount,
	}
}
