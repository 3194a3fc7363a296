package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category is the closed set of investment-book categories.
// Submissions with any other value are rejected at the boundary.
type Category string

const (
	CategoryStocksIndexFunds Category = "stocks-index-funds"
	CategoryRealEstate       Category = "real-estate"
	CategoryEarlyRetirement  Category = "early-retirement"
	CategoryForex            Category = "forex"
	CategoryOther            Category = "other"
)

// Categories returns the full enumeration, in display order.
func Categories() []Category {
	return []Category{
		CategoryStocksIndexFunds,
		CategoryRealEstate,
		CategoryEarlyRetirement,
		CategoryForex,
		CategoryOther,
	}
}

// CategoryValues returns the enumeration as []interface{} for ozzo's In rule.
func CategoryValues() []interface{} {
	cats := Categories()
	values := make([]interface{}, 0, len(cats))
	for _, c := range cats {
		values = append(values, string(c))
	}
	return values
}

func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Book is the identity-bearing catalog entry.
// No two rows share the same normalized title; the unique index on the
// app-computed normalized_title column enforces it, the resolver
// recovers from it.
type Book struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Author    *string   `json:"author"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookStats is the derived per-book aggregate, read from the book_stats
// view. It is always recomputed from recommendations, never incremented.
type BookStats struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	Author    *string         `json:"author"`
	Category  Category        `json:"category"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	AvgRating decimal.Decimal `json:"avg_rating"`
	RecCount  int             `json:"rec_count"`
}

// TitleEntry is one row of the in-memory suggestion index.
type TitleEntry struct {
	ID         uuid.UUID
	Title      string
	Normalized string
	Author     *string
	CreatedAt  time.Time
}
