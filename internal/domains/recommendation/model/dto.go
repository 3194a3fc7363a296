package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	bookmodel "bookrec-backend/internal/domains/book/model"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// AttachRequest adds a recommendation to an already-known book
// (the detail page form).
type AttachRequest struct {
	Rating      int     `json:"rating"`
	Reason      *string `json:"reason"`
	DisplayName *string `json:"display_name"`
	SourceURL   *string `json:"source_url"`
}

func (r AttachRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating,
			validation.Required.Error("rating is required"),
			validation.Min(1).Error("rating must be at least 1"),
			validation.Max(5).Error("rating must be at most 5"),
		),
		validation.Field(&r.Reason,
			validation.Length(0, 2000).Error("reason must not exceed 2000 characters"),
		),
		validation.Field(&r.DisplayName,
			validation.Length(0, 100).Error("display name must not exceed 100 characters"),
		),
		validation.Field(&r.SourceURL,
			is.URL.Error("source URL must be a valid URL"),
			validation.Length(0, 500).Error("source URL must not exceed 500 characters"),
		),
	)
}

// SubmitRequest is the full submission-form payload: resolve the title
// to a book (or create one) and attach the recommendation in one call.
type SubmitRequest struct {
	Title       string  `json:"title"`
	Author      *string `json:"author"`
	Category    string  `json:"category"`
	Rating      int     `json:"rating"`
	Reason      *string `json:"reason"`
	DisplayName *string `json:"display_name"`
	SourceURL   *string `json:"source_url"`
}

func (r SubmitRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 512).Error("title must be 1-512 characters"),
		),
		validation.Field(&r.Author,
			validation.Length(0, 200).Error("author must not exceed 200 characters"),
		),
		validation.Field(&r.Category,
			validation.Required.Error("category is required"),
			validation.In(bookmodel.CategoryValues()...).Error("unknown category"),
		),
		validation.Field(&r.Rating,
			validation.Required.Error("rating is required"),
			validation.Min(1).Error("rating must be at least 1"),
			validation.Max(5).Error("rating must be at most 5"),
		),
		validation.Field(&r.Reason,
			validation.Length(0, 2000).Error("reason must not exceed 2000 characters"),
		),
		validation.Field(&r.DisplayName,
			validation.Length(0, 100).Error("display name must not exceed 100 characters"),
		),
		validation.Field(&r.SourceURL,
			is.URL.Error("source URL must be a valid URL"),
			validation.Length(0, 500).Error("source URL must not exceed 500 characters"),
		),
	)
}

// AttachRequest extracts the recommendation part of a submission.
func (r SubmitRequest) AttachRequest() AttachRequest {
	return AttachRequest{
		Rating:      r.Rating,
		Reason:      r.Reason,
		DisplayName: r.DisplayName,
		SourceURL:   r.SourceURL,
	}
}

// =====================================================
// RESPONSE DTOs
// =====================================================

type RecommendationResponse struct {
	ID          uuid.UUID `json:"id"`
	BookID      uuid.UUID `json:"book_id"`
	Rating      int       `json:"rating"`
	Reason      *string   `json:"reason"`
	DisplayName *string   `json:"display_name"`
	SourceURL   *string   `json:"source_url"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewRecommendationResponse(rec *Recommendation) RecommendationResponse {
	return RecommendationResponse{
		ID:          rec.ID,
		BookID:      rec.BookID,
		Rating:      rec.Rating,
		Reason:      rec.Reason,
		DisplayName: rec.DisplayName,
		SourceURL:   rec.SourceURL,
		CreatedAt:   rec.CreatedAt,
	}
}

// SubmitResponse returns the resolved book id; the frontend redirects to
// the detail view keyed by it.
type SubmitResponse struct {
	BookID uuid.UUID `json:"book_id"`
}
