package service

import (
	"context"

	"github.com/google/uuid"

	"bookrec-backend/internal/domains/recommendation/model"
)

// ServiceInterface defines recommendation business operations.
type ServiceInterface interface {
	// Attach records a recommendation against an existing book.
	Attach(ctx context.Context, bookID uuid.UUID, req model.AttachRequest) (*model.RecommendationResponse, error)

	// Submit resolves the submitted title to a book (creating one when
	// needed) and attaches the recommendation to it. Returns the id of
	// the book the recommendation landed on.
	Submit(ctx context.Context, req model.SubmitRequest) (uuid.UUID, error)

	// ListByBook returns a book's recommendations, newest first.
	ListByBook(ctx context.Context, bookID uuid.UUID) ([]model.RecommendationResponse, error)
}
