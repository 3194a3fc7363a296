package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	bookmodel "bookrec-backend/internal/domains/book/model"
	bookservice "bookrec-backend/internal/domains/book/service"
	"bookrec-backend/internal/domains/recommendation/model"
	"bookrec-backend/internal/domains/recommendation/repository"
	"bookrec-backend/pkg/cache"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

const (
	statsKeyPrefix  = "books:stats:"
	listKeyWildcard = "books:list:*"

	storeAttempts  = 3
	storeRetryWait = 150 * time.Millisecond
)

type recommendationService struct {
	recRepo     repository.RecommendationRepository
	bookService bookservice.ServiceInterface
	cache       cache.Cache
}

func NewRecommendationService(
	recRepo repository.RecommendationRepository,
	bookService bookservice.ServiceInterface,
	cacheClient cache.Cache,
) ServiceInterface {
	return &recommendationService{
		recRepo:     recRepo,
		bookService: bookService,
		cache:       cacheClient,
	}
}

// =====================================================
// ATTACH
// =====================================================

func (s *recommendationService) Attach(ctx context.Context, bookID uuid.UUID, req model.AttachRequest) (*model.RecommendationResponse, error) {
	if err := req.Validate(); err != nil {
		if req.Rating < 1 || req.Rating > 5 {
			return nil, model.NewInvalidRatingError(req.Rating)
		}
		return nil, err
	}

	rec := &model.Recommendation{
		ID:          uuid.New(),
		BookID:      bookID,
		Rating:      req.Rating,
		Reason:      req.Reason,
		DisplayName: req.DisplayName,
		SourceURL:   req.SourceURL,
		CreatedAt:   time.Now(),
	}

	err := s.withStoreRetry(ctx, func() error {
		return s.recRepo.Create(ctx, rec)
	})
	if err != nil {
		if errors.Is(err, model.ErrBookMissing) {
			return nil, model.NewBookNotFoundError()
		}
		return nil, model.NewStoreFailureError(err)
	}

	s.invalidateAggregates(ctx, bookID)

	log.Info().
		Str("book_id", bookID.String()).
		Int("rating", rec.Rating).
		Msg("Recommendation recorded")

	resp := model.NewRecommendationResponse(rec)
	return &resp, nil
}

// =====================================================
// SUBMIT (resolve + attach)
// =====================================================

func (s *recommendationService) Submit(ctx context.Context, req model.SubmitRequest) (uuid.UUID, error) {
	if err := req.Validate(); err != nil {
		if req.Rating < 1 || req.Rating > 5 {
			return uuid.Nil, model.NewInvalidRatingError(req.Rating)
		}
		return uuid.Nil, err
	}

	bookID, err := s.bookService.ResolveOrCreate(ctx, req.Title, req.Author, bookmodel.Category(req.Category))
	if err != nil {
		return uuid.Nil, err
	}

	if _, err := s.Attach(ctx, bookID, req.AttachRequest()); err != nil {
		// The resolver just returned this id; the foreign key firing now
		// means the catalog contradicted itself.
		var recErr *model.RecommendationError
		if errors.As(err, &recErr) && recErr.Code == model.ErrCodeBookNotFound {
			log.Error().
				Str("book_id", bookID.String()).
				Msg("Resolved book vanished before recommendation insert")
			return uuid.Nil, model.NewConsistencyError(err)
		}
		// The book row stays; a failed attach must not undo the resolve
		// another submission may already depend on.
		return uuid.Nil, err
	}

	return bookID, nil
}

// =====================================================
// LIST BY BOOK
// =====================================================

func (s *recommendationService) ListByBook(ctx context.Context, bookID uuid.UUID) ([]model.RecommendationResponse, error) {
	recs, err := s.recRepo.ListByBook(ctx, bookID)
	if err != nil {
		return nil, model.NewStoreFailureError(err)
	}

	result := make([]model.RecommendationResponse, 0, len(recs))
	for _, rec := range recs {
		result = append(result, model.NewRecommendationResponse(rec))
	}

	return result, nil
}

// =====================================================
// HELPERS
// =====================================================

func (s *recommendationService) invalidateAggregates(ctx context.Context, bookID uuid.UUID) {
	if err := s.cache.Delete(ctx, statsKeyPrefix+bookID.String()); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate stats cache")
	}
	if err := s.cache.DeletePattern(ctx, listKeyWildcard); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate listing cache")
	}
}

func (s *recommendationService) withStoreRetry(ctx context.Context, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= storeAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if errors.Is(lastErr, model.ErrBookMissing) {
			return lastErr
		}
		if attempt == storeAttempts {
			break
		}

		select {
		case <-time.After(storeRetryWait * time.Duration(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return lastErr
}
