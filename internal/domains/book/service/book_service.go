package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bookrec-backend/internal/config"
	"bookrec-backend/internal/domains/book/index"
	"bookrec-backend/internal/domains/book/model"
	"bookrec-backend/internal/domains/book/repository"
	"bookrec-backend/internal/domains/book/similarity"
	"bookrec-backend/internal/shared/utils"
	"bookrec-backend/pkg/cache"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

const (
	statsKeyPrefix  = "books:stats:"
	listKeyPrefix   = "books:list:"
	listKeyWildcard = "books:list:*"

	maxTitleLength = 512

	// Bounded retry for transient store failures. Validation and
	// not-found outcomes are never retried.
	storeAttempts  = 3
	storeRetryWait = 150 * time.Millisecond
)

type bookService struct {
	bookRepo   repository.BookRepository
	titleIndex *index.TitleIndex
	cache      cache.Cache
	suggestCfg config.SuggestConfig
	statsTTL   time.Duration
}

func NewBookService(
	bookRepo repository.BookRepository,
	titleIndex *index.TitleIndex,
	cacheClient cache.Cache,
	suggestCfg config.SuggestConfig,
	statsTTL time.Duration,
) ServiceInterface {
	return &bookService{
		bookRepo:   bookRepo,
		titleIndex: titleIndex,
		cache:      cacheClient,
		suggestCfg: suggestCfg,
		statsTTL:   statsTTL,
	}
}

// =====================================================
// CANDIDATE RANKER
// =====================================================

func (s *bookService) Suggest(ctx context.Context, query string, limit int) ([]model.SuggestCandidate, error) {
	normalized := utils.NormalizeTitle(query)
	if normalized == "" {
		return []model.SuggestCandidate{}, nil
	}

	if limit < 1 {
		limit = s.suggestCfg.DefaultLimit
	}
	if limit > s.suggestCfg.MaxLimit {
		limit = s.suggestCfg.MaxLimit
	}

	entries, err := s.titleIndex.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read title index: %w", err)
	}

	candidates := make([]model.SuggestCandidate, 0, len(entries))
	for _, e := range entries {
		sim, dist := similarity.ScoreNormalized(normalized, e.Normalized)
		if sim < s.suggestCfg.MinSimilarity {
			continue
		}
		candidates = append(candidates, model.SuggestCandidate{
			BookID:     e.ID,
			Title:      e.Title,
			Author:     e.Author,
			Similarity: sim,
			Distance:   dist,
		})
	}

	// Order: similarity desc, then distance asc, then oldest entry first.
	// The index is loaded in created_at order, so the stable sort keeps
	// the age tie-break without carrying timestamps into the result.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Similarity != candidates[j].Similarity {
			return candidates[i].Similarity > candidates[j].Similarity
		}
		return candidates[i].Distance < candidates[j].Distance
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	// Round for display only after ranking, so near-ties keep their order.
	for i := range candidates {
		candidates[i].Similarity = math.Round(candidates[i].Similarity*100) / 100
	}

	return candidates, nil
}

// =====================================================
// BOOK RESOLVER
// =====================================================

func (s *bookService) ResolveOrCreate(ctx context.Context, title string, author *string, category model.Category) (uuid.UUID, error) {
	normalized := utils.NormalizeTitle(title)
	if normalized == "" {
		return uuid.Nil, model.NewInvalidTitleError("title must not be empty")
	}
	if len([]rune(normalized)) > maxTitleLength {
		return uuid.Nil, model.NewInvalidTitleError("title too long")
	}
	if !category.Valid() {
		return uuid.Nil, model.NewInvalidTitleError(fmt.Sprintf("unknown category %q", category))
	}

	// Step 1: exact normalized-title match reuses the existing book.
	// First submission wins; author/category of the winner stay untouched.
	existing, err := s.getByNormalizedTitle(ctx, normalized)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, model.ErrBookNotFound) {
		return uuid.Nil, model.NewStoreFailureError(err)
	}

	// Step 2: create. Keep the title as typed (trimmed); normalization is
	// a comparison concern, not a storage one.
	now := time.Now()
	book := &model.Book{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(title),
		Author:    author,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.withStoreRetry(ctx, func() error {
		return s.bookRepo.Create(ctx, book)
	})
	if err != nil {
		// Step 3: unique-index conflict means a concurrent submission
		// created the row between our lookup and insert. That is the
		// found branch, not an error.
		if errors.Is(err, model.ErrDuplicateTitle) {
			winner, lookupErr := s.getByNormalizedTitle(ctx, normalized)
			if lookupErr != nil {
				return uuid.Nil, model.NewStoreFailureError(lookupErr)
			}
			return winner.ID, nil
		}
		return uuid.Nil, model.NewStoreFailureError(err)
	}

	s.invalidateListings(ctx)

	// Refresh the suggestion index so the new title shows up for the next
	// keystroke. Best effort; the staleness bound catches up otherwise.
	if refreshErr := s.titleIndex.Refresh(ctx); refreshErr != nil {
		log.Warn().Err(refreshErr).Str("book_id", book.ID.String()).Msg("Index refresh after create failed")
	}

	log.Info().
		Str("book_id", book.ID.String()).
		Str("category", string(category)).
		Msg("Book created")

	return book.ID, nil
}

func (s *bookService) getByNormalizedTitle(ctx context.Context, normalized string) (*model.Book, error) {
	var book *model.Book
	err := s.withStoreRetry(ctx, func() error {
		var repoErr error
		book, repoErr = s.bookRepo.GetByNormalizedTitle(ctx, normalized)
		return repoErr
	})
	return book, err
}

// =====================================================
// AGGREGATE READS
// =====================================================

func (s *bookService) ListBooks(ctx context.Context, req model.ListBooksRequest) ([]model.BookStatsResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cacheKey := listCacheKey(req)
	var cached []model.BookStatsResponse
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return cached, nil
	}

	var category *model.Category
	if req.Category != nil {
		c := model.Category(*req.Category)
		category = &c
	}

	stats, err := s.bookRepo.ListStats(ctx, category, req.Limit)
	if err != nil {
		return nil, model.NewStoreFailureError(err)
	}

	result := make([]model.BookStatsResponse, 0, len(stats))
	for _, row := range stats {
		result = append(result, model.NewBookStatsResponse(row))
	}

	if err := s.cache.Set(ctx, cacheKey, result, s.statsTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to cache book listing")
	}

	return result, nil
}

func (s *bookService) GetBookStats(ctx context.Context, id uuid.UUID) (*model.BookStatsResponse, error) {
	cacheKey := statsKeyPrefix + id.String()
	var cached model.BookStatsResponse
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	stats, err := s.bookRepo.GetStatsByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			return nil, model.NewBookNotFoundError()
		}
		return nil, model.NewStoreFailureError(err)
	}

	resp := model.NewBookStatsResponse(stats)
	if err := s.cache.Set(ctx, cacheKey, resp, s.statsTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to cache book stats")
	}

	return &resp, nil
}

// =====================================================
// HELPERS
// =====================================================

func listCacheKey(req model.ListBooksRequest) string {
	category := "all"
	if req.Category != nil {
		category = *req.Category
	}
	return fmt.Sprintf("%s%s:%d", listKeyPrefix, category, req.Limit)
}

func (s *bookService) invalidateListings(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, listKeyWildcard); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate listing cache")
	}
}

// withStoreRetry retries fn on transient store failures with a linear
// backoff. Domain outcomes (not found, duplicate title) pass through
// immediately.
func (s *bookService) withStoreRetry(ctx context.Context, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= storeAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if errors.Is(lastErr, model.ErrBookNotFound) || errors.Is(lastErr, model.ErrDuplicateTitle) {
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
