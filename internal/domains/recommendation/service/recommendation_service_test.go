package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookmodel "bookrec-backend/internal/domains/book/model"
	"bookrec-backend/internal/domains/recommendation/model"
)

// =====================================================
// FAKES
// =====================================================

type fakeRecRepo struct {
	mu        sync.Mutex
	recs      map[uuid.UUID][]*model.Recommendation
	createErr []error // consumed one per Create call
	creates   int
}

func newFakeRecRepo() *fakeRecRepo {
	return &fakeRecRepo{recs: make(map[uuid.UUID][]*model.Recommendation)}
}

func (f *fakeRecRepo) Create(ctx context.Context, rec *model.Recommendation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++

	if len(f.createErr) > 0 {
		err := f.createErr[0]
		f.createErr = f.createErr[1:]
		if err != nil {
			return err
		}
	}

	f.recs[rec.BookID] = append(f.recs[rec.BookID], rec)
	return nil
}

func (f *fakeRecRepo) ListByBook(ctx context.Context, bookID uuid.UUID) ([]*model.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recs[bookID], nil
}

// fakeBookService resolves every title to a fixed book id.
type fakeBookService struct {
	mu         sync.Mutex
	resolveID  uuid.UUID
	resolveErr error
	resolves   int
}

func (f *fakeBookService) Suggest(ctx context.Context, query string, limit int) ([]bookmodel.SuggestCandidate, error) {
	return nil, nil
}

func (f *fakeBookService) ResolveOrCreate(ctx context.Context, title string, author *string, category bookmodel.Category) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resolves++
	if f.resolveErr != nil {
		return uuid.Nil, f.resolveErr
	}
	return f.resolveID, nil
}

func (f *fakeBookService) ListBooks(ctx context.Context, req bookmodel.ListBooksRequest) ([]bookmodel.BookStatsResponse, error) {
	return nil, nil
}

func (f *fakeBookService) GetBookStats(ctx context.Context, id uuid.UUID) (*bookmodel.BookStatsResponse, error) {
	return nil, nil
}

type fakeCache struct {
	mu       sync.Mutex
	deleted  []string
	patterns []string
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, keys...)
	return nil
}

func (f *fakeCache) DeletePattern(ctx context.Context, pattern string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patterns = append(f.patterns, pattern)
	return nil
}

func (f *fakeCache) Ping(ctx context.Context) error { return nil }

func newTestService(repo *fakeRecRepo, books *fakeBookService) (ServiceInterface, *fakeCache) {
	cacheClient := &fakeCache{}
	return NewRecommendationService(repo, books, cacheClient), cacheClient
}

// =====================================================
// ATTACH
// =====================================================

func TestAttachRejectsOutOfRangeRating(t *testing.T) {
	repo := newFakeRecRepo()
	svc, _ := newTestService(repo, &fakeBookService{})

	for _, rating := range []int{0, -1, 6, 100} {
		_, err := svc.Attach(context.Background(), uuid.New(), model.AttachRequest{Rating: rating})

		var recErr *model.RecommendationError
		require.ErrorAs(t, err, &recErr, "rating %d", rating)
		assert.Equal(t, model.ErrCodeInvalidRating, recErr.Code)
	}
	assert.Equal(t, 0, repo.creates)
}

func TestAttachAcceptsBoundaryRatings(t *testing.T) {
	repo := newFakeRecRepo()
	svc, _ := newTestService(repo, &fakeBookService{})
	bookID := uuid.New()

	for _, rating := range []int{1, 5} {
		rec, err := svc.Attach(context.Background(), bookID, model.AttachRequest{Rating: rating})

		require.NoError(t, err)
		assert.Equal(t, rating, rec.Rating)
		assert.Equal(t, bookID, rec.BookID)
	}
}

func TestAttachMissingBookReturnsNotFound(t *testing.T) {
	repo := newFakeRecRepo()
	repo.createErr = []error{model.ErrBookMissing}
	svc, _ := newTestService(repo, &fakeBookService{})

	_, err := svc.Attach(context.Background(), uuid.New(), model.AttachRequest{Rating: 4})

	var recErr *model.RecommendationError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, model.ErrCodeBookNotFound, recErr.Code)
	assert.Equal(t, 1, repo.creates, "a missing book is a domain outcome, not a retryable failure")
}

func TestAttachInvalidatesAggregateCaches(t *testing.T) {
	repo := newFakeRecRepo()
	svc, cacheClient := newTestService(repo, &fakeBookService{})
	bookID := uuid.New()

	_, err := svc.Attach(context.Background(), bookID, model.AttachRequest{Rating: 5})

	require.NoError(t, err)
	assert.Contains(t, cacheClient.deleted, "books:stats:"+bookID.String())
	assert.Contains(t, cacheClient.patterns, "books:list:*")
}

func TestAttachRetriesTransientFailures(t *testing.T) {
	repo := newFakeRecRepo()
	repo.createErr = []error{errors.New("connection reset"), nil}
	svc, _ := newTestService(repo, &fakeBookService{})

	_, err := svc.Attach(context.Background(), uuid.New(), model.AttachRequest{Rating: 3})

	require.NoError(t, err)
	assert.Equal(t, 2, repo.creates)
}

func TestAttachDuplicatePayloadsCreateSeparateRows(t *testing.T) {
	repo := newFakeRecRepo()
	svc, _ := newTestService(repo, &fakeBookService{})
	bookID := uuid.New()

	req := model.AttachRequest{Rating: 4}
	first, err := svc.Attach(context.Background(), bookID, req)
	require.NoError(t, err)
	second, err := svc.Attach(context.Background(), bookID, req)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	recs, err := svc.ListByBook(context.Background(), bookID)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

// =====================================================
// SUBMIT
// =====================================================

func validSubmit() model.SubmitRequest {
	return model.SubmitRequest{
		Title:    "The Intelligent Investor",
		Category: string(bookmodel.CategoryStocksIndexFunds),
		Rating:   5,
	}
}

func TestSubmitResolvesAndAttaches(t *testing.T) {
	repo := newFakeRecRepo()
	books := &fakeBookService{resolveID: uuid.New()}
	svc, _ := newTestService(repo, books)

	bookID, err := svc.Submit(context.Background(), validSubmit())

	require.NoError(t, err)
	assert.Equal(t, books.resolveID, bookID)
	assert.Equal(t, 1, books.resolves)

	recs, err := svc.ListByBook(context.Background(), bookID)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 5, recs[0].Rating)
}

func TestSubmitRejectsInvalidPayloads(t *testing.T) {
	repo := newFakeRecRepo()
	books := &fakeBookService{resolveID: uuid.New()}
	svc, _ := newTestService(repo, books)

	tests := []struct {
		name   string
		mutate func(*model.SubmitRequest)
	}{
		{"missing title", func(r *model.SubmitRequest) { r.Title = "" }},
		{"unknown category", func(r *model.SubmitRequest) { r.Category = "cooking" }},
		{"rating too low", func(r *model.SubmitRequest) { r.Rating = 0 }},
		{"rating too high", func(r *model.SubmitRequest) { r.Rating = 6 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSubmit()
			tt.mutate(&req)

			_, err := svc.Submit(context.Background(), req)

			assert.Error(t, err)
		})
	}
	assert.Equal(t, 0, books.resolves)
	assert.Equal(t, 0, repo.creates)
}

func TestSubmitPropagatesResolveErrors(t *testing.T) {
	repo := newFakeRecRepo()
	books := &fakeBookService{resolveErr: bookmodel.NewStoreFailureError(errors.New("db down"))}
	svc, _ := newTestService(repo, books)

	_, err := svc.Submit(context.Background(), validSubmit())

	var bookErr *bookmodel.BookError
	require.ErrorAs(t, err, &bookErr)
	assert.Equal(t, bookmodel.ErrCodeStoreFailure, bookErr.Code)
	assert.Equal(t, 0, repo.creates)
}

func TestSubmitResolvedBookVanishingIsConsistencyError(t *testing.T) {
	repo := newFakeRecRepo()
	repo.createErr = []error{model.ErrBookMissing}
	books := &fakeBookService{resolveID: uuid.New()}
	svc, _ := newTestService(repo, books)

	_, err := svc.Submit(context.Background(), validSubmit())

	var recErr *model.RecommendationError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, model.ErrCodeConsistency, recErr.Code)
}

func TestSubmitConcurrentSameTitleAllLandOnOneBook(t *testing.T) {
	repo := newFakeRecRepo()
	books := &fakeBookService{resolveID: uuid.New()}
	svc, _ := newTestService(repo, books)

	const goroutines = 8
	var wg sync.WaitGroup
	errs := make([]error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Submit(context.Background(), validSubmit())
		}(i)
	}
	wg.Wait()

	for i := 0; i < goroutines; i++ {
		require.NoError(t, errs[i])
	}

	recs, err := svc.ListByBook(context.Background(), books.resolveID)
	require.NoError(t, err)
	assert.Len(t, recs, goroutines)
}
