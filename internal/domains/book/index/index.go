// Package index owns the in-memory copy of catalog titles that the
// suggestion path scans on every keystroke. It is an explicit dependency
// with a defined staleness bound, not an ambient singleton: the container
// builds one, starts its refresh loop, and injects it into the book
// service.
package index

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"bookrec-backend/internal/domains/book/model"
)

// Source supplies the current title rows. Implemented by the book
// repository.
type Source interface {
	TitleEntries(ctx context.Context) ([]model.TitleEntry, error)
}

type TitleIndex struct {
	source       Source
	maxAge       time.Duration
	refreshEvery time.Duration

	mu          sync.RWMutex
	entries     []model.TitleEntry
	refreshedAt time.Time

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewTitleIndex(source Source, maxAge, refreshEvery time.Duration) *TitleIndex {
	return &TitleIndex{
		source:       source,
		maxAge:       maxAge,
		refreshEvery: refreshEvery,
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
}

// Start warms the index and launches the background refresh loop.
func (ix *TitleIndex) Start(ctx context.Context) error {
	if err := ix.Refresh(ctx); err != nil {
		return fmt.Errorf("initial index refresh failed: %w", err)
	}

	go ix.refreshLoop()
	return nil
}

// Stop terminates the refresh loop and waits for it to exit.
func (ix *TitleIndex) Stop() {
	ix.stopOnce.Do(func() {
		close(ix.stop)
	})
	<-ix.done
}

func (ix *TitleIndex) refreshLoop() {
	defer close(ix.done)

	ticker := time.NewTicker(ix.refreshEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := ix.Refresh(ctx); err != nil {
				// A stale snapshot keeps serving; the staleness bound in
				// Snapshot decides when that stops being acceptable.
				log.Warn().Err(err).Msg("Title index refresh failed")
			}
			cancel()
		case <-ix.stop:
			return
		}
	}
}

// Refresh replaces the snapshot with fresh rows from the source.
// Called by the loop, by Snapshot when stale, and by the resolver right
// after creating a book so new titles suggest immediately.
func (ix *TitleIndex) Refresh(ctx context.Context) error {
	entries, err := ix.source.TitleEntries(ctx)
	if err != nil {
		return err
	}

	ix.mu.Lock()
	ix.entries = entries
	ix.refreshedAt = time.Now()
	ix.mu.Unlock()

	return nil
}

// Snapshot returns the current entries, refreshing first if the snapshot
// is older than the staleness bound. The returned slice is shared and
// must not be mutated by callers.
func (ix *TitleIndex) Snapshot(ctx context.Context) ([]model.TitleEntry, error) {
	ix.mu.RLock()
	entries, refreshedAt := ix.entries, ix.refreshedAt
	ix.mu.RUnlock()

	if time.Since(refreshedAt) <= ix.maxAge {
		return entries, nil
	}

	if err := ix.Refresh(ctx); err != nil {
		if refreshedAt.IsZero() {
			// Never populated - nothing usable to fall back on.
			return nil, err
		}
		log.Warn().Err(err).Time("refreshed_at", refreshedAt).Msg("Serving stale title index")
		return entries, nil
	}

	ix.mu.RLock()
	entries = ix.entries
	ix.mu.RUnlock()
	return entries, nil
}
