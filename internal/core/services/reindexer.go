package services

import (
	"context"
	"fmt"

	"github.com/perfecxion/sitesearch/internal/core/domain"
	"github.com/perfecxion/sitesearch/internal/core/ports/driven"
	"github.com/perfecxion/sitesearch/internal/core/ports/driving"
	"github.com/perfecxion/sitesearch/internal/logger"
)

// Reindexer rebuilds the index whenever watched content changes.
type Reindexer struct {
	index   driving.IndexService
	watcher driven.ContentWatcher

	// onRebuild is called after every rebuild attempt.
	onRebuild func(domain.IndexStats, error)
}

// NewReindexer creates a reindexer.
func NewReindexer(index driving.IndexService, watcher driven.ContentWatcher) *Reindexer {
	return &Reindexer{index: index, watcher: watcher}
}

// OnRebuild registers a callback invoked after each rebuild attempt.
func (r *Reindexer) OnRebuild(fn func(domain.IndexStats, error)) {
	r.onRebuild = fn
}

// Run blocks until ctx is cancelled or the watcher stops.
// A failed rebuild is logged and the previous index stays active.
func (r *Reindexer) Run(ctx context.Context) error {
	changes, err := r.watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	logger.Info("Watching content for changes")
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			stats, err := r.index.Rebuild(ctx)
			if err != nil {
				logger.Error("Reindex failed: %v", err)
			} else {
				logger.Info("Reindexed %d documents (%s)", stats.Documents, stats.Generation)
			}
			if r.onRebuild != nil {
				r.onRebuild(stats, err)
			}
		}
	}
}
