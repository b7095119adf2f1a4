package driven

import (
	"context"

	"github.com/perfecxion/sitesearch/internal/core/domain"
)

// BuildLog records index build attempts.
type BuildLog interface {
	// Record appends a build attempt.
	Record(ctx context.Context, record domain.BuildRecord) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.BuildRecord, error)
}
