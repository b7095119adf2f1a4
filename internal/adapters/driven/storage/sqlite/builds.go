package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/perfecxion/sitesearch/internal/core/domain"
	"github.com/perfecxion/sitesearch/internal/core/ports/driven"
)

// MaxBuildHistory is the number of build records retained.
const MaxBuildHistory = 100

// buildLog implements driven.BuildLog.
type buildLog struct {
	store *Store
}

var _ driven.BuildLog = (*buildLog)(nil)

// Record appends a build attempt and prunes history beyond MaxBuildHistory.
func (b *buildLog) Record(ctx context.Context, record domain.BuildRecord) error {
	_, err := b.store.db.ExecContext(ctx, `
		INSERT INTO index_builds (generation, engine, documents, started_at, duration_ms, error)
		VALUES (?, ?, ?, ?, ?, ?)
	`, nullString(record.Generation), record.Engine, record.Documents,
		record.StartedAt.UTC().Format(time.RFC3339Nano),
		record.Duration.Milliseconds(),
		nullString(record.Error))

	if err != nil {
		return fmt.Errorf("recording build: %w", err)
	}
	return b.prune(ctx, MaxBuildHistory)
}

// Recent returns up to limit records, newest first.
func (b *buildLog) Recent(ctx context.Context, limit int) ([]domain.BuildRecord, error) {
	if limit <= 0 {
		return []domain.BuildRecord{}, nil
	}

	rows, err := b.store.db.QueryContext(ctx, `
		SELECT generation, engine, documents, started_at, duration_ms, error
		FROM index_builds
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying builds: %w", err)
	}
	defer rows.Close()

	records := []domain.BuildRecord{}
	for rows.Next() {
		record, err := scanBuildRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating builds: %w", err)
	}

	return records, nil
}

// prune removes all but the newest keep records.
func (b *buildLog) prune(ctx context.Context, keep int) error {
	_, err := b.store.db.ExecContext(ctx, `
		DELETE FROM index_builds
		WHERE id NOT IN (
			SELECT id FROM index_builds ORDER BY id DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning builds: %w", err)
	}
	return nil
}

// scanBuildRecord scans a build record from *sql.Rows.
func scanBuildRecord(rows *sql.Rows) (*domain.BuildRecord, error) {
	var record domain.BuildRecord
	var generation, errMsg sql.NullString
	var startedAt string
	var durationMS int64

	if err := rows.Scan(&generation, &record.Engine, &record.Documents,
		&startedAt, &durationMS, &errMsg); err != nil {
		return nil, fmt.Errorf("scanning build: %w", err)
	}

	record.Generation = generation.String
	record.Error = errMsg.String
	record.Duration = time.Duration(durationMS) * time.Millisecond
	if t, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
		record.StartedAt = t
	}

	return &record, nil
}
