package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// ViewRepository rate-limits view counting. The tracking upsert and the
// counter increment run in one transaction, and the upsert's timestamp guard
// makes "at most one increment per identity per window" hold even under
// concurrent requests: only one of two racing transactions can affect the
// tracking row inside the window.
type ViewRepository struct {
	db *sqlx.DB
}

func NewViewRepository(db *sqlx.DB) *ViewRepository {
	return &ViewRepository{db: db}
}

// RecordView counts one view for (trackingID, listingType, listingID) unless
// the same identity was already counted within the window. It returns whether
// the view was counted.
func (r *ViewRepository) RecordView(ctx context.Context, trackingID, listingType string, listingID int64, window time.Duration) (bool, error) {
	table, ok := TableFor(listingType)
	if !ok {
		return false, fmt.Errorf("ViewRepository.RecordView: unknown listing type %q", listingType)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("ViewRepository.RecordView begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
        INSERT INTO view_tracking (tracking_id, listing_type, listing_id, last_viewed_at)
        VALUES ($1, $2, $3, now())
        ON CONFLICT (tracking_id, listing_type, listing_id)
        DO UPDATE SET last_viewed_at = now()
        WHERE view_tracking.last_viewed_at <= now() - make_interval(secs => $4)`,
		trackingID, listingType, listingID, window.Seconds())
	if err != nil {
		return false, fmt.Errorf("ViewRepository.RecordView upsert: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ViewRepository.RecordView rows: %w", err)
	}
	if n == 0 {
		// Counted recently; nothing to do.
		return false, nil
	}

	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET view_count = view_count + 1 WHERE id = $1", table), listingID); err != nil {
		return false, fmt.Errorf("ViewRepository.RecordView increment: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("ViewRepository.RecordView commit: %w", err)
	}
	return true, nil
}
