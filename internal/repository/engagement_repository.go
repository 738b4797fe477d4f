package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/d9647/EduDirectory-sub000/internal/model"
)

// EngagementRepository owns the two toggle tables, thumbs_up and bookmarks.
// A row's existence is the "on" state; toggling deletes the row when present
// and inserts it when absent.
type EngagementRepository struct {
	db *sqlx.DB
}

func NewEngagementRepository(db *sqlx.DB) *EngagementRepository {
	return &EngagementRepository{db: db}
}

// ToggleThumbsUp flips the user's thumbs-up for a listing and returns the
// resulting state (true = now on).
func (r *EngagementRepository) ToggleThumbsUp(ctx context.Context, userID, listingType string, listingID int64) (bool, error) {
	on, err := r.toggle(ctx, "thumbs_up", userID, listingType, listingID)
	if err != nil {
		return false, fmt.Errorf("EngagementRepository.ToggleThumbsUp: %w", err)
	}
	return on, nil
}

// ToggleBookmark flips the user's bookmark for a listing and returns the
// resulting state (true = now on).
func (r *EngagementRepository) ToggleBookmark(ctx context.Context, userID, listingType string, listingID int64) (bool, error) {
	on, err := r.toggle(ctx, "bookmarks", userID, listingType, listingID)
	if err != nil {
		return false, fmt.Errorf("EngagementRepository.ToggleBookmark: %w", err)
	}
	return on, nil
}

// toggle deletes the composite-key row if present, else inserts it. The
// delete doubles as the presence check, so each branch is a single statement.
func (r *EngagementRepository) toggle(ctx context.Context, table, userID, listingType string, listingID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE user_id = $1 AND listing_type = $2 AND listing_id = $3", table),
		userID, listingType, listingID)
	if err != nil {
		return false, err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return false, nil
	}
	_, err = r.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (user_id, listing_type, listing_id) VALUES ($1, $2, $3)
                     ON CONFLICT (user_id, listing_type, listing_id) DO NOTHING`, table),
		userID, listingType, listingID)
	if err != nil {
		return false, err
	}
	return true, nil
}

// HasThumbsUp reports the user's current thumbs-up state for a listing.
func (r *EngagementRepository) HasThumbsUp(ctx context.Context, userID, listingType string, listingID int64) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(1) FROM thumbs_up WHERE user_id = $1 AND listing_type = $2 AND listing_id = $3",
		userID, listingType, listingID)
	if err != nil {
		return false, fmt.Errorf("EngagementRepository.HasThumbsUp: %w", err)
	}
	return count > 0, nil
}

// ListBookmarks returns the user's bookmarks, newest first.
func (r *EngagementRepository) ListBookmarks(ctx context.Context, userID string) ([]model.Bookmark, error) {
	bookmarks := []model.Bookmark{}
	err := r.db.SelectContext(ctx, &bookmarks,
		"SELECT * FROM bookmarks WHERE user_id = $1 ORDER BY created_at DESC, id DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("EngagementRepository.ListBookmarks: %w", err)
	}
	return bookmarks, nil
}
