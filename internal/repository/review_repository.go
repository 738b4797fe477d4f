package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/d9647/EduDirectory-sub000/internal/errs"
	"github.com/d9647/EduDirectory-sub000/internal/model"
)

type ReviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Insert saves a new review and fills in the generated id and timestamps.
// Uniqueness per (user, listing) is the service layer's job; this method does
// not check it.
func (r *ReviewRepository) Insert(ctx context.Context, rev *model.Review) error {
	err := r.db.QueryRowxContext(ctx, `
        INSERT INTO reviews (user_id, listing_type, listing_id, rating, title, content, reviewer_nickname)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`,
		rev.UserID, rev.ListingType, rev.ListingID, rev.Rating, rev.Title, rev.Content, rev.ReviewerNickname,
	).Scan(&rev.ID, &rev.CreatedAt, &rev.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ReviewRepository.Insert: %w", err)
	}
	return nil
}

// ExistsForUser reports whether the user already reviewed the listing.
func (r *ReviewRepository) ExistsForUser(ctx context.Context, userID, listingType string, listingID int64) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(1) FROM reviews WHERE user_id = $1 AND listing_type = $2 AND listing_id = $3",
		userID, listingType, listingID)
	if err != nil {
		return false, fmt.Errorf("ReviewRepository.ExistsForUser: %w", err)
	}
	return count > 0, nil
}

// ListForListing returns the listing's reviews, newest first.
func (r *ReviewRepository) ListForListing(ctx context.Context, listingType string, listingID int64) ([]model.Review, error) {
	reviews := []model.Review{}
	err := r.db.SelectContext(ctx, &reviews, `
        SELECT * FROM reviews
        WHERE listing_type = $1 AND listing_id = $2
        ORDER BY created_at DESC, id DESC`,
		listingType, listingID)
	if err != nil {
		return nil, fmt.Errorf("ReviewRepository.ListForListing: %w", err)
	}
	return reviews, nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	var rev model.Review
	if err := r.db.GetContext(ctx, &rev, "SELECT * FROM reviews WHERE id = $1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("ReviewRepository.GetByID: %w", err)
	}
	return &rev, nil
}

// Update rewrites the review's rating, title and content.
func (r *ReviewRepository) Update(ctx context.Context, rev *model.Review) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE reviews SET rating = $2, title = $3, content = $4, updated_at = now()
        WHERE id = $1`,
		rev.ID, rev.Rating, rev.Title, rev.Content)
	if err != nil {
		return fmt.Errorf("ReviewRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM reviews WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("ReviewRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
