package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/d9647/EduDirectory-sub000/internal/errs"
	"github.com/d9647/EduDirectory-sub000/internal/model"
)

// ReviewStore is the slice of the review repository the service needs.
type ReviewStore interface {
	Insert(ctx context.Context, rev *model.Review) error
	ExistsForUser(ctx context.Context, userID, listingType string, listingID int64) (bool, error)
	ListForListing(ctx context.Context, listingType string, listingID int64) ([]model.Review, error)
	GetByID(ctx context.Context, id int64) (*model.Review, error)
	Update(ctx context.Context, rev *model.Review) error
	Delete(ctx context.Context, id int64) error
}

// ProfileStore supplies the reviewer display fields denormalized onto new
// reviews.
type ProfileStore interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// ReviewService enforces the review rules: one review per user per listing,
// edits by the owner only, deletes by the owner or an admin.
type ReviewService struct {
	reviews  ReviewStore
	profiles ProfileStore
}

func NewReviewService(reviews ReviewStore, profiles ProfileStore) *ReviewService {
	return &ReviewService{reviews: reviews, profiles: profiles}
}

// Create inserts a new review after checking the user has not reviewed this
// listing before. The uniqueness rule lives here, not in the database.
func (s *ReviewService) Create(ctx context.Context, userID, listingType string, listingID int64, rating int, title string, content *string) (*model.Review, error) {
	if !model.ValidListingType(listingType) {
		return nil, errs.ErrNotFound
	}

	exists, err := s.reviews.ExistsForUser(ctx, userID, listingType, listingID)
	if err != nil {
		return nil, fmt.Errorf("ReviewService.Create: %w", err)
	}
	if exists {
		return nil, errs.ErrAlreadyReviewed
	}

	rev := &model.Review{
		UserID:      userID,
		ListingType: listingType,
		ListingID:   listingID,
		Rating:      rating,
		Title:       title,
		Content:     content,
	}
	// A missing profile just means no nickname to display.
	if u, err := s.profiles.GetByID(ctx, userID); err == nil {
		rev.ReviewerNickname = u.Nickname
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, fmt.Errorf("ReviewService.Create: %w", err)
	}

	if err := s.reviews.Insert(ctx, rev); err != nil {
		return nil, fmt.Errorf("ReviewService.Create: %w", err)
	}
	return rev, nil
}

// List returns a listing's reviews, newest first.
func (s *ReviewService) List(ctx context.Context, listingType string, listingID int64) ([]model.Review, error) {
	if !model.ValidListingType(listingType) {
		return nil, errs.ErrNotFound
	}
	return s.reviews.ListForListing(ctx, listingType, listingID)
}

// Update rewrites a review. Only the owner may edit.
func (s *ReviewService) Update(ctx context.Context, callerID string, id int64, rating int, title string, content *string) (*model.Review, error) {
	rev, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rev.UserID != callerID {
		return nil, errs.ErrForbidden
	}

	rev.Rating = rating
	rev.Title = title
	rev.Content = content
	if err := s.reviews.Update(ctx, rev); err != nil {
		return nil, fmt.Errorf("ReviewService.Update: %w", err)
	}
	return rev, nil
}

// Delete removes a review. The owner may delete their own; admins may delete
// any.
func (s *ReviewService) Delete(ctx context.Context, callerID string, callerIsAdmin bool, id int64) error {
	rev, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rev.UserID != callerID && !callerIsAdmin {
		return errs.ErrForbidden
	}
	return s.reviews.Delete(ctx, id)
}
