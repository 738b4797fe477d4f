package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/d9647/EduDirectory-sub000/internal/errs"
	"github.com/d9647/EduDirectory-sub000/internal/model"
)

type fakeReviewStore struct {
	nextID  int64
	reviews map[int64]*model.Review
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{reviews: map[int64]*model.Review{}}
}

func (f *fakeReviewStore) Insert(_ context.Context, rev *model.Review) error {
	f.nextID++
	rev.ID = f.nextID
	cp := *rev
	f.reviews[rev.ID] = &cp
	return nil
}

func (f *fakeReviewStore) ExistsForUser(_ context.Context, userID, listingType string, listingID int64) (bool, error) {
	for _, r := range f.reviews {
		if r.UserID == userID && r.ListingType == listingType && r.ListingID == listingID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReviewStore) ListForListing(_ context.Context, listingType string, listingID int64) ([]model.Review, error) {
	var out []model.Review
	for _, r := range f.reviews {
		if r.ListingType == listingType && r.ListingID == listingID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReviewStore) GetByID(_ context.Context, id int64) (*model.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReviewStore) Update(_ context.Context, rev *model.Review) error {
	if _, ok := f.reviews[rev.ID]; !ok {
		return errs.ErrNotFound
	}
	cp := *rev
	f.reviews[rev.ID] = &cp
	return nil
}

func (f *fakeReviewStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.reviews[id]; !ok {
		return errs.ErrNotFound
	}
	delete(f.reviews, id)
	return nil
}

type fakeProfileStore struct {
	users map[string]*model.User
}

func (f *fakeProfileStore) GetByID(_ context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return u, nil
}

func strptr(s string) *string { return &s }

func newTestReviewService(store *fakeReviewStore, users map[string]*model.User) *ReviewService {
	return NewReviewService(store, &fakeProfileStore{users: users})
}

func TestReviewCreateOncePerUser(t *testing.T) {
	store := newFakeReviewStore()
	svc := newTestReviewService(store, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", model.TypeJobs, 7, 5, "Great posting", nil)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "user-1", model.TypeJobs, 7, 3, "Changed my mind", nil)
	assert.ErrorIs(t, err, errs.ErrAlreadyReviewed)

	// A different user reviewing the same listing is fine, as is the same
	// user reviewing a different listing.
	_, err = svc.Create(ctx, "user-2", model.TypeJobs, 7, 4, "Decent", nil)
	assert.NoError(t, err)
	_, err = svc.Create(ctx, "user-1", model.TypeJobs, 8, 4, "Another one", nil)
	assert.NoError(t, err)
}

func TestReviewCreateUnknownListingType(t *testing.T) {
	svc := newTestReviewService(newFakeReviewStore(), nil)

	_, err := svc.Create(context.Background(), "user-1", "podcasts", 1, 5, "nope", nil)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestReviewCreateCopiesNickname(t *testing.T) {
	store := newFakeReviewStore()
	users := map[string]*model.User{
		"user-1": {ID: "user-1", Nickname: strptr("mathmom")},
	}
	svc := newTestReviewService(store, users)

	rev, err := svc.Create(context.Background(), "user-1", model.TypeTutoringProviders, 3, 5, "Wonderful", nil)
	require.NoError(t, err)
	require.NotNil(t, rev.ReviewerNickname)
	assert.Equal(t, "mathmom", *rev.ReviewerNickname)

	// No stored profile: the review is still created, just without a nickname.
	rev2, err := svc.Create(context.Background(), "user-2", model.TypeTutoringProviders, 3, 4, "Good", nil)
	require.NoError(t, err)
	assert.Nil(t, rev2.ReviewerNickname)
}

func TestReviewUpdateOwnerOnly(t *testing.T) {
	store := newFakeReviewStore()
	svc := newTestReviewService(store, nil)
	ctx := context.Background()

	rev, err := svc.Create(ctx, "user-1", model.TypeSummerCamps, 2, 4, "Fun camp", nil)
	require.NoError(t, err)

	_, err = svc.Update(ctx, "user-2", rev.ID, 1, "Hijacked", nil)
	assert.ErrorIs(t, err, errs.ErrForbidden)

	updated, err := svc.Update(ctx, "user-1", rev.ID, 5, "Even better", strptr("second summer"))
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "Even better", updated.Title)
}

func TestReviewDeleteOwnerOrAdmin(t *testing.T) {
	store := newFakeReviewStore()
	svc := newTestReviewService(store, nil)
	ctx := context.Background()

	rev, err := svc.Create(ctx, "user-1", model.TypeEvents, 11, 2, "Crowded", nil)
	require.NoError(t, err)

	err = svc.Delete(ctx, "user-2", false, rev.ID)
	assert.ErrorIs(t, err, errs.ErrForbidden)

	err = svc.Delete(ctx, "user-2", true, rev.ID)
	assert.NoError(t, err)

	err = svc.Delete(ctx, "user-1", false, rev.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

type fakeViewTracker struct {
	lastTrackingID string
	counted        bool
	err            error
}

func (f *fakeViewTracker) RecordView(_ context.Context, trackingID, _ string, _ int64, _ time.Duration) (bool, error) {
	f.lastTrackingID = trackingID
	return f.counted, f.err
}

func TestViewServiceTrackingIdentity(t *testing.T) {
	tracker := &fakeViewTracker{counted: true}
	svc := NewViewService(tracker, zap.NewNop().Sugar())
	ctx := context.Background()

	assert.True(t, svc.Record(ctx, "user-1", "10.0.0.9", model.TypeJobs, 1))
	assert.Equal(t, "user-1", tracker.lastTrackingID)

	assert.True(t, svc.Record(ctx, "", "10.0.0.9", model.TypeJobs, 1))
	assert.Equal(t, "anon_10.0.0.9", tracker.lastTrackingID)
}

func TestViewServiceBestEffort(t *testing.T) {
	tracker := &fakeViewTracker{err: errors.New("db down")}
	svc := NewViewService(tracker, zap.NewNop().Sugar())

	assert.False(t, svc.Record(context.Background(), "user-1", "", model.TypeJobs, 1))
}
