package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ViewWindow is how long an identity's view of a listing stays counted before
// a new view increments the counter again.
const ViewWindow = 5 * time.Minute

// ViewTracker is the slice of the view repository the service needs.
type ViewTracker interface {
	RecordView(ctx context.Context, trackingID, listingType string, listingID int64, window time.Duration) (bool, error)
}

// ViewService resolves the tracking identity and counts page views. It is
// strictly best-effort: errors are logged and reported as "not tracked", the
// surrounding page-view request must never fail because of it.
type ViewService struct {
	views ViewTracker
	log   *zap.SugaredLogger
}

func NewViewService(views ViewTracker, log *zap.SugaredLogger) *ViewService {
	return &ViewService{views: views, log: log}
}

// Record counts one view for the caller. Authenticated callers track by user
// id; anonymous visitors by a key derived from their client IP. Returns
// whether the view was counted.
func (s *ViewService) Record(ctx context.Context, userID, clientIP, listingType string, listingID int64) bool {
	trackingID := userID
	if trackingID == "" {
		trackingID = "anon_" + clientIP
	}

	tracked, err := s.views.RecordView(ctx, trackingID, listingType, listingID, ViewWindow)
	if err != nil {
		s.log.Warnw("view tracking failed",
			"listingType", listingType, "listingId", listingID, "error", err)
		return false
	}
	return tracked
}
