package model

import "time"

// Review is a user's review of a listing. At most one review may exist per
// (user, listing type, listing id); the create path enforces this before
// inserting, there is no database constraint backing it.
type Review struct {
	ID          int64     `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"userId"`
	ListingType string    `db:"listing_type" json:"listingType"`
	ListingID   int64     `db:"listing_id" json:"listingId"`
	Rating      int       `db:"rating" json:"rating"`
	Title       string    `db:"title" json:"title"`
	Content     *string   `db:"content" json:"content,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`

	// Denormalized display fields, copied from the reviewer's profile at
	// create time and kept in sync by the profile update fan-out.
	ReviewerNickname *string `db:"reviewer_nickname" json:"reviewerNickname,omitempty"`
}

// ThumbsUp and Bookmark are toggle entities: the row's existence is the "on"
// state for a (user, listing) pair, absence is "off".
type ThumbsUp struct {
	ID          int64     `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"userId"`
	ListingType string    `db:"listing_type" json:"listingType"`
	ListingID   int64     `db:"listing_id" json:"listingId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

type Bookmark struct {
	ID          int64     `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"userId"`
	ListingType string    `db:"listing_type" json:"listingType"`
	ListingID   int64     `db:"listing_id" json:"listingId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// Report is a moderation flag raised by a user against a listing or a review.
// Reports are append-only; an admin resolves one by flipping IsResolved, there
// is no unresolve.
type Report struct {
	ID             int64     `db:"id" json:"id"`
	ReporterUserID string    `db:"reporter_user_id" json:"reporterUserId"`
	ReportType     string    `db:"report_type" json:"reportType"`
	ItemType       string    `db:"item_type" json:"itemType"` // a listing type slug, or "review"
	ItemID         int64     `db:"item_id" json:"itemId"`
	Reason         string    `db:"reason" json:"reason"`
	Description    *string   `db:"description" json:"description,omitempty"`
	IsResolved     bool      `db:"is_resolved" json:"isResolved"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

// ViewTracking rate-limits view counting: one row per (tracking identity,
// listing type, listing id), holding the last counted view time. The tracking
// identity is a user id, or "anon_<ip>" for anonymous visitors.
type ViewTracking struct {
	TrackingID   string    `db:"tracking_id" json:"trackingId"`
	ListingType  string    `db:"listing_type" json:"listingType"`
	ListingID    int64     `db:"listing_id" json:"listingId"`
	LastViewedAt time.Time `db:"last_viewed_at" json:"lastViewedAt"`
}
