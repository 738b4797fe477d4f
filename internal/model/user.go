package model

import "time"

// User is the local profile row for an authenticated account. The primary key
// is the auth provider's subject claim. Nickname and name are the source of
// truth for the denormalized contributor/reviewer display fields on listings
// and reviews.
type User struct {
	ID        string    `db:"id" json:"id"`
	Email     *string   `db:"email" json:"email,omitempty"`
	Nickname  *string   `db:"nickname" json:"nickname,omitempty"`
	FirstName *string   `db:"first_name" json:"firstName,omitempty"`
	LastName  *string   `db:"last_name" json:"lastName,omitempty"`
	IsAdmin   bool      `db:"is_admin" json:"isAdmin"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
