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

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := r.db.GetContext(ctx, &u, "SELECT * FROM users WHERE id = $1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("UserRepository.GetByID: %w", err)
	}
	return &u, nil
}

// UpsertProfile inserts or updates the user's profile and synchronously fans
// the new display fields out to the denormalized contributor columns on all
// six listing tables and to reviewer_nickname on reviews, all in one
// transaction. The fan-out is what keeps listing displays join-free.
func (r *UserRepository) UpsertProfile(ctx context.Context, u *model.User) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("UserRepository.UpsertProfile begin: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowxContext(ctx, `
        INSERT INTO users (id, email, nickname, first_name, last_name)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (id)
        DO UPDATE SET email      = COALESCE(EXCLUDED.email, users.email),
                      nickname   = EXCLUDED.nickname,
                      first_name = EXCLUDED.first_name,
                      last_name  = EXCLUDED.last_name,
                      updated_at = now()
        RETURNING id, email, nickname, first_name, last_name, is_admin, created_at, updated_at`,
		u.ID, u.Email, u.Nickname, u.FirstName, u.LastName,
	).Scan(&u.ID, &u.Email, &u.Nickname, &u.FirstName, &u.LastName, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("UserRepository.UpsertProfile upsert: %w", err)
	}

	for _, table := range listingTables {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`
            UPDATE %s SET contributor_nickname = $2,
                          contributor_first_name = $3,
                          contributor_last_name = $4
            WHERE user_id = $1`, table),
			u.ID, u.Nickname, u.FirstName, u.LastName); err != nil {
			return fmt.Errorf("UserRepository.UpsertProfile fan-out %s: %w", table, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE reviews SET reviewer_nickname = $2 WHERE user_id = $1",
		u.ID, u.Nickname); err != nil {
		return fmt.Errorf("UserRepository.UpsertProfile fan-out reviews: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("UserRepository.UpsertProfile commit: %w", err)
	}
	return nil
}
