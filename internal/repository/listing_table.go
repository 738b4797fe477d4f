package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/d9647/EduDirectory-sub000/internal/errs"
)

// ListingStore is the surface the admin layer drives through the :type path
// segment. All six listing repositories implement it.
type ListingStore interface {
	Approve(ctx context.Context, id int64) error
	SetActive(ctx context.Context, id int64, active bool) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error

	Pending(ctx context.Context) (interface{}, error)
	Live(ctx context.Context, limit int) (interface{}, error)
	AdminSearch(ctx context.Context, query string, limit int) (interface{}, error)
}

// listingTable carries the lifecycle operations shared by every listing
// store. The table name and listing type are fixed at construction.
type listingTable struct {
	db          *sqlx.DB
	table       string
	listingType string
	editable    map[string]bool
}

// Approve marks the row publicly visible and stamps approved_at. Approving an
// already-approved row only refreshes the timestamp.
func (t listingTable) Approve(ctx context.Context, id int64) error {
	res, err := t.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET is_approved = TRUE, approved_at = now() WHERE id = $1", t.table), id)
	if err != nil {
		return fmt.Errorf("%s approve: %w", t.table, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// SetActive flips the post-approval visibility toggle without touching
// is_approved.
func (t listingTable) SetActive(ctx context.Context, id int64, active bool) error {
	res, err := t.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET is_active = $2 WHERE id = $1", t.table), id, active)
	if err != nil {
		return fmt.Errorf("%s set active: %w", t.table, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// UpdateFields applies a partial patch of column -> value pairs. Columns are
// checked against the store's whitelist; keys are sorted so the generated SQL
// is deterministic. Lifecycle flags change only when explicitly included.
func (t listingTable) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	cols := make([]string, 0, len(fields))
	for col := range fields {
		if !t.editable[col] {
			return fmt.Errorf("%s update: column %q is not editable", t.table, col)
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)

	set := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols)+1)
	for _, col := range cols {
		args = append(args, fields[col])
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", t.table, strings.Join(set, ", "), len(args))
	res, err := t.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s update: %w", t.table, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete hard-removes the row and purges its dependent reviews, thumbs-up,
// bookmarks and view-tracking rows in the same transaction. Reports are kept
// so moderation history survives the deletion.
func (t listingTable) Delete(ctx context.Context, id int64) error {
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s delete begin: %w", t.table, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", t.table), id)
	if err != nil {
		return fmt.Errorf("%s delete: %w", t.table, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}

	for _, dep := range []string{"reviews", "thumbs_up", "bookmarks", "view_tracking"} {
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf("DELETE FROM %s WHERE listing_type = $1 AND listing_id = $2", dep),
			t.listingType, id); err != nil {
			return fmt.Errorf("%s delete purge %s: %w", t.table, dep, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s delete commit: %w", t.table, err)
	}
	return nil
}
