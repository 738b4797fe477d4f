package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/d9647/EduDirectory-sub000/internal/errs"
	"github.com/d9647/EduDirectory-sub000/internal/model"
)

type EventRepository struct {
	listingTable
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{listingTable{
		db:          db,
		table:       "events",
		listingType: model.TypeEvents,
		editable: columnSet(
			"title", "description", "categories", "venue", "city", "state",
			"starts_at", "ends_at", "is_free", "website", "photo_url",
			"is_approved", "is_active",
		),
	}}
}

var eventSortColumns = map[string]string{
	"title":       "title",
	"submittedAt": "submitted_at",
	"viewCount":   "view_count",
	"thumbsUp":    "thumbs_up_count",
	"rating":      "average_rating",
	"startsAt":    "starts_at",
}

type EventFilter struct {
	Search      string
	Categories  []string
	City        string
	State       string
	IsFree      *bool
	StartsAfter *time.Time
	SortBy      string
	SortOrder   string
	Limit       int
	Offset      int
}

func (r *EventRepository) List(ctx context.Context, f EventFilter) ([]model.Event, int, error) {
	where := "WHERE is_approved AND is_active"
	args := []interface{}{}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(" AND (title ILIKE $%[1]d OR description ILIKE $%[1]d)", len(args))
	}
	if len(f.Categories) > 0 {
		args = append(args, pq.Array(f.Categories))
		where += fmt.Sprintf(" AND categories && $%d", len(args))
	}
	if f.City != "" {
		args = append(args, "%"+f.City+"%")
		where += fmt.Sprintf(" AND city ILIKE $%d", len(args))
	}
	if f.State != "" {
		args = append(args, f.State)
		where += fmt.Sprintf(" AND state = $%d", len(args))
	}
	if f.IsFree != nil {
		args = append(args, *f.IsFree)
		where += fmt.Sprintf(" AND is_free = $%d", len(args))
	}
	if f.StartsAfter != nil {
		args = append(args, *f.StartsAfter)
		where += fmt.Sprintf(" AND starts_at >= $%d", len(args))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM events "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("EventRepository.List count: %w", err)
	}

	query := "SELECT events.*, " + aggregateColumns(r.table, r.listingType) +
		" FROM events " + where +
		orderClause(eventSortColumns, f.SortBy, f.SortOrder) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	items := []model.Event{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("EventRepository.List: %w", err)
	}
	return items, total, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	query := "SELECT events.*, " + aggregateColumns(r.table, r.listingType) +
		" FROM events WHERE id = $1"
	var e model.Event
	if err := r.db.GetContext(ctx, &e, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("EventRepository.GetByID: %w", err)
	}
	return &e, nil
}

func (r *EventRepository) Create(ctx context.Context, e *model.Event) error {
	e.IsApproved = false
	e.IsActive = true
	e.SubmittedAt = time.Now().UTC()

	rows, err := sqlx.NamedQueryContext(ctx, r.db, `
        INSERT INTO events
            (user_id, is_approved, is_active, submitted_at,
             contributor_nickname, contributor_first_name, contributor_last_name,
             title, description, categories, venue, city, state,
             starts_at, ends_at, is_free, website, photo_url)
        VALUES
            (:user_id, :is_approved, :is_active, :submitted_at,
             :contributor_nickname, :contributor_first_name, :contributor_last_name,
             :title, :description, :categories, :venue, :city, :state,
             :starts_at, :ends_at, :is_free, :website, :photo_url)
        RETURNING id`, e)
	if err != nil {
		return fmt.Errorf("EventRepository.Create: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&e.ID); err != nil {
			return fmt.Errorf("EventRepository.Create scan: %w", err)
		}
	}
	return rows.Err()
}

func (r *EventRepository) Pending(ctx context.Context) (interface{}, error) {
	items := []model.Event{}
	err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM events WHERE NOT is_approved ORDER BY submitted_at DESC")
	if err != nil {
		return nil, fmt.Errorf("EventRepository.Pending: %w", err)
	}
	return items, nil
}

func (r *EventRepository) Live(ctx context.Context, limit int) (interface{}, error) {
	items := []model.Event{}
	err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM events WHERE is_approved ORDER BY submitted_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("EventRepository.Live: %w", err)
	}
	return items, nil
}

func (r *EventRepository) AdminSearch(ctx context.Context, query string, limit int) (interface{}, error) {
	items := []model.Event{}
	err := r.db.SelectContext(ctx, &items, `
        SELECT * FROM events
        WHERE is_approved AND (title ILIKE $1 OR description ILIKE $1 OR venue ILIKE $1)
        ORDER BY submitted_at DESC LIMIT $2`, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("EventRepository.AdminSearch: %w", err)
	}
	return items, nil
}
