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

type SummerCampRepository struct {
	listingTable
}

func NewSummerCampRepository(db *sqlx.DB) *SummerCampRepository {
	return &SummerCampRepository{listingTable{
		db:          db,
		table:       "summer_camps",
		listingType: model.TypeSummerCamps,
		editable: columnSet(
			"name", "description", "categories", "city", "state",
			"age_min", "age_max", "start_date", "end_date", "price",
			"is_overnight", "website", "photo_url",
			"is_approved", "is_active",
		),
	}}
}

var campSortColumns = map[string]string{
	"name":        "name",
	"submittedAt": "submitted_at",
	"viewCount":   "view_count",
	"thumbsUp":    "thumbs_up_count",
	"rating":      "average_rating",
	"price":       "price",
	"startDate":   "start_date",
}

type SummerCampFilter struct {
	Search     string
	Categories []string
	City       string
	State      string
	ChildAge   *int // camp included when its age range covers this age
	MaxPrice   *float64
	Overnight  *bool
	SortBy     string
	SortOrder  string
	Limit      int
	Offset     int
}

func (r *SummerCampRepository) List(ctx context.Context, f SummerCampFilter) ([]model.SummerCamp, int, error) {
	where := "WHERE is_approved AND is_active"
	args := []interface{}{}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(" AND (name ILIKE $%[1]d OR description ILIKE $%[1]d)", len(args))
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
	if f.ChildAge != nil {
		args = append(args, *f.ChildAge)
		where += fmt.Sprintf(" AND age_min <= $%[1]d AND age_max >= $%[1]d", len(args))
	}
	if f.MaxPrice != nil {
		args = append(args, *f.MaxPrice)
		where += fmt.Sprintf(" AND price <= $%d", len(args))
	}
	if f.Overnight != nil {
		args = append(args, *f.Overnight)
		where += fmt.Sprintf(" AND is_overnight = $%d", len(args))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM summer_camps "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("SummerCampRepository.List count: %w", err)
	}

	query := "SELECT summer_camps.*, " + aggregateColumns(r.table, r.listingType) +
		" FROM summer_camps " + where +
		orderClause(campSortColumns, f.SortBy, f.SortOrder) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	items := []model.SummerCamp{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("SummerCampRepository.List: %w", err)
	}
	return items, total, nil
}

func (r *SummerCampRepository) GetByID(ctx context.Context, id int64) (*model.SummerCamp, error) {
	query := "SELECT summer_camps.*, " + aggregateColumns(r.table, r.listingType) +
		" FROM summer_camps WHERE id = $1"
	var c model.SummerCamp
	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("SummerCampRepository.GetByID: %w", err)
	}
	return &c, nil
}

func (r *SummerCampRepository) Create(ctx context.Context, c *model.SummerCamp) error {
	c.IsApproved = false
	c.IsActive = true
	c.SubmittedAt = time.Now().UTC()

	rows, err := sqlx.NamedQueryContext(ctx, r.db, `
        INSERT INTO summer_camps
            (user_id, is_approved, is_active, submitted_at,
             contributor_nickname, contributor_first_name, contributor_last_name,
             name, description, categories, city, state,
             age_min, age_max, start_date, end_date, price,
             is_overnight, website, photo_url)
        VALUES
            (:user_id, :is_approved, :is_active, :submitted_at,
             :contributor_nickname, :contributor_first_name, :contributor_last_name,
             :name, :description, :categories, :city, :state,
             :age_min, :age_max, :start_date, :end_date, :price,
             :is_overnight, :website, :photo_url)
        RETURNING id`, c)
	if err != nil {
		return fmt.Errorf("SummerCampRepository.Create: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&c.ID); err != nil {
			return fmt.Errorf("SummerCampRepository.Create scan: %w", err)
		}
	}
	return rows.Err()
}

func (r *SummerCampRepository) Pending(ctx context.Context) (interface{}, error) {
	items := []model.SummerCamp{}
	err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM summer_camps WHERE NOT is_approved ORDER BY submitted_at DESC")
	if err != nil {
		return nil, fmt.Errorf("SummerCampRepository.Pending: %w", err)
	}
	return items, nil
}

func (r *SummerCampRepository) Live(ctx context.Context, limit int) (interface{}, error) {
	items := []model.SummerCamp{}
	err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM summer_camps WHERE is_approved ORDER BY submitted_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("SummerCampRepository.Live: %w", err)
	}
	return items, nil
}

func (r *SummerCampRepository) AdminSearch(ctx context.Context, query string, limit int) (interface{}, error) {
	items := []model.SummerCamp{}
	err := r.db.SelectContext(ctx, &items, `
        SELECT * FROM summer_camps
        WHERE is_approved AND (name ILIKE $1 OR description ILIKE $1 OR city ILIKE $1)
        ORDER BY submitted_at DESC LIMIT $2`, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("SummerCampRepository.AdminSearch: %w", err)
	}
	return items, nil
}
