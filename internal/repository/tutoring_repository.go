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

type TutoringProviderRepository struct {
	listingTable
}

func NewTutoringProviderRepository(db *sqlx.DB) *TutoringProviderRepository {
	return &TutoringProviderRepository{listingTable{
		db:          db,
		table:       "tutoring_providers",
		listingType: model.TypeTutoringProviders,
		editable: columnSet(
			"name", "description", "subjects", "grade_levels", "delivery_mode",
			"city", "state", "website", "email", "phone",
			"hourly_rate_min", "hourly_rate_max", "photo_url",
			"is_approved", "is_active",
		),
	}}
}

var tutoringSortColumns = map[string]string{
	"name":        "name",
	"submittedAt": "submitted_at",
	"viewCount":   "view_count",
	"thumbsUp":    "thumbs_up_count",
	"rating":      "average_rating",
	"hourlyRate":  "hourly_rate_min",
}

type TutoringProviderFilter struct {
	Search        string
	Subjects      []string
	GradeLevels   []string
	DeliveryMode  string
	City          string
	State         string
	MaxHourlyRate *float64
	SortBy        string
	SortOrder     string
	Limit         int
	Offset        int
}

// List returns one page of approved, active providers plus the total match
// count ignoring pagination.
func (r *TutoringProviderRepository) List(ctx context.Context, f TutoringProviderFilter) ([]model.TutoringProvider, int, error) {
	where := "WHERE is_approved AND is_active"
	args := []interface{}{}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(" AND (name ILIKE $%[1]d OR description ILIKE $%[1]d)", len(args))
	}
	if len(f.Subjects) > 0 {
		args = append(args, pq.Array(f.Subjects))
		where += fmt.Sprintf(" AND subjects && $%d", len(args))
	}
	if len(f.GradeLevels) > 0 {
		args = append(args, pq.Array(f.GradeLevels))
		where += fmt.Sprintf(" AND grade_levels && $%d", len(args))
	}
	if f.DeliveryMode != "" {
		args = append(args, f.DeliveryMode)
		where += fmt.Sprintf(" AND delivery_mode = $%d", len(args))
	}
	if f.City != "" {
		args = append(args, "%"+f.City+"%")
		where += fmt.Sprintf(" AND city ILIKE $%d", len(args))
	}
	if f.State != "" {
		args = append(args, f.State)
		where += fmt.Sprintf(" AND state = $%d", len(args))
	}
	if f.MaxHourlyRate != nil {
		args = append(args, *f.MaxHourlyRate)
		where += fmt.Sprintf(" AND hourly_rate_min <= $%d", len(args))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM tutoring_providers "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("TutoringProviderRepository.List count: %w", err)
	}

	query := "SELECT tutoring_providers.*, " + aggregateColumns(r.table, r.listingType) +
		" FROM tutoring_providers " + where +
		orderClause(tutoringSortColumns, f.SortBy, f.SortOrder) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	items := []model.TutoringProvider{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("TutoringProviderRepository.List: %w", err)
	}
	return items, total, nil
}

// GetByID returns the row regardless of approval or active state.
func (r *TutoringProviderRepository) GetByID(ctx context.Context, id int64) (*model.TutoringProvider, error) {
	query := "SELECT tutoring_providers.*, " + aggregateColumns(r.table, r.listingType) +
		" FROM tutoring_providers WHERE id = $1"
	var p model.TutoringProvider
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("TutoringProviderRepository.GetByID: %w", err)
	}
	return &p, nil
}

// Create inserts a new unapproved submission and fills in the assigned id.
func (r *TutoringProviderRepository) Create(ctx context.Context, p *model.TutoringProvider) error {
	p.IsApproved = false
	p.IsActive = true
	p.SubmittedAt = time.Now().UTC()

	rows, err := sqlx.NamedQueryContext(ctx, r.db, `
        INSERT INTO tutoring_providers
            (user_id, is_approved, is_active, submitted_at,
             contributor_nickname, contributor_first_name, contributor_last_name,
             name, description, subjects, grade_levels, delivery_mode,
             city, state, website, email, phone,
             hourly_rate_min, hourly_rate_max, photo_url)
        VALUES
            (:user_id, :is_approved, :is_active, :submitted_at,
             :contributor_nickname, :contributor_first_name, :contributor_last_name,
             :name, :description, :subjects, :grade_levels, :delivery_mode,
             :city, :state, :website, :email, :phone,
             :hourly_rate_min, :hourly_rate_max, :photo_url)
        RETURNING id`, p)
	if err != nil {
		return fmt.Errorf("TutoringProviderRepository.Create: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&p.ID); err != nil {
			return fmt.Errorf("TutoringProviderRepository.Create scan: %w", err)
		}
	}
	return rows.Err()
}

func (r *TutoringProviderRepository) Pending(ctx context.Context) (interface{}, error) {
	items := []model.TutoringProvider{}
	err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM tutoring_providers WHERE NOT is_approved ORDER BY submitted_at DESC")
	if err != nil {
		return nil, fmt.Errorf("TutoringProviderRepository.Pending: %w", err)
	}
	return items, nil
}

func (r *TutoringProviderRepository) Live(ctx context.Context, limit int) (interface{}, error) {
	items := []model.TutoringProvider{}
	err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM tutoring_providers WHERE is_approved ORDER BY submitted_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("TutoringProviderRepository.Live: %w", err)
	}
	return items, nil
}

func (r *TutoringProviderRepository) AdminSearch(ctx context.Context, query string, limit int) (interface{}, error) {
	items := []model.TutoringProvider{}
	err := r.db.SelectContext(ctx, &items, `
        SELECT * FROM tutoring_providers
        WHERE is_approved AND (name ILIKE $1 OR description ILIKE $1 OR city ILIKE $1)
        ORDER BY submitted_at DESC LIMIT $2`, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("TutoringProviderRepository.AdminSearch: %w", err)
	}
	return items, nil
}
