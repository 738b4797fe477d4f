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

type JobRepository struct {
	listingTable
}

func NewJobRepository(db *sqlx.DB) *JobRepository {
	return &JobRepository{listingTable{
		db:          db,
		table:       "jobs",
		listingType: model.TypeJobs,
		editable: columnSet(
			"title", "company_name", "description", "categories", "city", "state",
			"employment_type", "salary_min", "salary_max", "minimum_age", "website",
			"is_approved", "is_active",
		),
	}}
}

var jobSortColumns = map[string]string{
	"title":       "title",
	"submittedAt": "submitted_at",
	"viewCount":   "view_count",
	"thumbsUp":    "thumbs_up_count",
	"rating":      "average_rating",
	"salary":      "salary_min",
}

type JobFilter struct {
	Search         string
	Categories     []string
	City           string
	State          string
	EmploymentType string
	MinSalary      *float64
	WorkerAge      *int // job included when its minimum age is at most this
	SortBy         string
	SortOrder      string
	Limit          int
	Offset         int
}

func (r *JobRepository) List(ctx context.Context, f JobFilter) ([]model.Job, int, error) {
	where := "WHERE is_approved AND is_active"
	args := []interface{}{}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(" AND (title ILIKE $%[1]d OR description ILIKE $%[1]d OR company_name ILIKE $%[1]d)", len(args))
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
	if f.EmploymentType != "" {
		args = append(args, f.EmploymentType)
		where += fmt.Sprintf(" AND employment_type = $%d", len(args))
	}
	if f.MinSalary != nil {
		args = append(args, *f.MinSalary)
		where += fmt.Sprintf(" AND salary_max >= $%d", len(args))
	}
	if f.WorkerAge != nil {
		args = append(args, *f.WorkerAge)
		where += fmt.Sprintf(" AND (minimum_age IS NULL OR minimum_age <= $%d)", len(args))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM jobs "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("JobRepository.List count: %w", err)
	}

	query := "SELECT jobs.*, " + aggregateColumns(r.table, r.listingType) +
		" FROM jobs " + where +
		orderClause(jobSortColumns, f.SortBy, f.SortOrder) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	items := []model.Job{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("JobRepository.List: %w", err)
	}
	return items, total, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id int64) (*model.Job, error) {
	query := "SELECT jobs.*, " + aggregateColumns(r.table, r.listingType) +
		" FROM jobs WHERE id = $1"
	var j model.Job
	if err := r.db.GetContext(ctx, &j, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("JobRepository.GetByID: %w", err)
	}
	return &j, nil
}

func (r *JobRepository) Create(ctx context.Context, j *model.Job) error {
	j.IsApproved = false
	j.IsActive = true
	j.SubmittedAt = time.Now().UTC()

	rows, err := sqlx.NamedQueryContext(ctx, r.db, `
        INSERT INTO jobs
            (user_id, is_approved, is_active, submitted_at,
             contributor_nickname, contributor_first_name, contributor_last_name,
             title, company_name, description, categories, city, state,
             employment_type, salary_min, salary_max, minimum_age, website)
        VALUES
            (:user_id, :is_approved, :is_active, :submitted_at,
             :contributor_nickname, :contributor_first_name, :contributor_last_name,
             :title, :company_name, :description, :categories, :city, :state,
             :employment_type, :salary_min, :salary_max, :minimum_age, :website)
        RETURNING id`, j)
	if err != nil {
		return fmt.Errorf("JobRepository.Create: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&j.ID); err != nil {
			return fmt.Errorf("JobRepository.Create scan: %w", err)
		}
	}
	return rows.Err()
}

func (r *JobRepository) Pending(ctx context.Context) (interface{}, error) {
	items := []model.Job{}
	err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM jobs WHERE NOT is_approved ORDER BY submitted_at DESC")
	if err != nil {
		return nil, fmt.Errorf("JobRepository.Pending: %w", err)
	}
	return items, nil
}

func (r *JobRepository) Live(ctx context.Context, limit int) (interface{}, error) {
	items := []model.Job{}
	err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM jobs WHERE is_approved ORDER BY submitted_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("JobRepository.Live: %w", err)
	}
	return items, nil
}

func (r *JobRepository) AdminSearch(ctx context.Context, query string, limit int) (interface{}, error) {
	items := []model.Job{}
	err := r.db.SelectContext(ctx, &items, `
        SELECT * FROM jobs
        WHERE is_approved AND (title ILIKE $1 OR description ILIKE $1 OR company_name ILIKE $1)
        ORDER BY submitted_at DESC LIMIT $2`, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("JobRepository.AdminSearch: %w", err)
	}
	return items, nil
}
