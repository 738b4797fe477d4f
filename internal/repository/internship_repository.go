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

type InternshipRepository struct {
	listingTable
}

func NewInternshipRepository(db *sqlx.DB) *InternshipRepository {
	return &InternshipRepository{listingTable{
		db:          db,
		table:       "internships",
		listingType: model.TypeInternships,
		editable: columnSet(
			"title", "company_name", "description", "categories", "city", "state",
			"is_remote", "is_paid", "selectivity", "application_deadline", "website",
			"is_approved", "is_active",
		),
	}}
}

var internshipSortColumns = map[string]string{
	"title":       "title",
	"submittedAt": "submitted_at",
	"viewCount":   "view_count",
	"thumbsUp":    "thumbs_up_count",
	"rating":      "average_rating",
	"deadline":    "application_deadline",
}

type InternshipFilter struct {
	Search      string
	Categories  []string
	City        string
	State       string
	IsRemote    *bool
	IsPaid      *bool
	Selectivity string
	SortBy      string
	SortOrder   string
	Limit       int
	Offset      int
}

func (r *InternshipRepository) List(ctx context.Context, f InternshipFilter) ([]model.Internship, int, error) {
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
	if f.IsRemote != nil {
		args = append(args, *f.IsRemote)
		where += fmt.Sprintf(" AND is_remote = $%d", len(args))
	}
	if f.IsPaid != nil {
		args = append(args, *f.IsPaid)
		where += fmt.Sprintf(" AND is_paid = $%d", len(args))
	}
	if f.Selectivity != "" {
		args = append(args, f.Selectivity)
		where += fmt.Sprintf(" AND selectivity = $%d", len(args))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM internships "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("InternshipRepository.List count: %w", err)
	}

	query := "SELECT internships.*, " + aggregateColumns(r.table, r.listingType) +
		" FROM internships " + where +
		orderClause(internshipSortColumns, f.SortBy, f.SortOrder) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	items := []model.Internship{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("InternshipRepository.List: %w", err)
	}
	return items, total, nil
}

func (r *InternshipRepository) GetByID(ctx context.Context, id int64) (*model.Internship, error) {
	query := "SELECT internships.*, " + aggregateColumns(r.table, r.listingType) +
		" FROM internships WHERE id = $1"
	var in model.Internship
	if err := r.db.GetContext(ctx, &in, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("InternshipRepository.GetByID: %w", err)
	}
	return &in, nil
}

func (r *InternshipRepository) Create(ctx context.Context, in *model.Internship) error {
	in.IsApproved = false
	in.IsActive = true
	in.SubmittedAt = time.Now().UTC()

	rows, err := sqlx.NamedQueryContext(ctx, r.db, `
        INSERT INTO internships
            (user_id, is_approved, is_active, submitted_at,
             contributor_nickname, contributor_first_name, contributor_last_name,
             title, company_name, description, categories, city, state,
             is_remote, is_paid, selectivity, application_deadline, website)
        VALUES
            (:user_id, :is_approved, :is_active, :submitted_at,
             :contributor_nickname, :contributor_first_name, :contributor_last_name,
             :title, :company_name, :description, :categories, :city, :state,
             :is_remote, :is_paid, :selectivity, :application_deadline, :website)
        RETURNING id`, in)
	if err != nil {
		return fmt.Errorf("InternshipRepository.Create: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&in.ID); err != nil {
			return fmt.Errorf("InternshipRepository.Create scan: %w", err)
		}
	}
	return rows.Err()
}

func (r *InternshipRepository) Pending(ctx context.Context) (interface{}, error) {
	items := []model.Internship{}
	err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM internships WHERE NOT is_approved ORDER BY submitted_at DESC")
	if err != nil {
		return nil, fmt.Errorf("InternshipRepository.Pending: %w", err)
	}
	return items, nil
}

func (r *InternshipRepository) Live(ctx context.Context, limit int) (interface{}, error) {
	items := []model.Internship{}
	err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM internships WHERE is_approved ORDER BY submitted_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("InternshipRepository.Live: %w", err)
	}
	return items, nil
}

func (r *InternshipRepository) AdminSearch(ctx context.Context, query string, limit int) (interface{}, error) {
	items := []model.Internship{}
	err := r.db.SelectContext(ctx, &items, `
        SELECT * FROM internships
        WHERE is_approved AND (title ILIKE $1 OR description ILIKE $1 OR company_name ILIKE $1)
        ORDER BY submitted_at DESC LIMIT $2`, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("InternshipRepository.AdminSearch: %w", err)
	}
	return items, nil
}
