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

type ServiceRepository struct {
	listingTable
}

func NewServiceRepository(db *sqlx.DB) *ServiceRepository {
	return &ServiceRepository{listingTable{
		db:          db,
		table:       "services",
		listingType: model.TypeServices,
		editable: columnSet(
			"name", "description", "categories", "city", "state",
			"website", "email", "phone", "photo_url",
			"is_approved", "is_active",
		),
	}}
}

var serviceSortColumns = map[string]string{
	"name":        "name",
	"submittedAt": "submitted_at",
	"viewCount":   "view_count",
	"thumbsUp":    "thumbs_up_count",
	"rating":      "average_rating",
}

type ServiceFilter struct {
	Search     string
	Categories []string
	City       string
	State      string
	SortBy     string
	SortOrder  string
	Limit      int
	Offset     int
}

func (r *ServiceRepository) List(ctx context.Context, f ServiceFilter) ([]model.ServiceListing, int, error) {
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

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM services "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("ServiceRepository.List count: %w", err)
	}

	query := "SELECT services.*, " + aggregateColumns(r.table, r.listingType) +
		" FROM services " + where +
		orderClause(serviceSortColumns, f.SortBy, f.SortOrder) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	items := []model.ServiceListing{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("ServiceRepository.List: %w", err)
	}
	return items, total, nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*model.ServiceListing, error) {
	query := "SELECT services.*, " + aggregateColumns(r.table, r.listingType) +
		" FROM services WHERE id = $1"
	var s model.ServiceListing
	if err := r.db.GetContext(ctx, &s, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("ServiceRepository.GetByID: %w", err)
	}
	return &s, nil
}

func (r *ServiceRepository) Create(ctx context.Context, s *model.ServiceListing) error {
	s.IsApproved = false
	s.IsActive = true
	s.SubmittedAt = time.Now().UTC()

	rows, err := sqlx.NamedQueryContext(ctx, r.db, `
        INSERT INTO services
            (user_id, is_approved, is_active, submitted_at,
             contributor_nickname, contributor_first_name, contributor_last_name,
             name, description, categories, city, state,
             website, email, phone, photo_url)
        VALUES
            (:user_id, :is_approved, :is_active, :submitted_at,
             :contributor_nickname, :contributor_first_name, :contributor_last_name,
             :name, :description, :categories, :city, :state,
             :website, :email, :phone, :photo_url)
        RETURNING id`, s)
	if err != nil {
		return fmt.Errorf("ServiceRepository.Create: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&s.ID); err != nil {
			return fmt.Errorf("ServiceRepository.Create scan: %w", err)
		}
	}
	return rows.Err()
}

func (r *ServiceRepository) Pending(ctx context.Context) (interface{}, error) {
	items := []model.ServiceListing{}
	err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM services WHERE NOT is_approved ORDER BY submitted_at DESC")
	if err != nil {
		return nil, fmt.Errorf("ServiceRepository.Pending: %w", err)
	}
	return items, nil
}

func (r *ServiceRepository) Live(ctx context.Context, limit int) (interface{}, error) {
	items := []model.ServiceListing{}
	err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM services WHERE is_approved ORDER BY submitted_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("ServiceRepository.Live: %w", err)
	}
	return items, nil
}

func (r *ServiceRepository) AdminSearch(ctx context.Context, query string, limit int) (interface{}, error) {
	items := []model.ServiceListing{}
	err := r.db.SelectContext(ctx, &items, `
        SELECT * FROM services
        WHERE is_approved AND (name ILIKE $1 OR description ILIKE $1 OR city ILIKE $1)
        ORDER BY submitted_at DESC LIMIT $2`, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("ServiceRepository.AdminSearch: %w", err)
	}
	return items, nil
}
