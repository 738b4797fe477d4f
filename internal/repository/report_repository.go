package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/d9647/EduDirectory-sub000/internal/errs"
	"github.com/d9647/EduDirectory-sub000/internal/model"
)

// ReportRepository owns moderation flags. Reports are append-only; resolving
// one is a one-way flip of is_resolved.
type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Insert(ctx context.Context, rep *model.Report) error {
	err := r.db.QueryRowxContext(ctx, `
        INSERT INTO reports (reporter_user_id, report_type, item_type, item_id, reason, description)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, is_resolved, created_at`,
		rep.ReporterUserID, rep.ReportType, rep.ItemType, rep.ItemID, rep.Reason, rep.Description,
	).Scan(&rep.ID, &rep.IsResolved, &rep.CreatedAt)
	if err != nil {
		return fmt.Errorf("ReportRepository.Insert: %w", err)
	}
	return nil
}

// List returns reports newest first, optionally only the unresolved ones.
func (r *ReportRepository) List(ctx context.Context, unresolvedOnly bool) ([]model.Report, error) {
	query := "SELECT * FROM reports"
	if unresolvedOnly {
		query += " WHERE NOT is_resolved"
	}
	query += " ORDER BY created_at DESC, id DESC"

	reports := []model.Report{}
	if err := r.db.SelectContext(ctx, &reports, query); err != nil {
		return nil, fmt.Errorf("ReportRepository.List: %w", err)
	}
	return reports, nil
}

// Resolve flips is_resolved to true. There is no unresolve.
func (r *ReportRepository) Resolve(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "UPDATE reports SET is_resolved = TRUE WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("ReportRepository.Resolve: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
