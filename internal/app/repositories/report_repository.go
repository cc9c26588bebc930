package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jyhan-dev/seodang/internal/app/models"
	"github.com/jyhan-dev/seodang/internal/pkg/apperrors"
)

// ReportRepository persists generated report artifacts. Rows are created in
// the generating state and only ever transitioned, never deleted; transition
// WHERE clauses enforce the lifecycle at the database level.
type ReportRepository struct {
	db *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{db: db}
}

var reportColumns = []string{"id", "student_id", "template_id", "status", "document_path",
	"markup_path", "file_size_bytes", "content_hash", "generation_time_ms", "error_message",
	"access_count", "last_accessed_at", "expires_at", "requested_by", "created_at", "updated_at"}

// Create inserts a new artifact row in the generating state.
func (r *ReportRepository) Create(ctx context.Context, report *models.GeneratedReport) error {
	query := squirrel.Insert("generated_reports").
		Columns("id", "student_id", "template_id", "status", "expires_at", "requested_by").
		Values(report.ID, report.StudentID, report.TemplateID, models.ReportStatusGenerating,
			report.ExpiresAt, report.RequestedBy).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	report.Status = models.ReportStatusGenerating
	return nil
}

// MarkCompleted transitions generating -> completed, recording output paths,
// size, content hash and duration.
func (r *ReportRepository) MarkCompleted(ctx context.Context, id, documentPath, markupPath string, sizeBytes int64, contentHash string, durationMs int64) error {
	query := squirrel.Update("generated_reports").
		Set("status", models.ReportStatusCompleted).
		Set("document_path", documentPath).
		Set("markup_path", markupPath).
		Set("file_size_bytes", sizeBytes).
		Set("content_hash", contentHash).
		Set("generation_time_ms", durationMs).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", id).
		Where("status = ?", models.ReportStatusGenerating).
		PlaceholderFormat(squirrel.Dollar)

	return r.execTransition(ctx, query)
}

// MarkFailed transitions generating -> failed with the error message.
func (r *ReportRepository) MarkFailed(ctx context.Context, id, errorMessage string, durationMs int64) error {
	query := squirrel.Update("generated_reports").
		Set("status", models.ReportStatusFailed).
		Set("error_message", errorMessage).
		Set("generation_time_ms", durationMs).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", id).
		Where("status = ?", models.ReportStatusGenerating).
		PlaceholderFormat(squirrel.Dollar)

	return r.execTransition(ctx, query)
}

// MarkArchived transitions completed -> archived.
func (r *ReportRepository) MarkArchived(ctx context.Context, id string) error {
	query := squirrel.Update("generated_reports").
		Set("status", models.ReportStatusArchived).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", id).
		Where("status = ?", models.ReportStatusCompleted).
		PlaceholderFormat(squirrel.Dollar)

	return r.execTransition(ctx, query)
}

// MarkExpiredArchived archives every completed artifact whose expiry passed.
// Returns the number of rows transitioned.
func (r *ReportRepository) MarkExpiredArchived(ctx context.Context, now time.Time) (int64, error) {
	query := squirrel.Update("generated_reports").
		Set("status", models.ReportStatusArchived).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("status = ?", models.ReportStatusCompleted).
		Where("expires_at IS NOT NULL").
		Where("expires_at <= ?", now).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *ReportRepository) execTransition(ctx context.Context, query squirrel.UpdateBuilder) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	// Zero rows means the row is missing or in the wrong state; both break
	// the lifecycle contract.
	if result.RowsAffected() == 0 {
		return apperrors.ErrInvalidStateTransition
	}

	return nil
}

// GetByID retrieves an artifact row. Returns (nil, nil) when no row exists.
func (r *ReportRepository) GetByID(ctx context.Context, id string) (*models.GeneratedReport, error) {
	query := squirrel.Select(reportColumns...).
		From("generated_reports").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	report, err := r.scanOne(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return report, nil
}

// GetByIDs retrieves artifact rows for a set of ids, in no particular order.
func (r *ReportRepository) GetByIDs(ctx context.Context, ids []string) ([]models.GeneratedReport, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := squirrel.Select(reportColumns...).
		From("generated_reports").
		Where(squirrel.Eq{"id": ids}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var reports []models.GeneratedReport
	for rows.Next() {
		report, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}

	return reports, rows.Err()
}

// List retrieves artifact rows newest first, optionally filtered by student,
// plus the total row count for pagination.
func (r *ReportRepository) List(ctx context.Context, studentID *int64, offset uint64, limit int) ([]models.GeneratedReport, int64, error) {
	countQuery := squirrel.Select("COUNT(*)").
		From("generated_reports").
		PlaceholderFormat(squirrel.Dollar)
	query := squirrel.Select(reportColumns...).
		From("generated_reports").
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	if studentID != nil {
		countQuery = countQuery.Where("student_id = ?", *studentID)
		query = query.Where("student_id = ?", *studentID)
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var reports []models.GeneratedReport
	for rows.Next() {
		report, err := r.scanOne(rows)
		if err != nil {
			return nil, 0, err
		}
		reports = append(reports, *report)
	}

	return reports, total, rows.Err()
}

// TouchAccess increments the access counter and stamps last_accessed_at.
// Called on every artifact read, not on generation.
func (r *ReportRepository) TouchAccess(ctx context.Context, id string, now time.Time) error {
	query := squirrel.Update("generated_reports").
		Set("access_count", squirrel.Expr("access_count + 1")).
		Set("last_accessed_at", now).
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

func (r *ReportRepository) scanOne(row pgx.Row) (*models.GeneratedReport, error) {
	var report models.GeneratedReport
	err := row.Scan(
		&report.ID,
		&report.StudentID,
		&report.TemplateID,
		&report.Status,
		&report.DocumentPath,
		&report.MarkupPath,
		&report.FileSizeBytes,
		&report.ContentHash,
		&report.GenerationTimeMs,
		&report.ErrorMessage,
		&report.AccessCount,
		&report.LastAccessedAt,
		&report.ExpiresAt,
		&report.RequestedBy,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("error scanning row: %w", err)
	}
	return &report, nil
}
