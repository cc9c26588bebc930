package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jyhan-dev/seodang/internal/app/models"
)

// ConsultationRepository handles database operations for counseling records
type ConsultationRepository struct {
	db *pgxpool.Pool
}

// NewConsultationRepository creates a new ConsultationRepository
func NewConsultationRepository(db *pgxpool.Pool) *ConsultationRepository {
	return &ConsultationRepository{db: db}
}

// GetRecent retrieves a student's most recent consultations, newest first.
// The head entry's action_items payload is the primary evaluation source in
// merge resolution.
func (r *ConsultationRepository) GetRecent(ctx context.Context, studentID int64, dateRange models.DateRange, limit int) ([]models.Consultation, error) {
	query := squirrel.Select("id", "student_id", "consulted_at", "counselor_id", "content",
		"action_items", "created_at").
		From("consultations").
		Where("student_id = ?", studentID).
		OrderBy("consulted_at DESC", "id DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	if dateRange.From != nil {
		query = query.Where("consulted_at >= ?", *dateRange.From)
	}
	if dateRange.To != nil {
		query = query.Where("consulted_at <= ?", *dateRange.To)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var consultations []models.Consultation
	for rows.Next() {
		var c models.Consultation
		err := rows.Scan(
			&c.ID,
			&c.StudentID,
			&c.ConsultedAt,
			&c.CounselorID,
			&c.Content,
			&c.ActionItems,
			&c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		consultations = append(consultations, c)
	}

	return consultations, rows.Err()
}
