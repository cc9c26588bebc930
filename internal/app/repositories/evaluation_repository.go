package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jyhan-dev/seodang/internal/app/models"
)

// EvaluationRepository handles database operations for the dedicated
// per-student evaluation table, the durable fallback source in merge
// resolution
type EvaluationRepository struct {
	db *pgxpool.Pool
}

// NewEvaluationRepository creates a new EvaluationRepository
func NewEvaluationRepository(db *pgxpool.Pool) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

// GetByStudentID retrieves the dedicated evaluation row for a student.
// Returns (nil, nil) when the student has none.
func (r *EvaluationRepository) GetByStudentID(ctx context.Context, studentID int64) (*models.StudentEvaluation, error) {
	query := squirrel.Select("id", "student_id", "academic_evaluation", "korean_evaluation",
		"adaptation_evaluation", "strengths", "weaknesses", "recommendation", "updated_at").
		From("student_evaluations").
		Where("student_id = ?", studentID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var eval models.StudentEvaluation
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&eval.ID,
		&eval.StudentID,
		&eval.AcademicEvaluation,
		&eval.KoreanEvaluation,
		&eval.AdaptationEvaluation,
		&eval.Strengths,
		&eval.Weaknesses,
		&eval.Recommendation,
		&eval.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &eval, nil
}
