package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jyhan-dev/seodang/internal/app/models"
)

// ExamScoreRepository handles database operations for exam scores
type ExamScoreRepository struct {
	db *pgxpool.Pool
}

// NewExamScoreRepository creates a new ExamScoreRepository
func NewExamScoreRepository(db *pgxpool.Pool) *ExamScoreRepository {
	return &ExamScoreRepository{db: db}
}

// scoreColumns is the shared select list for exam score queries.
var scoreColumns = []string{"id", "student_id", "exam_date", "total_score",
	"reading_score", "listening_score", "writing_score", "level", "created_at"}

// GetHistoryAsc retrieves a student's in-range score history in ascending
// exam date order, as required by the trend analyzer.
func (r *ExamScoreRepository) GetHistoryAsc(ctx context.Context, studentID int64, dateRange models.DateRange) ([]models.ExamScore, error) {
	query := squirrel.Select(scoreColumns...).
		From("exam_scores").
		Where("student_id = ?", studentID).
		OrderBy("exam_date ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if dateRange.From != nil {
		query = query.Where("exam_date >= ?", *dateRange.From)
	}
	if dateRange.To != nil {
		query = query.Where("exam_date <= ?", *dateRange.To)
	}

	return r.queryScores(ctx, query)
}

// GetRecent retrieves the most recent `limit` scores, newest first, for
// display on the report.
func (r *ExamScoreRepository) GetRecent(ctx context.Context, studentID int64, limit int) ([]models.ExamScore, error) {
	query := squirrel.Select(scoreColumns...).
		From("exam_scores").
		Where("student_id = ?", studentID).
		OrderBy("exam_date DESC", "id DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	return r.queryScores(ctx, query)
}

func (r *ExamScoreRepository) queryScores(ctx context.Context, query squirrel.SelectBuilder) ([]models.ExamScore, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var scores []models.ExamScore
	for rows.Next() {
		var score models.ExamScore
		err := rows.Scan(
			&score.ID,
			&score.StudentID,
			&score.ExamDate,
			&score.Total,
			&score.Reading,
			&score.Listening,
			&score.Writing,
			&score.Level,
			&score.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		scores = append(scores, score)
	}

	return scores, rows.Err()
}
