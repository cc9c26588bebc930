package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jyhan-dev/seodang/internal/app/models"
)

// GoalRepository handles database operations for student goal milestones
type GoalRepository struct {
	db *pgxpool.Pool
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(db *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{db: db}
}

// GetByStudentID retrieves a student's goal history in chronological order
// for the report timeline.
func (r *GoalRepository) GetByStudentID(ctx context.Context, studentID int64) ([]models.StudentGoal, error) {
	query := squirrel.Select("id", "student_id", "target_date", "title", "description",
		"achieved", "achieved_at", "created_at").
		From("student_goals").
		Where("student_id = ?", studentID).
		OrderBy("target_date ASC", "id ASC").
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

	var goals []models.StudentGoal
	for rows.Next() {
		var goal models.StudentGoal
		err := rows.Scan(
			&goal.ID,
			&goal.StudentID,
			&goal.TargetDate,
			&goal.Title,
			&goal.Description,
			&goal.Achieved,
			&goal.AchievedAt,
			&goal.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		goals = append(goals, goal)
	}

	return goals, rows.Err()
}
