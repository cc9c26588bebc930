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

// StudentRepository handles database operations for students and their
// key/value attributes
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

// GetByID retrieves a student's core record by ID. Returns (nil, nil) when
// no row exists.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := squirrel.Select("id", "name", "birth_date", "nationality", "phone", "email",
		"enrolled_at", "class_name", "created_at", "updated_at").
		From("students").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var student models.Student
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&student.ID,
		&student.Name,
		&student.BirthDate,
		&student.Nationality,
		&student.Phone,
		&student.Email,
		&student.EnrolledAt,
		&student.ClassName,
		&student.CreatedAt,
		&student.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &student, nil
}

// GetAttributes retrieves all key/value attributes for a student, joined with
// their definition labels, ordered by key for stable output.
func (r *StudentRepository) GetAttributes(ctx context.Context, studentID int64) ([]models.StudentAttribute, error) {
	query := squirrel.Select("a.id", "a.student_id", "a.attr_key", "a.attr_value", "a.encrypted",
		"COALESCE(d.label, '')", "a.updated_at").
		From("student_attributes a").
		LeftJoin("attribute_definitions d ON d.attr_key = a.attr_key").
		Where("a.student_id = ?", studentID).
		OrderBy("a.attr_key ASC").
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

	var attrs []models.StudentAttribute
	for rows.Next() {
		var attr models.StudentAttribute
		err := rows.Scan(
			&attr.ID,
			&attr.StudentID,
			&attr.Key,
			&attr.Value,
			&attr.Encrypted,
			&attr.Label,
			&attr.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		attrs = append(attrs, attr)
	}

	return attrs, rows.Err()
}
