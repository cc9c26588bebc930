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

// TemplateRepository handles database operations for report templates
type TemplateRepository struct {
	db *pgxpool.Pool
}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository(db *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// GetActiveByCode retrieves the highest-version active template for a code
// and language, falling back to any language when no localized body exists.
// Returns (nil, nil) when no template matches.
func (r *TemplateRepository) GetActiveByCode(ctx context.Context, code, language string) (*models.ReportTemplate, error) {
	tpl, err := r.getByCode(ctx, code, language)
	if err != nil {
		return nil, err
	}
	if tpl == nil && language != "" {
		return r.getByCode(ctx, code, "")
	}
	return tpl, nil
}

func (r *TemplateRepository) getByCode(ctx context.Context, code, language string) (*models.ReportTemplate, error) {
	query := squirrel.Select("id", "code", "name", "version", "language", "body", "active",
		"created_at", "updated_at").
		From("report_templates").
		Where("code = ?", code).
		Where("active = TRUE").
		OrderBy("version DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	if language != "" {
		query = query.Where("language = ?", language)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var tpl models.ReportTemplate
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&tpl.ID,
		&tpl.Code,
		&tpl.Name,
		&tpl.Version,
		&tpl.Language,
		&tpl.Body,
		&tpl.Active,
		&tpl.CreatedAt,
		&tpl.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &tpl, nil
}
