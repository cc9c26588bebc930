package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jyhan-dev/seodang/internal/app/models"
	"github.com/jyhan-dev/seodang/internal/app/models/dto"
	"github.com/jyhan-dev/seodang/internal/app/repositories"
	"github.com/jyhan-dev/seodang/internal/pkg/apperrors"
	"github.com/jyhan-dev/seodang/internal/pkg/filestorage"
	"github.com/jyhan-dev/seodang/internal/pkg/helpers"
	"github.com/jyhan-dev/seodang/internal/pkg/logger"
	"github.com/jyhan-dev/seodang/internal/pkg/templating"
	"github.com/jyhan-dev/seodang/internal/pkg/validation"
)

// DocumentRenderer converts report markup into paginated document bytes.
// Implemented by renderer.Engine.
type DocumentRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// ReportService drives single-report generation and the artifact lifecycle
type ReportService interface {
	Generate(ctx context.Context, req *dto.GenerateReportRequest, requesterID int64) (*dto.GenerateReportResponse, error)
	GetReport(ctx context.Context, id string) (*models.GeneratedReport, error)
	ListReports(ctx context.Context, studentID *int64, page, size int) ([]models.GeneratedReport, int64, error)
	ArchiveReport(ctx context.Context, id string) error
	SweepExpired(ctx context.Context) (int64, error)
}

// reportServiceImpl implements ReportService
type reportServiceImpl struct {
	aggregate    AggregateService
	templateRepo *repositories.TemplateRepository
	reportRepo   *repositories.ReportRepository
	renderer     DocumentRenderer
	storage      filestorage.Storage
	expiry       time.Duration
	log          zerolog.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	aggregate AggregateService,
	templateRepo *repositories.TemplateRepository,
	reportRepo *repositories.ReportRepository,
	renderer DocumentRenderer,
	storage filestorage.Storage,
	expiry time.Duration,
) ReportService {
	return &reportServiceImpl{
		aggregate:    aggregate,
		templateRepo: templateRepo,
		reportRepo:   reportRepo,
		renderer:     renderer,
		storage:      storage,
		expiry:       expiry,
		log:          logger.WithComponent("report"),
	}
}

// Generate runs the full pipeline for one student: aggregate, substitute,
// render, persist. The artifact row is created in the generating state once
// the inputs resolve; every later failure transitions it to failed and
// surfaces as a typed error. There is no markup-only fallback: callers decide
// what to do with a failed render.
func (s *reportServiceImpl) Generate(ctx context.Context, req *dto.GenerateReportRequest, requesterID int64) (*dto.GenerateReportResponse, error) {
	if !validation.IsValidTemplateCode(req.TemplateCode) {
		return nil, apperrors.NewBadRequestError("invalid template code: " + req.TemplateCode)
	}
	if !validation.IsValidLanguage(req.Language) {
		return nil, apperrors.NewBadRequestError("invalid language code: " + req.Language)
	}

	view, err := s.aggregate.GetStudentView(ctx, req.StudentID, req.Range(), req.Language)
	if err != nil {
		return nil, err
	}

	tpl, err := s.templateRepo.GetActiveByCode(ctx, req.TemplateCode, req.Language)
	if err != nil {
		return nil, fmt.Errorf("error getting template: %w", err)
	}
	if tpl == nil {
		return nil, apperrors.ErrTemplateNotFound
	}

	report := &models.GeneratedReport{
		ID:          uuid.New().String(),
		StudentID:   req.StudentID,
		TemplateID:  tpl.ID,
		RequestedBy: requesterID,
	}
	if s.expiry > 0 {
		expiresAt := time.Now().Add(s.expiry)
		report.ExpiresAt = &expiresAt
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("error creating report record: %w", err)
	}

	start := time.Now()

	markup := templating.Render(tpl.Body, buildBindings(view))
	markupPath, err := s.storage.SaveBytes([]byte(markup), "markup", report.ID+".html")
	if err != nil {
		return nil, s.failReport(ctx, report.ID, start, fmt.Errorf("error saving markup: %w", err))
	}

	pdf, err := s.renderer.RenderPDF(ctx, markup)
	if err != nil {
		return nil, s.failReport(ctx, report.ID, start, err)
	}

	documentPath, err := s.storage.SaveBytes(pdf, "documents", report.ID+".pdf")
	if err != nil {
		return nil, s.failReport(ctx, report.ID, start, fmt.Errorf("error saving document: %w", err))
	}

	hash := sha256.Sum256(pdf)
	durationMs := time.Since(start).Milliseconds()

	if err := s.reportRepo.MarkCompleted(ctx, report.ID, documentPath, markupPath,
		int64(len(pdf)), hex.EncodeToString(hash[:]), durationMs); err != nil {
		return nil, fmt.Errorf("error completing report record: %w", err)
	}

	s.log.Info().Str("reportId", report.ID).Int64("studentId", req.StudentID).
		Int64("durationMs", durationMs).Int("bytes", len(pdf)).Msg("Report generated")

	return &dto.GenerateReportResponse{
		ReportID:         report.ID,
		DocumentPath:     documentPath,
		MarkupPath:       markupPath,
		GenerationTimeMs: durationMs,
	}, nil
}

// failReport records the failure on the artifact and passes the original
// error back to the caller.
func (s *reportServiceImpl) failReport(ctx context.Context, reportID string, start time.Time, cause error) error {
	durationMs := time.Since(start).Milliseconds()
	if err := s.reportRepo.MarkFailed(ctx, reportID, cause.Error(), durationMs); err != nil {
		s.log.Error().Err(err).Str("reportId", reportID).Msg("Failed to record report failure")
	}
	s.log.Error().Err(cause).Str("reportId", reportID).Msg("Report generation failed")
	return cause
}

// GetReport retrieves an artifact record. Retrieval is what counts as
// access: the counter and last-accessed stamp move here, never during
// generation.
func (s *reportServiceImpl) GetReport(ctx context.Context, id string) (*models.GeneratedReport, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting report: %w", err)
	}
	if report == nil {
		return nil, apperrors.ErrReportNotFound
	}

	if err := s.reportRepo.TouchAccess(ctx, id, time.Now()); err != nil {
		s.log.Warn().Err(err).Str("reportId", id).Msg("Failed to update access counter")
	} else {
		report.AccessCount++
	}

	return report, nil
}

// ListReports pages through artifact records newest first. Listing is not an
// access; the counter only moves on individual reads.
func (s *reportServiceImpl) ListReports(ctx context.Context, studentID *int64, page, size int) ([]models.GeneratedReport, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	reports, total, err := s.reportRepo.List(ctx, studentID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing reports: %w", err)
	}
	return reports, total, nil
}

// ArchiveReport manually transitions a completed artifact to archived.
func (s *reportServiceImpl) ArchiveReport(ctx context.Context, id string) error {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("error getting report: %w", err)
	}
	if report == nil {
		return apperrors.ErrReportNotFound
	}

	return s.reportRepo.MarkArchived(ctx, id)
}

// SweepExpired archives every completed artifact whose expiry has passed.
func (s *reportServiceImpl) SweepExpired(ctx context.Context) (int64, error) {
	n, err := s.reportRepo.MarkExpiredArchived(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("error sweeping expired reports: %w", err)
	}
	if n > 0 {
		s.log.Info().Int64("count", n).Msg("Expired reports archived")
	}
	return n, nil
}
