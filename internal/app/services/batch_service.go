package services

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jyhan-dev/seodang/internal/app/models"
	"github.com/jyhan-dev/seodang/internal/app/models/dto"
	"github.com/jyhan-dev/seodang/internal/pkg/apperrors"
	"github.com/jyhan-dev/seodang/internal/pkg/filestorage"
	"github.com/jyhan-dev/seodang/internal/pkg/logger"
	"github.com/jyhan-dev/seodang/internal/pkg/websocket"
)

// reportFinder is the slice of the report repository the batch service needs.
type reportFinder interface {
	GetByIDs(ctx context.Context, ids []string) ([]models.GeneratedReport, error)
}

// BatchService drives the report pipeline across many students and packages
// existing artifacts into archives
type BatchService interface {
	GenerateBatch(ctx context.Context, req *dto.GenerateBatchRequest, requesterID int64) (*dto.BatchResult, error)
	PackageArchive(ctx context.Context, reportIDs []string, w io.Writer) (int, error)
}

// batchServiceImpl implements BatchService
type batchServiceImpl struct {
	reports  ReportService
	finder   reportFinder
	storage  filestorage.Storage
	progress *websocket.Hub

	limit int
	delay time.Duration
	sleep func(time.Duration)
	log   zerolog.Logger
}

// NewBatchService creates a new BatchService. progress may be nil when no
// live progress stream is wanted.
func NewBatchService(
	reports ReportService,
	finder reportFinder,
	storage filestorage.Storage,
	progress *websocket.Hub,
	limit int,
	delay time.Duration,
) BatchService {
	if limit <= 0 {
		limit = 50
	}
	return &batchServiceImpl{
		reports:  reports,
		finder:   finder,
		storage:  storage,
		progress: progress,
		limit:    limit,
		delay:    delay,
		sleep:    time.Sleep,
		log:      logger.WithComponent("batch"),
	}
}

// GenerateBatch processes students strictly sequentially, in input order.
// Each item's pipeline run is isolated: a failure (or panic) is captured
// into the error list keyed by student id and processing continues with the
// next item. A fixed delay between items bounds render load.
func (s *batchServiceImpl) GenerateBatch(ctx context.Context, req *dto.GenerateBatchRequest, requesterID int64) (*dto.BatchResult, error) {
	if len(req.StudentIDs) > s.limit {
		return nil, fmt.Errorf("%w: %d students, limit %d", apperrors.ErrBatchTooLarge, len(req.StudentIDs), s.limit)
	}

	batchID := uuid.New().String()
	result := &dto.BatchResult{
		Total:   len(req.StudentIDs),
		Results: []dto.GenerateReportResponse{},
		Errors:  []dto.BatchItemError{},
	}

	for i, studentID := range req.StudentIDs {
		if i > 0 && s.delay > 0 {
			s.sleep(s.delay)
		}

		resp, err := s.generateOne(ctx, studentID, req, requesterID)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, dto.BatchItemError{
				StudentID: studentID,
				Error:     err.Error(),
			})
			s.progress.Publish(&websocket.Event{
				BatchID:   batchID,
				StudentID: studentID,
				Index:     i + 1,
				Total:     result.Total,
				Status:    websocket.EventStatusFailed,
				Error:     err.Error(),
			})
			s.log.Warn().Err(err).Int64("studentId", studentID).Msg("Batch item failed, continuing")
			continue
		}

		result.Successful++
		result.Results = append(result.Results, *resp)
		s.progress.Publish(&websocket.Event{
			BatchID:   batchID,
			StudentID: studentID,
			Index:     i + 1,
			Total:     result.Total,
			Status:    websocket.EventStatusCompleted,
			ReportID:  resp.ReportID,
		})
	}

	s.log.Info().Str("batchId", batchID).Int("total", result.Total).Int("successful", result.Successful).
		Int("failed", result.Failed).Msg("Batch completed")
	return result, nil
}

// generateOne wraps one pipeline run so a panic inside it is captured as
// that item's error instead of aborting the whole batch.
func (s *batchServiceImpl) generateOne(ctx context.Context, studentID int64, req *dto.GenerateBatchRequest, requesterID int64) (resp *dto.GenerateReportResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = fmt.Errorf("panic during generation: %v", r)
		}
	}()

	return s.reports.Generate(ctx, &dto.GenerateReportRequest{
		StudentID:    studentID,
		TemplateCode: req.TemplateCode,
		Language:     req.Language,
		From:         req.From,
		To:           req.To,
	}, requesterID)
}

// PackageArchive streams one zip archive containing the document file of
// every resolvable artifact. Files missing from disk are skipped, not
// failed on; the returned count is the number of entries written.
func (s *batchServiceImpl) PackageArchive(ctx context.Context, reportIDs []string, w io.Writer) (int, error) {
	reports, err := s.finder.GetByIDs(ctx, reportIDs)
	if err != nil {
		return 0, fmt.Errorf("error resolving reports: %w", err)
	}

	byID := make(map[string]models.GeneratedReport, len(reports))
	for _, r := range reports {
		byID[r.ID] = r
	}

	zw := zip.NewWriter(w)
	written := 0

	// Iterate the request ids, not the map, so entry order is reproducible.
	for _, id := range reportIDs {
		report, ok := byID[id]
		if !ok {
			s.log.Warn().Str("reportId", id).Msg("Archive member not found, skipping")
			continue
		}
		if report.DocumentPath == "" || !s.storage.Exists(report.DocumentPath) {
			s.log.Warn().Str("reportId", id).Str("path", report.DocumentPath).
				Msg("Archive member missing on disk, skipping")
			continue
		}

		if err := s.addArchiveEntry(zw, report); err != nil {
			// A failed copy mid-stream corrupts the archive; this one is fatal.
			_ = zw.Close()
			return written, fmt.Errorf("error writing archive entry for %s: %w", id, err)
		}
		written++
	}

	if err := zw.Close(); err != nil {
		return written, fmt.Errorf("error finalizing archive: %w", err)
	}

	return written, nil
}

func (s *batchServiceImpl) addArchiveEntry(zw *zip.Writer, report models.GeneratedReport) error {
	src, err := s.storage.Open(report.DocumentPath)
	if err != nil {
		return err
	}
	defer src.Close()

	entry, err := zw.Create(report.ID + ".pdf")
	if err != nil {
		return err
	}

	_, err = io.Copy(entry, src)
	return err
}
