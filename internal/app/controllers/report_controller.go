package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jyhan-dev/seodang/internal/app/models"
	"github.com/jyhan-dev/seodang/internal/app/models/dto"
	"github.com/jyhan-dev/seodang/internal/app/services"
	"github.com/jyhan-dev/seodang/internal/middleware"
	"github.com/jyhan-dev/seodang/internal/pkg/helpers"
	"github.com/jyhan-dev/seodang/internal/pkg/logger"
)

// ReportController handles report generation and artifact operations
type ReportController struct {
	reportService    services.ReportService
	batchService     services.BatchService
	aggregateService services.AggregateService
}

// NewReportController creates a new ReportController
func NewReportController(
	reportService services.ReportService,
	batchService services.BatchService,
	aggregateService services.AggregateService,
) *ReportController {
	return &ReportController{
		reportService:    reportService,
		batchService:     batchService,
		aggregateService: aggregateService,
	}
}

// GenerateReport handles generating a single student report
// @Summary Generate a student report
// @Description Runs the full pipeline for one student: aggregate, substitute, render, persist
// @Tags reports
// @Accept json
// @Produce json
// @Param request body dto.GenerateReportRequest true "Report generation request"
// @Success 201 {object} dto.APIResponse{data=dto.GenerateReportResponse} "Report generated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 404 {object} dto.ErrorResponse "Student or template not found"
// @Failure 502 {object} dto.ErrorResponse "Document render failed"
// @Failure 503 {object} dto.ErrorResponse "Render engine unavailable"
// @Router /reports [post]
func (c *ReportController) GenerateReport(ctx *gin.Context) {
	var req dto.GenerateReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.reportService.Generate(ctx, &req, middleware.RequesterID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// GenerateBatch handles generating reports for many students sequentially
// @Summary Generate reports in batch
// @Description Processes up to the configured limit of students strictly sequentially; per-item failures are collected, not fatal
// @Tags reports
// @Accept json
// @Produce json
// @Param request body dto.GenerateBatchRequest true "Batch generation request"
// @Success 200 {object} dto.APIResponse{data=dto.BatchResult} "Batch completed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or batch too large"
// @Router /reports/batch [post]
func (c *ReportController) GenerateBatch(ctx *gin.Context) {
	var req dto.GenerateBatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.batchService.GenerateBatch(ctx, &req, middleware.RequesterID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// DownloadArchive streams a zip of existing report documents
// @Summary Download reports as a zip archive
// @Description Streams one zip containing the PDF of every resolvable report; missing files are skipped
// @Tags reports
// @Accept json
// @Produce application/zip
// @Param request body dto.ArchiveRequest true "Report ids to package"
// @Success 200 {file} binary "Zip archive"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Router /reports/archive [post]
func (c *ReportController) DownloadArchive(ctx *gin.Context) {
	var req dto.ArchiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	filename := fmt.Sprintf("reports_%s.zip", time.Now().Format("20060102_150405"))
	ctx.Header("Content-Type", "application/zip")
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	written, err := c.batchService.PackageArchive(ctx, req.ReportIDs, ctx.Writer)
	if err != nil {
		// Headers are already on the wire; all we can do is log and cut the stream.
		logger.Error().Err(err).Int("written", written).Msg("Archive stream aborted")
		ctx.Abort()
		return
	}
}

// GetReport handles retrieving a report artifact record
// @Summary Get report by ID
// @Description Retrieves a report artifact record; counts as an access
// @Tags reports
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} dto.APIResponse{data=models.GeneratedReport} "Report retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Report not found"
// @Router /reports/{id} [get]
func (c *ReportController) GetReport(ctx *gin.Context) {
	report, err := c.reportService.GetReport(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(report))
}

// ListReports handles listing report artifact records
// @Summary List reports
// @Description Pages through report artifact records newest first, optionally filtered by student
// @Tags reports
// @Accept json
// @Produce json
// @Param studentId query int false "Filter by student ID"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10)"
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Reports retrieved successfully"
// @Router /reports [get]
func (c *ReportController) ListReports(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	var studentID *int64
	if idStr := ctx.Query("studentId"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student ID")
			errorDetail = errorDetail.WithDetails("Student ID must be a valid number")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		studentID = &id
	}

	reports, total, err := c.reportService.ListReports(ctx, studentID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PagedResponse{
		Items:      reports,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// ArchiveReport handles manually archiving a completed report
// @Summary Archive a report
// @Description Transitions a completed report artifact to the archived state
// @Tags reports
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Report archived"
// @Failure 404 {object} dto.ErrorResponse "Report not found"
// @Failure 409 {object} dto.ErrorResponse "Report not in a state that can be archived"
// @Router /reports/{id}/archive-state [post]
func (c *ReportController) ArchiveReport(ctx *gin.Context) {
	if err := c.reportService.ArchiveReport(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Report archived"}))
}

// GetStudentReportView handles retrieving the raw aggregate view for a student
// @Summary Get a student's aggregated report view
// @Description Returns the assembled data a report would be built from, without rendering
// @Tags reports
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param from query string false "Period start (RFC 3339)"
// @Param to query string false "Period end (RFC 3339)"
// @Param lang query string false "Report language (ko, en)"
// @Success 200 {object} dto.APIResponse{data=models.StudentReportView} "View assembled successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID or period bound"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/report-view [get]
func (c *ReportController) GetStudentReportView(ctx *gin.Context) {
	studentID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student ID")
		errorDetail = errorDetail.WithDetails("Student ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	dateRange, err := parseDateRange(ctx)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid period bound")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	view, err := c.aggregateService.GetStudentView(ctx, studentID, dateRange, ctx.Query("lang"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(view))
}

func parseDateRange(ctx *gin.Context) (models.DateRange, error) {
	var r models.DateRange
	if fromStr := ctx.Query("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return r, fmt.Errorf("invalid from bound: %w", err)
		}
		r.From = &from
	}
	if toStr := ctx.Query("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return r, fmt.Errorf("invalid to bound: %w", err)
		}
		r.To = &to
	}
	return r, nil
}
