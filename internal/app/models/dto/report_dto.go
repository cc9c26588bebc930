package dto

import (
	"time"

	"github.com/jyhan-dev/seodang/internal/app/models"
)

// GenerateReportRequest is the body of POST /reports
type GenerateReportRequest struct {
	StudentID    int64      `json:"studentId" binding:"required" example:"42"`
	TemplateCode string     `json:"templateCode" binding:"required" example:"monthly_progress"`
	Language     string     `json:"language" example:"ko"`
	From         *time.Time `json:"from,omitempty"`
	To           *time.Time `json:"to,omitempty"`
}

// Range converts the request bounds into a models.DateRange
func (r *GenerateReportRequest) Range() models.DateRange {
	return models.DateRange{From: r.From, To: r.To}
}

// GenerateReportResponse is returned for a successful single render
type GenerateReportResponse struct {
	ReportID         string `json:"reportId"`
	DocumentPath     string `json:"documentPath"`
	MarkupPath       string `json:"markupPath"`
	GenerationTimeMs int64  `json:"generationTimeMs"`
}

// GenerateBatchRequest is the body of POST /reports/batch
type GenerateBatchRequest struct {
	StudentIDs   []int64    `json:"studentIds" binding:"required"`
	TemplateCode string     `json:"templateCode" binding:"required"`
	Language     string     `json:"language" example:"ko"`
	From         *time.Time `json:"from,omitempty"`
	To           *time.Time `json:"to,omitempty"`
}

// BatchItemError records one failed batch item, keyed by student id
type BatchItemError struct {
	StudentID int64  `json:"studentId"`
	Error     string `json:"error"`
}

// BatchResult summarizes a batch run. Successful+Failed always equals Total;
// Results holds one entry per successful item in input order.
type BatchResult struct {
	Total      int                      `json:"total"`
	Successful int                      `json:"successful"`
	Failed     int                      `json:"failed"`
	Results    []GenerateReportResponse `json:"results"`
	Errors     []BatchItemError         `json:"errors"`
}

// ArchiveRequest is the body of POST /reports/archive
type ArchiveRequest struct {
	ReportIDs []string `json:"reportIds" binding:"required"`
}
