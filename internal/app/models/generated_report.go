package models

import "time"

// ReportStatus is the lifecycle state of a generated report artifact.
type ReportStatus string

const (
	// ReportStatusGenerating is the initial state, created before rendering starts.
	ReportStatusGenerating ReportStatus = "generating"
	// ReportStatusCompleted means the document was rendered and persisted.
	ReportStatusCompleted ReportStatus = "completed"
	// ReportStatusFailed means rendering aborted; ErrorMessage carries the cause.
	ReportStatusFailed ReportStatus = "failed"
	// ReportStatusArchived is a terminal state reached from completed, either
	// manually or by expiry.
	ReportStatusArchived ReportStatus = "archived"
)

// GeneratedReport is one render attempt. Rows are created when a render
// starts, mutated only through ReportRepository state transitions, and never
// deleted.
type GeneratedReport struct {
	ID               string       `json:"reportId" db:"id"`
	StudentID        int64        `json:"studentId" db:"student_id"`
	TemplateID       int64        `json:"templateId" db:"template_id"`
	Status           ReportStatus `json:"status" db:"status"`
	DocumentPath     string       `json:"documentPath" db:"document_path"`
	MarkupPath       string       `json:"markupPath" db:"markup_path"`
	FileSizeBytes    int64        `json:"fileSizeBytes" db:"file_size_bytes"`
	ContentHash      string       `json:"contentHash" db:"content_hash"`
	GenerationTimeMs int64        `json:"generationTimeMs" db:"generation_time_ms"`
	ErrorMessage     string       `json:"errorMessage,omitempty" db:"error_message"`
	AccessCount      int64        `json:"accessCount" db:"access_count"`
	LastAccessedAt   *time.Time   `json:"lastAccessedAt,omitempty" db:"last_accessed_at"`
	ExpiresAt        *time.Time   `json:"expiresAt,omitempty" db:"expires_at"`
	RequestedBy      int64        `json:"requestedBy" db:"requested_by"`
	CreatedAt        time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time    `json:"updatedAt" db:"updated_at"`
}
