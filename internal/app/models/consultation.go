package models

import "time"

// Consultation is one counseling session record. ActionItems holds the raw
// JSONB payload; it is semi-structured and may embed evaluation fields that
// take precedence over the dedicated evaluation table (see services.ResolveEvaluations).
type Consultation struct {
	ID          int64     `json:"id" db:"id"`
	StudentID   int64     `json:"studentId" db:"student_id"`
	ConsultedAt time.Time `json:"consultedAt" db:"consulted_at"`
	CounselorID int64     `json:"counselorId" db:"counselor_id"`
	Content     string    `json:"content" db:"content"`
	ActionItems []byte    `json:"-" db:"action_items"` // raw JSONB, parsed lazily
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
