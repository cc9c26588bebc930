package models

import "time"

// DateRange bounds the exam/consultation history pulled into a report.
// A nil bound means unbounded on that side.
type DateRange struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// StudentReportView is the unified read-only snapshot assembled for one
// report generation. Non-essential collections may be empty when their source
// tables were unreadable; only the student itself is mandatory.
type StudentReportView struct {
	Student    *Student           `json:"student"`
	Attributes []StudentAttribute `json:"attributes"`

	// ScoresAsc is the full in-range history in ascending exam date order,
	// as required by the trend analyzer. RecentScores is the bounded
	// most-recent-first slice used for display.
	ScoresAsc    []ExamScore `json:"scoresAsc"`
	RecentScores []ExamScore `json:"recentScores"`

	// Consultations are bounded, most recent first. The head entry is the
	// primary evaluation source in merge resolution.
	Consultations []Consultation     `json:"consultations"`
	Evaluation    *StudentEvaluation `json:"evaluation"`
	Goals         []StudentGoal      `json:"goals"`

	Language    string    `json:"language"`
	Range       DateRange `json:"range"`
	AssembledAt time.Time `json:"assembledAt"`
}
