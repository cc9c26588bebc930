package models

import "time"

// Score domain bounds for TOPIK-style exams. Totals live in [0,300],
// each sub-score in [0,100].
const (
	ScoreMin = 0
	ScoreMax = 300

	// PassThreshold is the level-3 line emphasized on score charts.
	PassThreshold = 120
)

// ExamScore represents one mock-exam result for a student.
// The trend analyzer consumes these in ascending date order.
type ExamScore struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	ExamDate  time.Time `json:"examDate" db:"exam_date"`
	Total     float64   `json:"total" db:"total_score" example:"142"`
	Reading   float64   `json:"reading" db:"reading_score"`
	Listening float64   `json:"listening" db:"listening_score"`
	Writing   float64   `json:"writing" db:"writing_score"`
	Level     string    `json:"level" db:"level" example:"3"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// LevelForTotal derives the TOPIK level label from a total score.
func LevelForTotal(total float64) string {
	switch {
	case total >= 230:
		return "6"
	case total >= 190:
		return "5"
	case total >= 150:
		return "4"
	case total >= PassThreshold:
		return "3"
	case total >= 80:
		return "2"
	default:
		return "1"
	}
}
