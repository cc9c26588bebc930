package models

import "time"

// StudentGoal is one milestone in a student's goal history, rendered on the
// report timeline in chronological order.
type StudentGoal struct {
	ID          int64      `json:"id" db:"id"`
	StudentID   int64      `json:"studentId" db:"student_id"`
	TargetDate  time.Time  `json:"targetDate" db:"target_date"`
	Title       string     `json:"title" db:"title" example:"TOPIK Level 4"`
	Description string     `json:"description" db:"description"`
	Achieved    bool       `json:"achieved" db:"achieved"`
	AchievedAt  *time.Time `json:"achievedAt,omitempty" db:"achieved_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}
