package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	Name        string     `json:"name" db:"name" example:"Nguyen Thi Anh"`
	BirthDate   *time.Time `json:"birthDate,omitempty" db:"birth_date"`
	Nationality string     `json:"nationality" db:"nationality" example:"VN"`
	Phone       string     `json:"phone" db:"phone"`
	Email       string     `json:"email" db:"email"`
	EnrolledAt  time.Time  `json:"enrolledAt" db:"enrolled_at"`
	ClassName   string     `json:"className" db:"class_name" example:"TOPIK-B2"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Attributes []StudentAttribute `json:"attributes,omitempty"`
}

// StudentAttribute is one open-ended key/value entry attached to a student.
// A given (student_id, attr_key) pair is unique.
type StudentAttribute struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	Key       string    `json:"key" db:"attr_key" example:"visa_type"`
	Value     string    `json:"value" db:"attr_value" example:"D-4-1"`
	Encrypted bool      `json:"encrypted" db:"encrypted"`
	Label     string    `json:"label,omitempty" db:"label"` // display label from the attribute definition
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
