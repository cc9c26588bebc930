package models

import "time"

// ReportTemplate is a named, versioned HTML document template. The body
// contains {{placeholder}} tokens substituted at render time. Conditional or
// loop markup that may remain in older template bodies is not evaluated; the
// renderer strips anything it cannot bind (see templating.Render).
type ReportTemplate struct {
	ID        int64     `json:"id" db:"id"`
	Code      string    `json:"code" db:"code" example:"monthly_progress"`
	Name      string    `json:"name" db:"name"`
	Version   int       `json:"version" db:"version"`
	Language  string    `json:"language" db:"language" example:"ko"`
	Body      string    `json:"-" db:"body"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
