package models

import "time"

// Canonical evaluation field names. These are the keys looked up in a
// consultation's action_items payload and the columns of student_evaluations.
const (
	FieldAcademicEvaluation   = "academic_evaluation"
	FieldKoreanEvaluation     = "korean_evaluation"
	FieldAdaptationEvaluation = "adaptation_evaluation"
	FieldStrengths            = "strengths"
	FieldWeaknesses           = "weaknesses"
	FieldRecommendation       = "recommendation"
)

// EvaluationFields lists all canonical fields in stable resolution order.
var EvaluationFields = []string{
	FieldAcademicEvaluation,
	FieldKoreanEvaluation,
	FieldAdaptationEvaluation,
	FieldStrengths,
	FieldWeaknesses,
	FieldRecommendation,
}

// StudentEvaluation is the dedicated one-row-per-student evaluation table.
// It is the durable fallback when no consultation payload carries a field.
type StudentEvaluation struct {
	ID                   int64     `json:"id" db:"id"`
	StudentID            int64     `json:"studentId" db:"student_id"`
	AcademicEvaluation   *string   `json:"academicEvaluation" db:"academic_evaluation"`
	KoreanEvaluation     *string   `json:"koreanEvaluation" db:"korean_evaluation"`
	AdaptationEvaluation *string   `json:"adaptationEvaluation" db:"adaptation_evaluation"`
	Strengths            *string   `json:"strengths" db:"strengths"`
	Weaknesses           *string   `json:"weaknesses" db:"weaknesses"`
	Recommendation       *string   `json:"recommendation" db:"recommendation"`
	UpdatedAt            time.Time `json:"updatedAt" db:"updated_at"`
}

// Field returns the column value for a canonical field name, or nil when
// the column is NULL or the name is unknown.
func (e *StudentEvaluation) Field(name string) *string {
	if e == nil {
		return nil
	}
	switch name {
	case FieldAcademicEvaluation:
		return e.AcademicEvaluation
	case FieldKoreanEvaluation:
		return e.KoreanEvaluation
	case FieldAdaptationEvaluation:
		return e.AdaptationEvaluation
	case FieldStrengths:
		return e.Strengths
	case FieldWeaknesses:
		return e.Weaknesses
	case FieldRecommendation:
		return e.Recommendation
	}
	return nil
}
