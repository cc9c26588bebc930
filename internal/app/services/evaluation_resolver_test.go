package services

import (
	"testing"

	"github.com/jyhan-dev/seodang/internal/app/models"
)

func strPtr(s string) *string { return &s }

func TestResolveField(t *testing.T) {
	dedicated := &models.StudentEvaluation{
		AcademicEvaluation: strPtr("from table"),
		Recommendation:     strPtr("table recommendation"),
	}

	tests := []struct {
		name      string
		primary   map[string]interface{}
		secondary map[string]interface{}
		dedicated *models.StudentEvaluation
		field     string
		want      string
	}{
		{
			name:      "nested payload wins over everything",
			primary:   map[string]interface{}{"academic_evaluation": "from nested"},
			secondary: map[string]interface{}{"academic_evaluation": "from top level"},
			dedicated: dedicated,
			field:     models.FieldAcademicEvaluation,
			want:      "from nested",
		},
		{
			name:      "top level wins over dedicated",
			secondary: map[string]interface{}{"academic_evaluation": "from top level"},
			dedicated: dedicated,
			field:     models.FieldAcademicEvaluation,
			want:      "from top level",
		},
		{
			name:      "dedicated column is the fallback",
			dedicated: dedicated,
			field:     models.FieldAcademicEvaluation,
			want:      "from table",
		},
		{
			name:      "absent everywhere resolves empty",
			dedicated: dedicated,
			field:     models.FieldWeaknesses,
			want:      "",
		},
		{
			name:      "explicit empty string wins over fallback",
			primary:   map[string]interface{}{"recommendation": ""},
			dedicated: dedicated,
			field:     models.FieldRecommendation,
			want:      "",
		},
		{
			name:      "null value is absent, not empty",
			primary:   map[string]interface{}{"recommendation": nil},
			dedicated: dedicated,
			field:     models.FieldRecommendation,
			want:      "table recommendation",
		},
		{
			name:    "numeric payload value is coerced",
			primary: map[string]interface{}{"strengths": float64(3)},
			field:   models.FieldStrengths,
			want:    "3",
		},
		{
			name:  "nil dedicated row is safe",
			field: models.FieldAcademicEvaluation,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveField(tt.field, tt.primary, tt.secondary, tt.dedicated)
			if got != tt.want {
				t.Errorf("ResolveField(%s) = %q, want %q", tt.field, got, tt.want)
			}
		})
	}
}

func TestResolveEvaluations(t *testing.T) {
	dedicated := &models.StudentEvaluation{
		AcademicEvaluation: strPtr("table academic"),
		KoreanEvaluation:   strPtr("table korean"),
	}

	t.Run("latest consultation payload takes precedence", func(t *testing.T) {
		consultations := []models.Consultation{
			{ID: 2, ActionItems: []byte(`{"korean_evaluation":"top level korean","evaluations":{"academic_evaluation":"nested academic"}}`)},
			{ID: 1, ActionItems: []byte(`{"evaluations":{"academic_evaluation":"older, ignored"}}`)},
		}

		resolved := ResolveEvaluations(consultations, dedicated)
		if got := resolved[models.FieldAcademicEvaluation]; got != "nested academic" {
			t.Errorf("academic = %q, want nested academic", got)
		}
		if got := resolved[models.FieldKoreanEvaluation]; got != "top level korean" {
			t.Errorf("korean = %q, want top level korean", got)
		}
	})

	t.Run("malformed payload degrades to dedicated row", func(t *testing.T) {
		consultations := []models.Consultation{
			{ID: 3, ActionItems: []byte(`{not json`)},
		}

		resolved := ResolveEvaluations(consultations, dedicated)
		if got := resolved[models.FieldAcademicEvaluation]; got != "table academic" {
			t.Errorf("academic = %q, want table academic", got)
		}
	})

	t.Run("no consultations at all", func(t *testing.T) {
		resolved := ResolveEvaluations(nil, dedicated)
		if got := resolved[models.FieldKoreanEvaluation]; got != "table korean" {
			t.Errorf("korean = %q, want table korean", got)
		}
		if got := resolved[models.FieldRecommendation]; got != "" {
			t.Errorf("recommendation = %q, want empty", got)
		}
	})

	t.Run("every canonical field gets a key", func(t *testing.T) {
		resolved := ResolveEvaluations(nil, nil)
		if len(resolved) != len(models.EvaluationFields) {
			t.Errorf("len(resolved) = %d, want %d", len(resolved), len(models.EvaluationFields))
		}
	})
}
