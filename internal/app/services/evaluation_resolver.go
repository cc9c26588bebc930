package services

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jyhan-dev/seodang/internal/app/models"
	"github.com/jyhan-dev/seodang/internal/pkg/logger"
)

// The same evaluation fact can live in up to three places: the latest
// consultation's nested "evaluations" payload, a top-level key on that same
// payload (legacy writers), and the dedicated student_evaluations table.
// Resolution picks exactly one canonical value per field with fixed, total
// precedence: nested payload, then top-level payload, then dedicated table,
// then empty.
//
// A value counts as present iff the key exists with a non-null value. An
// explicit empty string is present and overrides a non-empty fallback; that
// is how counselors clear a stale field. Unverified business intent, kept
// as the original system behaves.

// payloadEvaluationsKey is the nested object inside action_items holding the
// primary copy of evaluation fields.
const payloadEvaluationsKey = "evaluations"

// ResolvedEvaluations maps canonical field name to its merged value.
type ResolvedEvaluations map[string]string

// ResolveEvaluations merges evaluation fields from the latest consultation's
// payload and the dedicated evaluation row. consultations must be ordered
// most recent first; only the head entry participates. Malformed payloads
// are logged and treated as absent, never as failures.
func ResolveEvaluations(consultations []models.Consultation, dedicated *models.StudentEvaluation) ResolvedEvaluations {
	var primary, secondary map[string]interface{}

	if len(consultations) > 0 {
		latest := consultations[0]
		payload, err := parseActionItems(latest.ActionItems)
		if err != nil {
			logger.Warn().Err(err).Int64("consultationId", latest.ID).
				Msg("Malformed consultation payload, falling back to dedicated evaluation")
		} else {
			secondary = payload
			if nested, ok := payload[payloadEvaluationsKey].(map[string]interface{}); ok {
				primary = nested
			}
		}
	}

	resolved := make(ResolvedEvaluations, len(models.EvaluationFields))
	for _, field := range models.EvaluationFields {
		resolved[field] = ResolveField(field, primary, secondary, dedicated)
	}
	return resolved
}

// ResolveField applies the precedence chain for one canonical field. Pure
// function of its inputs.
func ResolveField(field string, primary, secondary map[string]interface{}, dedicated *models.StudentEvaluation) string {
	if v, ok := presentValue(primary, field); ok {
		return v
	}
	if v, ok := presentValue(secondary, field); ok {
		return v
	}
	if v := dedicated.Field(field); v != nil {
		return *v
	}
	return ""
}

// presentValue reports whether the field is present in the payload (key
// exists, value non-null) and returns its string coercion.
func presentValue(payload map[string]interface{}, field string) (string, bool) {
	if payload == nil {
		return "", false
	}
	raw, ok := payload[field]
	if !ok || raw == nil {
		return "", false
	}
	return coerceString(raw), true
}

func coerceString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func parseActionItems(raw []byte) (map[string]interface{}, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse action items payload: %w", err)
	}
	return payload, nil
}
