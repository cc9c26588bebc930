package services

import (
	"strings"
	"testing"
	"time"

	"github.com/jyhan-dev/seodang/internal/app/models"
)

func testView(lang string) *models.StudentReportView {
	day := func(d int) time.Time {
		return time.Date(2026, 5, d, 0, 0, 0, 0, time.UTC)
	}
	scores := []models.ExamScore{
		{ExamDate: day(1), Total: 100, Reading: 40, Listening: 30, Writing: 30, Level: "2"},
		{ExamDate: day(15), Total: 110, Reading: 45, Listening: 32, Writing: 33, Level: "2"},
		{ExamDate: day(29), Total: 120, Reading: 50, Listening: 34, Writing: 36, Level: "3"},
	}
	return &models.StudentReportView{
		Student: &models.Student{
			Name:        "김하늘",
			ClassName:   "TOPIK-B2",
			Nationality: "VN",
			EnrolledAt:  day(1),
		},
		Attributes: []models.StudentAttribute{
			{Key: "visa_type", Value: "D-4-1"},
			{Key: "passport_no", Value: "M1234567", Encrypted: true},
		},
		ScoresAsc:    scores,
		RecentScores: []models.ExamScore{scores[2], scores[1]},
		Consultations: []models.Consultation{
			{ID: 2, ConsultedAt: day(20), Content: "상담 내용"},
		},
		Goals: []models.StudentGoal{
			{Title: "TOPIK 4", TargetDate: day(30), Description: "준비 중"},
		},
		Language:    lang,
		AssembledAt: day(31),
	}
}

func TestBuildBindings(t *testing.T) {
	t.Run("core fields and localized dates", func(t *testing.T) {
		values := buildBindings(testView("ko"))

		if values["student_name"] != "김하늘" {
			t.Errorf("student_name = %q", values["student_name"])
		}
		if values["report_date"] != "2026년 05월 31일" {
			t.Errorf("report_date = %q", values["report_date"])
		}
		if values["latest_score"] != "120" || values["latest_level"] != "3" {
			t.Errorf("latest = %q level %q", values["latest_score"], values["latest_level"])
		}
	})

	t.Run("encrypted attributes are masked", func(t *testing.T) {
		values := buildBindings(testView("ko"))
		if values["attr_visa_type"] != "D-4-1" {
			t.Errorf("attr_visa_type = %q", values["attr_visa_type"])
		}
		if values["attr_passport_no"] != "****" {
			t.Errorf("attr_passport_no = %q, want masked", values["attr_passport_no"])
		}
	})

	t.Run("trend fields are localized", func(t *testing.T) {
		values := buildBindings(testView("ko"))
		// Deltas of 10 and 10 average to exactly 10, which is steady, not rapid.
		if values["score_pattern"] != "steady_improvement" {
			t.Errorf("score_pattern = %q", values["score_pattern"])
		}
		if values["score_pattern_label"] != "꾸준한 향상" {
			t.Errorf("score_pattern_label = %q", values["score_pattern_label"])
		}
		if values["prediction_confidence"] != "높음" {
			t.Errorf("prediction_confidence = %q", values["prediction_confidence"])
		}
	})

	t.Run("unknown language falls back to English labels", func(t *testing.T) {
		values := buildBindings(testView("xx"))
		if values["report_date"] != "May 31, 2026" {
			t.Errorf("report_date = %q", values["report_date"])
		}
	})

	t.Run("charts and score rows are embedded", func(t *testing.T) {
		values := buildBindings(testView("ko"))
		if !strings.HasPrefix(values["score_chart"], "<svg") {
			t.Error("score_chart is not SVG markup")
		}
		if !strings.HasPrefix(values["goal_timeline"], "<svg") {
			t.Error("goal_timeline is not SVG markup")
		}
		if got := strings.Count(values["recent_score_rows"], "<tr>"); got != 2 {
			t.Errorf("recent_score_rows has %d rows, want 2", got)
		}
	})

	t.Run("every evaluation field is bound", func(t *testing.T) {
		values := buildBindings(testView("ko"))
		for _, field := range models.EvaluationFields {
			if _, ok := values[field]; !ok {
				t.Errorf("missing binding for %s", field)
			}
		}
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		a := buildBindings(testView("ko"))
		b := buildBindings(testView("ko"))
		for k, v := range a {
			if b[k] != v {
				t.Errorf("binding %s differs between runs", k)
			}
		}
	})

	t.Run("empty collections bind safely", func(t *testing.T) {
		view := testView("ko")
		view.ScoresAsc = nil
		view.RecentScores = nil
		view.Consultations = nil
		view.Goals = nil

		values := buildBindings(view)
		if _, ok := values["latest_score"]; ok {
			t.Error("latest_score should be absent without scores")
		}
		if !strings.HasPrefix(values["score_chart"], "<svg") {
			t.Error("empty score series should still render a chart frame")
		}
	})
}

func TestNormalizeLang(t *testing.T) {
	if normalizeLang("ko") != "ko" || normalizeLang("en") != "en" {
		t.Error("supported languages must pass through")
	}
	if normalizeLang("ja") != "en" || normalizeLang("") != "en" {
		t.Error("unsupported languages must fall back to en")
	}
}
