package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jyhan-dev/seodang/internal/app/models"
	"github.com/jyhan-dev/seodang/internal/pkg/charts"
	"github.com/jyhan-dev/seodang/internal/pkg/trend"
)

// Localized display labels. Korean is the primary report language; anything
// else falls back to English.
var patternLabels = map[string]map[trend.Pattern]string{
	"ko": {
		trend.PatternRapidImprovement:   "급격한 향상",
		trend.PatternSteadyImprovement:  "꾸준한 향상",
		trend.PatternGradualImprovement: "점진적 향상",
		trend.PatternStable:             "유지",
		trend.PatternNeedsSupport:       "지원 필요",
		trend.PatternInsufficientData:   "데이터 부족",
	},
	"en": {
		trend.PatternRapidImprovement:   "Rapid improvement",
		trend.PatternSteadyImprovement:  "Steady improvement",
		trend.PatternGradualImprovement: "Gradual improvement",
		trend.PatternStable:             "Stable",
		trend.PatternNeedsSupport:       "Needs support",
		trend.PatternInsufficientData:   "Insufficient data",
	},
}

var skillLabels = map[string]map[string]string{
	"ko": {"reading": "읽기", "listening": "듣기", "writing": "쓰기"},
	"en": {"reading": "Reading", "listening": "Listening", "writing": "Writing"},
}

var confidenceLabels = map[string]map[trend.Confidence]string{
	"ko": {trend.ConfidenceHigh: "높음", trend.ConfidenceMedium: "보통", trend.ConfidenceLow: "낮음"},
	"en": {trend.ConfidenceHigh: "High", trend.ConfidenceMedium: "Medium", trend.ConfidenceLow: "Low"},
}

func normalizeLang(lang string) string {
	if _, ok := patternLabels[lang]; ok {
		return lang
	}
	return "en"
}

func formatDate(t time.Time, lang string) string {
	if lang == "ko" {
		return t.Format("2006년 01월 02일")
	}
	return t.Format("Jan 2, 2006")
}

// maskedAttributeValue hides encrypted attribute values on rendered reports;
// decryption stays with the auth layer, outside this pipeline.
const maskedAttributeValue = "****"

// buildBindings flattens the aggregate view, trend analysis, merged
// evaluations and chart markup into the placeholder map consumed by
// templating.Render. Every value is already a display string.
func buildBindings(view *models.StudentReportView) map[string]string {
	lang := normalizeLang(view.Language)
	values := make(map[string]string)

	// Student core fields
	student := view.Student
	values["student_name"] = student.Name
	values["student_class"] = student.ClassName
	values["student_nationality"] = student.Nationality
	values["student_email"] = student.Email
	values["student_phone"] = student.Phone
	values["enrolled_at"] = formatDate(student.EnrolledAt, lang)
	if student.BirthDate != nil {
		values["birth_date"] = formatDate(*student.BirthDate, lang)
	}

	// Open-ended attributes, keyed attr_<key>
	for _, attr := range view.Attributes {
		v := attr.Value
		if attr.Encrypted {
			v = maskedAttributeValue
		}
		values["attr_"+attr.Key] = v
	}

	// Report period
	values["report_date"] = formatDate(view.AssembledAt, lang)
	if view.Range.From != nil {
		values["period_from"] = formatDate(*view.Range.From, lang)
	}
	if view.Range.To != nil {
		values["period_to"] = formatDate(*view.Range.To, lang)
	}

	// Trend analysis over the ascending series
	pattern := trend.Classify(view.ScoresAsc)
	values["score_pattern"] = string(pattern)
	values["score_pattern_label"] = patternLabels[lang][pattern]

	forecast := trend.PredictNext(view.ScoresAsc)
	values["predicted_score"] = strconv.FormatFloat(forecast.NextScore, 'f', 0, 64)
	values["prediction_confidence"] = confidenceLabels[lang][forecast.Confidence]

	split := trend.SplitStrengths(view.ScoresAsc)
	values["skill_strengths"] = joinSkills(split.Strengths, lang)
	values["skill_weaknesses"] = joinSkills(split.Weaknesses, lang)

	if n := len(view.ScoresAsc); n > 0 {
		latest := view.ScoresAsc[n-1]
		values["latest_score"] = strconv.FormatFloat(latest.Total, 'f', 0, 64)
		values["latest_level"] = latest.Level
		values["latest_exam_date"] = formatDate(latest.ExamDate, lang)
	}

	// Merged evaluation fields
	for field, value := range ResolveEvaluations(view.Consultations, view.Evaluation) {
		values[field] = value
	}

	// Latest consultation summary
	if len(view.Consultations) > 0 {
		latest := view.Consultations[0]
		values["last_consultation_date"] = formatDate(latest.ConsultedAt, lang)
		values["last_consultation_content"] = latest.Content
	}

	// Visualizations
	values["score_chart"] = charts.ScoreChart(scorePoints(view.ScoresAsc), charts.ScoreChartOptions{})
	values["goal_timeline"] = charts.MilestoneTimeline(timelineEntries(view.Goals, lang))
	values["recent_score_rows"] = recentScoreRows(view.RecentScores, lang)

	return values
}

func joinSkills(names []string, lang string) string {
	if len(names) == 0 {
		return ""
	}
	labels := make([]string, len(names))
	for i, name := range names {
		labels[i] = skillLabels[lang][name]
	}
	return strings.Join(labels, ", ")
}

func scorePoints(scores []models.ExamScore) []charts.ScorePoint {
	points := make([]charts.ScorePoint, len(scores))
	for i, s := range scores {
		points[i] = charts.ScorePoint{
			Label: s.ExamDate.Format("01/02"),
			Value: s.Total,
		}
	}
	return points
}

func timelineEntries(goals []models.StudentGoal, lang string) []charts.TimelineEntry {
	entries := make([]charts.TimelineEntry, len(goals))
	for i, g := range goals {
		subtitle := g.Description
		if g.Achieved {
			if lang == "ko" {
				subtitle = "달성"
			} else {
				subtitle = "Achieved"
			}
		}
		entries[i] = charts.TimelineEntry{
			Title:    g.Title,
			Date:     formatDate(g.TargetDate, lang),
			Subtitle: subtitle,
		}
	}
	return entries
}

// recentScoreRows renders the most-recent-first score slice as table rows
// for the report's score history section.
func recentScoreRows(scores []models.ExamScore, lang string) string {
	var b strings.Builder
	for _, s := range scores {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			formatDate(s.ExamDate, lang),
			strconv.FormatFloat(s.Total, 'f', 0, 64),
			strconv.FormatFloat(s.Reading, 'f', 0, 64),
			strconv.FormatFloat(s.Listening, 'f', 0, 64),
			strconv.FormatFloat(s.Writing, 'f', 0, 64),
			s.Level,
		)
	}
	return b.String()
}
