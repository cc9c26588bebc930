package charts

import (
	"strings"
	"testing"
)

func TestScoreChartDeterministic(t *testing.T) {
	points := []ScorePoint{
		{Label: "03/15", Value: 112},
		{Label: "04/19", Value: 118.5},
		{Label: "05/17", Value: 125},
	}

	first := ScoreChart(points, ScoreChartOptions{})
	second := ScoreChart(points, ScoreChartOptions{})
	if first != second {
		t.Fatal("same input produced different SVG output")
	}
}

func TestScoreChart(t *testing.T) {
	t.Run("empty series still renders a frame", func(t *testing.T) {
		svg := ScoreChart(nil, ScoreChartOptions{})
		if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
			t.Fatal("output is not a complete SVG document")
		}
		if strings.Contains(svg, "<polyline") {
			t.Error("empty series should not draw a score line")
		}
		// Threshold line is always present.
		if !strings.Contains(svg, "stroke-dasharray") {
			t.Error("threshold line missing")
		}
	})

	t.Run("one circle and value label per point", func(t *testing.T) {
		points := []ScorePoint{{Label: "a", Value: 112}, {Label: "b", Value: 118.5}}
		svg := ScoreChart(points, ScoreChartOptions{})
		if got := strings.Count(svg, "<circle"); got != 2 {
			t.Errorf("circle count = %d, want 2", got)
		}
		if !strings.Contains(svg, ">112.0</text>") || !strings.Contains(svg, ">118.5</text>") {
			t.Error("value labels missing")
		}
	})

	t.Run("out-of-domain values are clamped into the plot", func(t *testing.T) {
		svg := ScoreChart([]ScorePoint{{Value: 9999}}, ScoreChartOptions{})
		if !strings.Contains(svg, `cy="20.0"`) {
			t.Error("overflowing value not clamped to the top of the plot")
		}
	})

	t.Run("labels are XML-escaped", func(t *testing.T) {
		svg := ScoreChart([]ScorePoint{{Label: "<3>", Value: 100}}, ScoreChartOptions{})
		if strings.Contains(svg, "><3></text>") {
			t.Error("label not escaped")
		}
		if !strings.Contains(svg, "&lt;3&gt;") {
			t.Error("escaped label missing")
		}
	})

	t.Run("custom geometry respected", func(t *testing.T) {
		svg := ScoreChart(nil, ScoreChartOptions{Width: 400, Height: 200})
		if !strings.Contains(svg, `width="400" height="200"`) {
			t.Error("custom dimensions not applied")
		}
	})
}

func TestMilestoneTimeline(t *testing.T) {
	entries := []TimelineEntry{
		{Title: "TOPIK 4", Date: "2025-10-12", Subtitle: "응시 예정"},
		{Title: "TOPIK 5", Date: "2026-04-12"},
		{Title: "대학 입학", Date: "2027-03-01", Subtitle: "달성"},
	}

	t.Run("deterministic", func(t *testing.T) {
		if MilestoneTimeline(entries) != MilestoneTimeline(entries) {
			t.Fatal("same input produced different SVG output")
		}
	})

	t.Run("one box per entry, arrows between", func(t *testing.T) {
		svg := MilestoneTimeline(entries)
		if got := strings.Count(svg, "<rect"); got != 3 {
			t.Errorf("rect count = %d, want 3", got)
		}
		if got := strings.Count(svg, `marker-end="url(#arrow)"`); got != 2 {
			t.Errorf("arrow count = %d, want 2", got)
		}
	})

	t.Run("entries alternate above and below the baseline", func(t *testing.T) {
		svg := MilestoneTimeline(entries[:2])
		// First box sits above (y < baseline 110), second below.
		if !strings.Contains(svg, `y="28.0"`) {
			t.Error("first box not above the baseline")
		}
		if !strings.Contains(svg, `y="128.0"`) {
			t.Error("second box not below the baseline")
		}
	})

	t.Run("empty input renders an empty frame", func(t *testing.T) {
		svg := MilestoneTimeline(nil)
		if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
			t.Fatal("output is not a complete SVG document")
		}
		if strings.Contains(svg, "<rect") {
			t.Error("unexpected boxes for empty input")
		}
	})

	t.Run("long titles are truncated", func(t *testing.T) {
		long := strings.Repeat("가", 40)
		svg := MilestoneTimeline([]TimelineEntry{{Title: long, Date: "2025-01-01"}})
		if strings.Contains(svg, long) {
			t.Error("long title not truncated")
		}
		if !strings.Contains(svg, "…") {
			t.Error("truncation marker missing")
		}
	})
}
