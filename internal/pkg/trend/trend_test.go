package trend

import (
	"testing"

	"github.com/jyhan-dev/seodang/internal/app/models"
)

func seriesOf(totals ...float64) []models.ExamScore {
	scores := make([]models.ExamScore, len(totals))
	for i, t := range totals {
		scores[i] = models.ExamScore{Total: t}
	}
	return scores
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		totals []float64
		want   Pattern
	}{
		{"empty", nil, PatternInsufficientData},
		{"single point", []float64{120}, PatternInsufficientData},
		{"steady improvement over long series", []float64{85, 92, 98, 105, 112, 118, 125, 130}, PatternSteadyImprovement},
		{"rapid improvement", []float64{100, 112, 125}, PatternRapidImprovement},
		{"gradual improvement", []float64{100, 102, 104}, PatternGradualImprovement},
		{"stable", []float64{150, 150, 150}, PatternStable},
		{"needs support", []float64{150, 140, 130}, PatternNeedsSupport},
		{"only recent deltas count", []float64{10, 200, 200, 200}, PatternStable},
		{"two points", []float64{100, 106}, PatternSteadyImprovement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(seriesOf(tt.totals...)); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.totals, got, tt.want)
			}
		})
	}
}

func TestSplitStrengths(t *testing.T) {
	t.Run("empty series yields empty non-nil slices", func(t *testing.T) {
		split := SplitStrengths(nil)
		if split.Strengths == nil || split.Weaknesses == nil || split.Balanced == nil {
			t.Fatal("expected non-nil slices")
		}
		if len(split.Strengths)+len(split.Weaknesses)+len(split.Balanced) != 0 {
			t.Errorf("expected empty split, got %+v", split)
		}
	})

	t.Run("classifies against latest exam mean", func(t *testing.T) {
		scores := []models.ExamScore{
			{Reading: 90, Listening: 90, Writing: 90}, // older exam ignored
			{Reading: 80, Listening: 60, Writing: 70}, // mean 70
		}
		split := SplitStrengths(scores)
		if len(split.Strengths) != 1 || split.Strengths[0] != "reading" {
			t.Errorf("Strengths = %v, want [reading]", split.Strengths)
		}
		if len(split.Weaknesses) != 1 || split.Weaknesses[0] != "listening" {
			t.Errorf("Weaknesses = %v, want [listening]", split.Weaknesses)
		}
		if len(split.Balanced) != 1 || split.Balanced[0] != "writing" {
			t.Errorf("Balanced = %v, want [writing]", split.Balanced)
		}
	})

	t.Run("within five points is balanced", func(t *testing.T) {
		scores := []models.ExamScore{{Reading: 72, Listening: 70, Writing: 68}}
		split := SplitStrengths(scores)
		if len(split.Balanced) != 3 {
			t.Errorf("Balanced = %v, want all three skills", split.Balanced)
		}
	})
}

func TestPredictNext(t *testing.T) {
	t.Run("too few points", func(t *testing.T) {
		f := PredictNext(seriesOf(100))
		if f.Confidence != ConfidenceLow || f.NextScore != 0 {
			t.Errorf("got %+v, want zero forecast with low confidence", f)
		}
	})

	t.Run("perfect linear series", func(t *testing.T) {
		f := PredictNext(seriesOf(100, 110, 120))
		if f.NextScore != 130 {
			t.Errorf("NextScore = %v, want 130", f.NextScore)
		}
		if f.Slope != 10 {
			t.Errorf("Slope = %v, want 10", f.Slope)
		}
		if f.Confidence != ConfidenceHigh {
			t.Errorf("Confidence = %v, want high", f.Confidence)
		}
	})

	t.Run("clamped to score maximum", func(t *testing.T) {
		f := PredictNext(seriesOf(250, 280, 295))
		if f.NextScore > models.ScoreMax {
			t.Errorf("NextScore = %v exceeds maximum %v", f.NextScore, models.ScoreMax)
		}
	})

	t.Run("clamped to score minimum", func(t *testing.T) {
		f := PredictNext(seriesOf(40, 20, 5))
		if f.NextScore < models.ScoreMin {
			t.Errorf("NextScore = %v below minimum %v", f.NextScore, models.ScoreMin)
		}
	})

	t.Run("flat series has low confidence", func(t *testing.T) {
		f := PredictNext(seriesOf(150, 151, 150, 151))
		if f.Confidence != ConfidenceLow {
			t.Errorf("Confidence = %v, want low", f.Confidence)
		}
	})

	t.Run("moderate slope has medium confidence", func(t *testing.T) {
		f := PredictNext(seriesOf(100, 103, 106, 109))
		if f.Confidence != ConfidenceMedium {
			t.Errorf("Confidence = %v, want medium", f.Confidence)
		}
	})
}

func TestPredictNextMonotonicInput(t *testing.T) {
	// A rising series must never predict below its latest score by more than
	// the fitted noise; sanity-check the forecast stays above the series start.
	f := PredictNext(seriesOf(85, 92, 98, 105, 112, 118, 125, 130))
	if f.NextScore <= 85 {
		t.Errorf("NextScore = %v, expected above series start", f.NextScore)
	}
	if f.Slope <= 0 {
		t.Errorf("Slope = %v, expected positive", f.Slope)
	}
}
