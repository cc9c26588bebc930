// Package trend holds the pure score-series analysis behind report
// generation: delta-based pattern classification, sub-score strength and
// weakness detection, and a least-squares score forecast.
package trend

import (
	"math"

	"github.com/jyhan-dev/seodang/internal/app/models"
)

// Pattern classifies the recent direction of a score series.
type Pattern string

const (
	PatternRapidImprovement   Pattern = "rapid_improvement"
	PatternSteadyImprovement  Pattern = "steady_improvement"
	PatternGradualImprovement Pattern = "gradual_improvement"
	PatternStable             Pattern = "stable"
	PatternNeedsSupport       Pattern = "needs_support"
	PatternInsufficientData   Pattern = "insufficient_data"
)

// Confidence buckets the reliability of a forecast by slope magnitude.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Forecast is the regression output for the next exam.
type Forecast struct {
	NextScore  float64    `json:"nextScore"`
	Slope      float64    `json:"slope"`
	Intercept  float64    `json:"intercept"`
	Confidence Confidence `json:"confidence"`
}

// SubScoreSplit labels each sub-skill relative to the latest exam's mean.
type SubScoreSplit struct {
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Balanced   []string `json:"balanced"`
}

// Classify derives the progress pattern from an ascending score series.
// It averages the two most recent deltas (last three points): >10 rapid,
// >5 steady, >0 gradual, 0 stable, negative needs support. Fewer than two
// points cannot be classified.
func Classify(scores []models.ExamScore) Pattern {
	if len(scores) < 2 {
		return PatternInsufficientData
	}

	window := scores
	if len(window) > 3 {
		window = window[len(window)-3:]
	}

	var sum float64
	deltas := 0
	for i := 1; i < len(window); i++ {
		sum += window[i].Total - window[i-1].Total
		deltas++
	}
	avg := sum / float64(deltas)

	switch {
	case avg > 10:
		return PatternRapidImprovement
	case avg > 5:
		return PatternSteadyImprovement
	case avg > 0:
		return PatternGradualImprovement
	case avg == 0:
		return PatternStable
	default:
		return PatternNeedsSupport
	}
}

// subSkillNames in fixed order so output is deterministic.
var subSkillNames = []string{"reading", "listening", "writing"}

// SplitStrengths compares each sub-score of the latest exam against their
// mean. More than 5 points above the mean is a strength, more than 5 below a
// weakness, anything else balanced.
func SplitStrengths(scores []models.ExamScore) SubScoreSplit {
	split := SubScoreSplit{
		Strengths:  []string{},
		Weaknesses: []string{},
		Balanced:   []string{},
	}
	if len(scores) == 0 {
		return split
	}

	latest := scores[len(scores)-1]
	subs := map[string]float64{
		"reading":   latest.Reading,
		"listening": latest.Listening,
		"writing":   latest.Writing,
	}

	mean := (latest.Reading + latest.Listening + latest.Writing) / 3

	for _, name := range subSkillNames {
		v := subs[name]
		switch {
		case v > mean+5:
			split.Strengths = append(split.Strengths, name)
		case v < mean-5:
			split.Weaknesses = append(split.Weaknesses, name)
		default:
			split.Balanced = append(split.Balanced, name)
		}
	}

	return split
}

// PredictNext fits an ordinary least-squares line through total score against
// sequence index 1..n and extrapolates to index n+1. The prediction is
// clamped to the valid score domain.
func PredictNext(scores []models.ExamScore) Forecast {
	n := len(scores)
	if n < 2 {
		return Forecast{Confidence: ConfidenceLow}
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, s := range scores {
		x := float64(i + 1)
		sumX += x
		sumY += s.Total
		sumXY += x * s.Total
		sumXX += x * x
	}

	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return Forecast{Confidence: ConfidenceLow}
	}

	slope := (fn*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / fn

	next := slope*(fn+1) + intercept
	next = math.Max(models.ScoreMin, math.Min(models.ScoreMax, next))

	return Forecast{
		NextScore:  next,
		Slope:      slope,
		Intercept:  intercept,
		Confidence: confidenceFor(slope),
	}
}

func confidenceFor(slope float64) Confidence {
	abs := math.Abs(slope)
	switch {
	case abs > 5:
		return ConfidenceHigh
	case abs > 2:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
