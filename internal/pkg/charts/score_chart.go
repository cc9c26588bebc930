// Package charts renders report visualizations as plain SVG markup. Both
// generators are pure: the same input always produces byte-identical output,
// which the document pipeline relies on for content hashing.
package charts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jyhan-dev/seodang/internal/app/models"
)

// ScorePoint is one plotted exam result.
type ScorePoint struct {
	Label string  // short x-axis label, usually the exam date
	Value float64 // total score
}

// ScoreChartOptions controls chart geometry. Zero values fall back to the
// defaults used by the report templates.
type ScoreChartOptions struct {
	Width     int
	Height    int
	Threshold float64 // emphasized pass/target gridline; <=0 uses models.PassThreshold
}

const (
	defaultChartWidth  = 640
	defaultChartHeight = 360

	chartMarginLeft   = 48.0
	chartMarginRight  = 16.0
	chartMarginTop    = 20.0
	chartMarginBottom = 36.0

	gridStep = 50.0
)

// ScoreChart renders an SVG line/area chart of a score series against fixed
// y-gridlines spanning the valid score domain. X positions are evenly spaced
// by index and every point is labeled with its value.
func ScoreChart(points []ScorePoint, opts ScoreChartOptions) string {
	w := opts.Width
	if w <= 0 {
		w = defaultChartWidth
	}
	h := opts.Height
	if h <= 0 {
		h = defaultChartHeight
	}
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = models.PassThreshold
	}

	plotW := float64(w) - chartMarginLeft - chartMarginRight
	plotH := float64(h) - chartMarginTop - chartMarginBottom

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, w, h, w, h)
	b.WriteString("\n")

	// Fixed gridlines over the score domain, threshold line emphasized.
	for gy := float64(models.ScoreMin); gy <= models.ScoreMax; gy += gridStep {
		y := yFor(gy, plotH)
		fmt.Fprintf(&b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#e0e0e0" stroke-width="1"/>`,
			f(chartMarginLeft), f(y), f(chartMarginLeft+plotW), f(y))
		b.WriteString("\n")
		fmt.Fprintf(&b, `<text x="%s" y="%s" font-size="10" fill="#888" text-anchor="end">%s</text>`,
			f(chartMarginLeft-6), f(y+3), f(gy))
		b.WriteString("\n")
	}
	ty := yFor(threshold, plotH)
	fmt.Fprintf(&b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#e53935" stroke-width="2" stroke-dasharray="6 3"/>`,
		f(chartMarginLeft), f(ty), f(chartMarginLeft+plotW), f(ty))
	b.WriteString("\n")

	if len(points) > 0 {
		xs := make([]float64, len(points))
		ys := make([]float64, len(points))
		for i, p := range points {
			xs[i] = xFor(i, len(points), plotW)
			ys[i] = yFor(clampScore(p.Value), plotH)
		}

		// Filled area under the line.
		var area strings.Builder
		fmt.Fprintf(&area, "%s,%s", f(xs[0]), f(chartMarginTop+plotH))
		for i := range points {
			fmt.Fprintf(&area, " %s,%s", f(xs[i]), f(ys[i]))
		}
		fmt.Fprintf(&area, " %s,%s", f(xs[len(points)-1]), f(chartMarginTop+plotH))
		fmt.Fprintf(&b, `<polygon points="%s" fill="#1e88e5" fill-opacity="0.12"/>`, area.String())
		b.WriteString("\n")

		// Score line.
		var line strings.Builder
		for i := range points {
			if i > 0 {
				line.WriteByte(' ')
			}
			fmt.Fprintf(&line, "%s,%s", f(xs[i]), f(ys[i]))
		}
		fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="#1e88e5" stroke-width="2"/>`, line.String())
		b.WriteString("\n")

		// Points, value labels and x-axis labels.
		for i, p := range points {
			fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="3.5" fill="#1e88e5"/>`, f(xs[i]), f(ys[i]))
			b.WriteString("\n")
			fmt.Fprintf(&b, `<text x="%s" y="%s" font-size="11" fill="#333" text-anchor="middle">%s</text>`,
				f(xs[i]), f(ys[i]-8), f(p.Value))
			b.WriteString("\n")
			if p.Label != "" {
				fmt.Fprintf(&b, `<text x="%s" y="%s" font-size="10" fill="#666" text-anchor="middle">%s</text>`,
					f(xs[i]), f(chartMarginTop+plotH+16), escapeText(p.Label))
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("</svg>")
	return b.String()
}

func xFor(i, n int, plotW float64) float64 {
	if n == 1 {
		return chartMarginLeft + plotW/2
	}
	return chartMarginLeft + plotW*float64(i)/float64(n-1)
}

func yFor(score, plotH float64) float64 {
	frac := (score - models.ScoreMin) / (models.ScoreMax - models.ScoreMin)
	return chartMarginTop + plotH*(1-frac)
}

func clampScore(v float64) float64 {
	if v < models.ScoreMin {
		return models.ScoreMin
	}
	if v > models.ScoreMax {
		return models.ScoreMax
	}
	return v
}

// f formats a coordinate with one fixed decimal so output is stable across
// inputs that differ only in float noise.
func f(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
