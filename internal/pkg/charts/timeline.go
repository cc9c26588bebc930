package charts

import (
	"fmt"
	"strings"
)

// TimelineEntry is one milestone box on the goal timeline.
type TimelineEntry struct {
	Title    string
	Date     string
	Subtitle string
}

const (
	timelineBoxWidth  = 150.0
	timelineBoxHeight = 64.0
	timelineGap       = 30.0
	timelineHeight    = 220
	timelineMargin    = 20.0
)

// MilestoneTimeline renders milestone boxes alternating above and below a
// horizontal baseline, in input (chronological) order, connected by
// directional arrows.
func MilestoneTimeline(entries []TimelineEntry) string {
	n := len(entries)
	width := int(2*timelineMargin + float64(n)*timelineBoxWidth + float64(max(n-1, 0))*timelineGap)
	if n == 0 {
		width = int(2*timelineMargin + timelineBoxWidth)
	}
	baseline := float64(timelineHeight) / 2

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		width, timelineHeight, width, timelineHeight)
	b.WriteString("\n")
	b.WriteString(`<defs><marker id="arrow" markerWidth="8" markerHeight="8" refX="7" refY="3" orient="auto"><path d="M0,0 L7,3 L0,6 z" fill="#757575"/></marker></defs>`)
	b.WriteString("\n")

	fmt.Fprintf(&b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#bdbdbd" stroke-width="2"/>`,
		f(timelineMargin), f(baseline), f(float64(width)-timelineMargin), f(baseline))
	b.WriteString("\n")

	for i, e := range entries {
		x := timelineMargin + float64(i)*(timelineBoxWidth+timelineGap)
		cx := x + timelineBoxWidth/2

		// Alternate above/below the baseline per chronological entry.
		var boxY float64
		if i%2 == 0 {
			boxY = baseline - timelineBoxHeight - 18
		} else {
			boxY = baseline + 18
		}

		// Connector from baseline to box.
		var connY1, connY2 float64
		if i%2 == 0 {
			connY1, connY2 = baseline, boxY+timelineBoxHeight
		} else {
			connY1, connY2 = baseline, boxY
		}
		fmt.Fprintf(&b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#bdbdbd" stroke-width="1"/>`,
			f(cx), f(connY1), f(cx), f(connY2))
		b.WriteString("\n")
		fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="4" fill="#1e88e5"/>`, f(cx), f(baseline))
		b.WriteString("\n")

		fmt.Fprintf(&b, `<rect x="%s" y="%s" width="%s" height="%s" rx="6" fill="#fff" stroke="#1e88e5" stroke-width="1.5"/>`,
			f(x), f(boxY), f(timelineBoxWidth), f(timelineBoxHeight))
		b.WriteString("\n")
		fmt.Fprintf(&b, `<text x="%s" y="%s" font-size="12" font-weight="bold" fill="#333" text-anchor="middle">%s</text>`,
			f(cx), f(boxY+18), escapeText(truncate(e.Title, 20)))
		b.WriteString("\n")
		fmt.Fprintf(&b, `<text x="%s" y="%s" font-size="10" fill="#1e88e5" text-anchor="middle">%s</text>`,
			f(cx), f(boxY+34), escapeText(e.Date))
		b.WriteString("\n")
		if e.Subtitle != "" {
			fmt.Fprintf(&b, `<text x="%s" y="%s" font-size="10" fill="#666" text-anchor="middle">%s</text>`,
				f(cx), f(boxY+50), escapeText(truncate(e.Subtitle, 24)))
			b.WriteString("\n")
		}

		// Directional arrow to the next entry along the baseline.
		if i < n-1 {
			nextCx := cx + timelineBoxWidth + timelineGap
			fmt.Fprintf(&b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#757575" stroke-width="1.5" marker-end="url(#arrow)"/>`,
				f(cx+8), f(baseline), f(nextCx-8), f(baseline))
			b.WriteString("\n")
		}
	}

	b.WriteString("</svg>")
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
