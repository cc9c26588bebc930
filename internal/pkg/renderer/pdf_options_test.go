package renderer

import (
	"strings"
	"testing"
)

func TestPrintParams(t *testing.T) {
	t.Run("fixed A4 geometry", func(t *testing.T) {
		p := printParams(false)
		if p.PaperWidth != 8.27 || p.PaperHeight != 11.69 {
			t.Errorf("paper = %vx%v, want 8.27x11.69", p.PaperWidth, p.PaperHeight)
		}
		for name, m := range map[string]float64{
			"top": p.MarginTop, "bottom": p.MarginBottom,
			"left": p.MarginLeft, "right": p.MarginRight,
		} {
			if m != 0.4 {
				t.Errorf("margin %s = %v, want 0.4", name, m)
			}
		}
		if !p.PrintBackground {
			t.Error("PrintBackground should be set")
		}
		if p.PreferCSSPageSize {
			t.Error("PreferCSSPageSize should be off")
		}
	})

	t.Run("footer enabled", func(t *testing.T) {
		p := printParams(true)
		if !p.DisplayHeaderFooter {
			t.Fatal("DisplayHeaderFooter should be set")
		}
		if !strings.Contains(p.FooterTemplate, `class="pageNumber"`) ||
			!strings.Contains(p.FooterTemplate, `class="totalPages"`) {
			t.Errorf("footer template lacks page counters: %q", p.FooterTemplate)
		}
		// Header must be blanked or Chrome prints its default title line.
		if p.HeaderTemplate == "" {
			t.Error("header template should suppress the default header")
		}
	})

	t.Run("footer disabled", func(t *testing.T) {
		p := printParams(false)
		if p.DisplayHeaderFooter {
			t.Error("DisplayHeaderFooter should be off")
		}
		if p.FooterTemplate != "" {
			t.Errorf("unexpected footer template %q", p.FooterTemplate)
		}
	})
}

func TestNewEngineDefaults(t *testing.T) {
	e := NewEngine(Options{})
	if e.opts.RenderTimeout <= 0 {
		t.Error("render timeout default not applied")
	}

	// Close on a never-started engine must be a no-op.
	e.Close()
}
