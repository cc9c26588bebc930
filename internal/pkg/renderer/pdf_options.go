package renderer

import "github.com/chromedp/cdproto/page"

// A4 paper size in inches, with fixed margins so layout is deterministic
// across renders.
const (
	paperWidthIn  = 8.27
	paperHeightIn = 11.69
	marginIn      = 0.4
)

// footerTemplate is Chrome's print footer markup; pageNumber/totalPages are
// substituted by the browser.
const footerTemplate = `<div style="font-size:8px; width:100%; text-align:center; color:#999;">` +
	`<span class="pageNumber"></span> / <span class="totalPages"></span></div>`

// emptyTemplate suppresses Chrome's default header line.
const emptyTemplate = `<span></span>`

// printParams builds the PDF export parameters. Kept separate from the
// engine so page geometry is unit-testable without a browser.
func printParams(pageFooter bool) *page.PrintToPDFParams {
	params := page.PrintToPDF().
		WithPrintBackground(true).
		WithPreferCSSPageSize(false).
		WithPaperWidth(paperWidthIn).
		WithPaperHeight(paperHeightIn).
		WithMarginTop(marginIn).
		WithMarginBottom(marginIn).
		WithMarginLeft(marginIn).
		WithMarginRight(marginIn)

	if pageFooter {
		params = params.
			WithDisplayHeaderFooter(true).
			WithHeaderTemplate(emptyTemplate).
			WithFooterTemplate(footerTemplate)
	}

	return params
}
