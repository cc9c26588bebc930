// Package renderer converts report markup into paginated PDF bytes using a
// single shared headless Chrome instance. The browser is started lazily on
// first use, health-checked before reuse and relaunched transparently when it
// has died; each render runs in its own isolated tab context so independent
// callers can render concurrently.
package renderer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/jyhan-dev/seodang/internal/pkg/apperrors"
	"github.com/jyhan-dev/seodang/internal/pkg/logger"
)

// Options configures the shared engine.
type Options struct {
	// ChromePath overrides the browser binary; empty uses chromedp's default lookup.
	ChromePath string
	// RenderTimeout bounds one full load-settle-export cycle. Zero means 45s.
	RenderTimeout time.Duration
	// PageFooter enables the page-number footer on exported documents.
	PageFooter bool
}

// Engine owns the shared browser process. Safe for concurrent use; the mutex
// guards (re)launch, renders themselves run on per-call tab contexts.
type Engine struct {
	opts Options

	mu          sync.Mutex
	allocCtx    context.Context
	allocStop   context.CancelFunc
	browserCtx  context.Context
	browserStop context.CancelFunc
}

// NewEngine creates an engine without starting the browser. The first render
// call pays the startup cost.
func NewEngine(opts Options) *Engine {
	if opts.RenderTimeout <= 0 {
		opts.RenderTimeout = 45 * time.Second
	}
	return &Engine{opts: opts}
}

// RenderPDF loads the given HTML markup into an isolated browser tab, waits
// for the content and embedded fonts to settle, and exports A4 PDF bytes.
// Engine startup failure maps to apperrors.ErrRenderEngineUnavailable;
// anything after a successful start maps to apperrors.ErrRenderFailure.
func (e *Engine) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	browserCtx, err := e.acquireBrowser(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRenderEngineUnavailable, err)
	}

	// Isolated tab for this render.
	tabCtx, cancelTab := chromedp.NewContext(browserCtx)
	defer cancelTab()

	// Every render runs under an explicit deadline so a hung settle wait
	// cannot block the slot indefinitely.
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, e.opts.RenderTimeout)
	defer cancelTimeout()

	var pdf []byte
	err = chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return fmt.Errorf("failed to read frame tree: %w", err)
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		// Embedded fonts load asynchronously; exporting before they settle
		// produces fallback glyphs in the document.
		chromedp.Evaluate(`document.fonts.ready.then(() => true)`, nil, awaitPromise),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = printParams(e.opts.PageFooter).Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, apperrors.NewRenderError(err)
	}

	return pdf, nil
}

func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}

// acquireBrowser returns a healthy shared browser context, launching or
// relaunching the browser as needed.
func (e *Engine) acquireBrowser(ctx context.Context) (context.Context, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.browserCtx != nil {
		if e.healthy() {
			return e.browserCtx, nil
		}
		logger.Warn().Msg("Render engine unresponsive, relaunching browser")
		e.stopLocked()
	}

	return e.launchLocked(ctx)
}

// healthy does a cheap Evaluate round-trip against the browser's default
// target to verify the process is still attached.
func (e *Engine) healthy() bool {
	if e.browserCtx.Err() != nil {
		return false
	}
	checkCtx, cancel := context.WithTimeout(e.browserCtx, 3*time.Second)
	defer cancel()

	var one int
	if err := chromedp.Run(checkCtx, chromedp.Evaluate(`1`, &one)); err != nil {
		return false
	}
	return one == 1
}

func (e *Engine) launchLocked(ctx context.Context) (context.Context, error) {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.NoSandbox,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("hide-scrollbars", true),
	)
	if e.opts.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(e.opts.ChromePath))
	}

	// The allocator and browser live beyond the requesting call; they are
	// torn down in Close, not when ctx ends.
	allocCtx, allocStop := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserStop := chromedp.NewContext(allocCtx)

	// Force the browser process to actually start so startup failures
	// surface here instead of inside the first render.
	startCtx, cancel := context.WithTimeout(browserCtx, 20*time.Second)
	defer cancel()
	if err := chromedp.Run(startCtx); err != nil {
		browserStop()
		allocStop()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	select {
	case <-ctx.Done():
		browserStop()
		allocStop()
		return nil, ctx.Err()
	default:
	}

	e.allocCtx = allocCtx
	e.allocStop = allocStop
	e.browserCtx = browserCtx
	e.browserStop = browserStop
	logger.Info().Str("chromePath", e.opts.ChromePath).Msg("Render engine started")
	return e.browserCtx, nil
}

func (e *Engine) stopLocked() {
	if e.browserStop != nil {
		e.browserStop()
	}
	if e.allocStop != nil {
		e.allocStop()
	}
	e.browserCtx = nil
	e.browserStop = nil
	e.allocCtx = nil
	e.allocStop = nil
}

// Close tears down the shared browser. Wired into server shutdown.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.browserCtx != nil {
		logger.Info().Msg("Shutting down render engine")
	}
	e.stopLocked()
}
