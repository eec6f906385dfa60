package render

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/joelkehle/aireadiness/internal/readiness"
)

// PageLayout sets the printed page geometry in inches.
type PageLayout struct {
	Width        float64
	Height       float64
	MarginTop    float64
	MarginBottom float64
	MarginSide   float64
}

// A4 is the default layout; the bottom margin leaves room for the footer.
var A4 = PageLayout{Width: 8.27, Height: 11.69, MarginTop: 0.5, MarginBottom: 0.75, MarginSide: 0.45}

// Letter suits US readers.
var Letter = PageLayout{Width: 8.5, Height: 11, MarginTop: 0.5, MarginBottom: 0.75, MarginSide: 0.5}

// PDFRenderer prints the HTML report through headless Chromium.
type PDFRenderer struct {
	chromePath string
	timeout    time.Duration
	layout     PageLayout
}

type PDFOption func(*PDFRenderer)

func WithLayout(l PageLayout) PDFOption {
	return func(r *PDFRenderer) { r.layout = l }
}

func WithRenderTimeout(d time.Duration) PDFOption {
	return func(r *PDFRenderer) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func NewPDFRenderer(chromePath string, opts ...PDFOption) *PDFRenderer {
	if chromePath == "" {
		chromePath = detectChromePath()
	}
	r := &PDFRenderer{chromePath: chromePath, timeout: 30 * time.Second, layout: A4}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *PDFRenderer) Render(ctx context.Context, id string, report readiness.Report, lang string) ([]byte, error) {
	doc, err := HTML(id, report, lang)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, r.allocatorOptions()...)
	defer allocCancel()
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("data:text/html;base64,"+base64.StdEncoding.EncodeToString([]byte(doc))),
		chromedp.WaitReady("main.report", chromedp.ByQuery),
		r.print(footerTemplate(id, lang), &pdf),
	)
	if err != nil {
		return nil, fmt.Errorf("print report %s: %w", id, err)
	}
	return pdf, nil
}

func (r *PDFRenderer) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}
	return opts
}

func (r *PDFRenderer) print(footer string, out *[]byte) chromedp.Action {
	l := r.layout
	return chromedp.ActionFunc(func(ctx context.Context) error {
		buf, _, err := page.PrintToPDF().
			WithPrintBackground(true).
			WithDisplayHeaderFooter(true).
			WithHeaderTemplate(`<div></div>`).
			WithFooterTemplate(footer).
			WithPaperWidth(l.Width).
			WithPaperHeight(l.Height).
			WithMarginTop(l.MarginTop).
			WithMarginBottom(l.MarginBottom).
			WithMarginLeft(l.MarginSide).
			WithMarginRight(l.MarginSide).
			Do(ctx)
		*out = buf
		return err
	})
}

// footerTemplate carries the report reference and page counter. Chromium
// fills the pageNumber and totalPages spans.
func footerTemplate(id, lang string) string {
	h := headingsByLang[readiness.ResolveLanguage(lang)]
	ref := ""
	if id != "" {
		ref = html.EscapeString(h.Reference+": "+id) + " &middot; "
	}
	return `<div style="width:100%;text-align:center;font-size:9px;color:#666;">` + ref +
		`<span class="pageNumber"></span> / <span class="totalPages"></span></div>`
}

func detectChromePath() string {
	for _, p := range []string{
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
	} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
