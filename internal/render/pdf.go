package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// PDFTimeout bounds a single headless print run.
const PDFTimeout = 2 * time.Minute

// A4 paper in inches.
const (
	paperWidthIn  = 8.27
	paperHeightIn = 11.69
)

// detectChromePath checks CHROME_PATH, then the usual install locations.
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// ExportPDF prints the rendered brochure at htmlPath into pdfPath using
// headless Chrome. Page breaks come from the theme stylesheet, so the
// print run uses zero margins and backgrounds enabled.
func ExportPDF(ctx context.Context, htmlPath, pdfPath string) error {
	absPath, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", htmlPath, err)
	}

	if _, err := os.Stat(absPath); err != nil {
		return fmt.Errorf("brochure not found at %s: %w", absPath, err)
	}

	ctx, cancel := context.WithTimeout(ctx, PDFTimeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
	)

	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var pdfBuf []byte

	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+absPath),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var printErr error
			pdfBuf, _, printErr = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthIn).
				WithPaperHeight(paperHeightIn).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)

			return printErr
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to print brochure: %w", err)
	}

	if err := os.WriteFile(pdfPath, pdfBuf, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", pdfPath, err)
	}

	return nil
}
