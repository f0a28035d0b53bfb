package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultPDFTimeout bounds a single headless-browser render
const DefaultPDFTimeout = 30 * time.Second

// ChromePDF returns a PDFRenderer that prints HTML through headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
func ChromePDF(timeout time.Duration) PDFRenderer {
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}
	return func(ctx context.Context, body string) ([]byte, error) {
		allocCtx, cancel := chromedp.NewExecAllocator(ctx,
			append(chromedp.DefaultExecAllocatorOptions[:],
				chromedp.Flag("headless", true),
				chromedp.Flag("disable-gpu", true),
				chromedp.Flag("no-sandbox", true),
				chromedp.Flag("disable-dev-shm-usage", true),
			)...,
		)
		defer cancel()

		browserCtx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()

		browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
		defer cancel()

		doc := "<!DOCTYPE html><html><head><meta charset=\"utf-8\"></head><body>" + body + "</body></html>"

		var pdf []byte
		err := chromedp.Run(browserCtx,
			chromedp.Navigate("about:blank"),
			chromedp.ActionFunc(func(ctx context.Context) error {
				tree, err := page.GetFrameTree().Do(ctx)
				if err != nil {
					return err
				}
				return page.SetDocumentContent(tree.Frame.ID, doc).Do(ctx)
			}),
			chromedp.ActionFunc(func(ctx context.Context) error {
				buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
				if err != nil {
					return err
				}
				pdf = buf
				return nil
			}),
		)
		if err != nil {
			return nil, fmt.Errorf("pdf rendering failed: %w", err)
		}
		return pdf, nil
	}
}
