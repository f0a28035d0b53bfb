package mail

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PDFRenderer turns an HTML body into a PDF document
type PDFRenderer func(ctx context.Context, html string) ([]byte, error)

// Supported file formats for saved drafts, chosen by extension
const (
	FormatEML  = ".eml"
	FormatHTML = ".html"
	FormatPDF  = ".pdf"
)

// SaveDraft writes draft to path in the format named by the path's extension.
// renderPDF is only needed for .pdf output.
func SaveDraft(ctx context.Context, draft *Draft, path string, renderPDF PDFRenderer) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &SaveError{Path: path, Cause: err}
		}
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case FormatEML:
		if draft.msg == nil {
			return &SaveError{Path: path, Cause: fmt.Errorf("draft %s has no MIME message", draft.ID)}
		}
		if err := draft.msg.WriteToFile(path); err != nil {
			return &SaveError{Path: path, Cause: err}
		}
	case FormatHTML, ".htm":
		if err := os.WriteFile(path, []byte(draft.Message.HTMLBody), 0644); err != nil {
			return &SaveError{Path: path, Cause: err}
		}
	case FormatPDF:
		if renderPDF == nil {
			return &SaveError{Path: path, Cause: fmt.Errorf("no PDF renderer configured")}
		}
		pdf, err := renderPDF(ctx, draft.Message.HTMLBody)
		if err != nil {
			return &SaveError{Path: path, Cause: err}
		}
		if err := os.WriteFile(path, pdf, 0644); err != nil {
			return &SaveError{Path: path, Cause: err}
		}
	default:
		return &SaveError{Path: path, Cause: fmt.Errorf("unsupported draft format %q", ext)}
	}
	return nil
}
