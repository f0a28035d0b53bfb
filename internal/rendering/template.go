package rendering

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv/v2"
	"github.com/PuerkitoBio/goquery"
)

// LoadTemplate reads an e-mail template and returns it as an HTML body fragment.
//
// HTML templates contribute the inner HTML of their <body>. DOCX templates are converted to
// text and each non-empty paragraph becomes a <p>. Plain-text templates are treated the
// same way, one paragraph per line.
func LoadTemplate(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &TemplateError{Message: fmt.Sprintf("template file not found: %s", path), Cause: err}
		}
		return "", &TemplateError{Message: fmt.Sprintf("failed to read template file: %s", path), Cause: err}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return htmlBody(content)
	case ".docx":
		text, _, err := docconv.ConvertDocx(bytes.NewReader(content))
		if err != nil {
			return "", &TemplateError{Message: fmt.Sprintf("failed to convert %s", path), Cause: err}
		}
		return paragraphs(text), nil
	case ".txt":
		return paragraphs(string(content)), nil
	default:
		return "", &TemplateError{Message: fmt.Sprintf("unsupported template type %q", filepath.Ext(path))}
	}
}

func htmlBody(content []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return "", &TemplateError{Message: "failed to parse HTML template", Cause: err}
	}
	body, err := doc.Find("body").Html()
	if err != nil {
		return "", &TemplateError{Message: "failed to serialise HTML template", Cause: err}
	}
	return strings.TrimSpace(body), nil
}

// paragraphs wraps each non-empty line of text in an escaped <p> element
func paragraphs(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var sb strings.Builder
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sb.WriteString("<p>")
		sb.WriteString(html.EscapeString(line))
		sb.WriteString("</p>")
	}
	return sb.String()
}

// PlainText strips markup from an HTML body, one line per block element
func PlainText(body string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", err
	}
	var lines []string
	doc.Find("p, li, h1, h2, h3, h4, h5, h6, div").Each(func(_ int, s *goquery.Selection) {
		if s.Find("p, li, div").Length() > 0 {
			return
		}
		if text := strings.TrimSpace(s.Text()); text != "" {
			lines = append(lines, text)
		}
	})
	if len(lines) == 0 {
		return strings.TrimSpace(doc.Text()), nil
	}
	return strings.Join(lines, "\n"), nil
}
