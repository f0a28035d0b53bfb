// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/citation-mailer/internal/pipeline"
	"github.com/jonathan/citation-mailer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// PrintRankedPublications outputs the top ranked records with their citation figures.
func (p *Printer) PrintRankedPublications(ranked *types.RankedPublications) {
	if ranked == nil || len(ranked.Records) == 0 {
		return
	}

	order := "descending"
	if !ranked.Descending {
		order = "ascending"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Ranked %d records by %s (%s)\n\n", ranked.TotalRecords, ranked.RankedBy, order))

	count := min(len(ranked.Records), maxItemsToShow)
	for i := 0; i < count; i++ {
		rec := ranked.Records[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", rec.Rank, rec.Title))
		sb.WriteString(fmt.Sprintf("    %s (%d)\n", rec.DOI, rec.PublicationYear))
		sb.WriteString(fmt.Sprintf("    %.2f per year, %d total\n", rec.AveragePerYear, rec.TotalCitations))
		if rec.Salutation != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", rec.Salutation))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(ranked.Records) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more records", len(ranked.Records)-maxItemsToShow))
	}

	p.printBox("RANKED PUBLICATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCitationsByYear outputs the summed citations for each year of the report.
func (p *Printer) PrintCitationsByYear(years []types.YearCitations) {
	if len(years) == 0 {
		return
	}

	var sb strings.Builder
	total := 0.0
	for _, y := range years {
		sb.WriteString(fmt.Sprintf("%d  %8.0f\n", y.Year, y.Citations))
		total += y.Citations
	}
	sb.WriteString(fmt.Sprintf("\nTotal %8.0f", total))

	p.printBox("CITATIONS BY YEAR", sb.String())
}

// PrintEmitted outputs one line per e-mail produced by a run.
func (p *Printer) PrintEmitted(emitted []pipeline.Emitted) {
	if len(emitted) == 0 {
		return
	}

	var sb strings.Builder
	sent := 0
	for _, e := range emitted {
		status := "draft"
		if e.Sent {
			status = "sent"
			sent++
		}
		to := strings.Join(e.To, ", ")
		if to == "" {
			to = "(no recipient)"
		}
		sb.WriteString(fmt.Sprintf("%3d. [%s] %s -> %s\n", e.Index+1, status, e.Key, to))
		if e.Path != "" {
			sb.WriteString(fmt.Sprintf("     %s\n", e.Path))
		}
	}
	sb.WriteString(fmt.Sprintf("\n%d e-mails, %d sent", len(emitted), sent))

	p.printBox("EMITTED E-MAILS", sb.String())
}

// PrintPreview outputs the filled body of one record as plain text, without truncation.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintPreview(c *pipeline.Composed, text string) {
	if c == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Record:  #%d %s\n", c.Index+1, c.Key))
	sb.WriteString(fmt.Sprintf("To:      %s\n", strings.Join(c.Message.To, ", ")))
	sb.WriteString(fmt.Sprintf("Subject: %s\n", c.Message.Subject))
	sb.WriteString(fmt.Sprintf("File:    %s", c.Filename))
	if len(c.Residual) > 0 {
		sb.WriteString(fmt.Sprintf("\nUnfilled placeholders: %s", strings.Join(c.Residual, ", ")))
	}
	p.printBox("E-MAIL PREVIEW", sb.String())

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, text)
}
