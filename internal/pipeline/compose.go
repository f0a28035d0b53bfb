package pipeline

import (
	"github.com/jonathan/citation-mailer/internal/mail"
	"github.com/jonathan/citation-mailer/internal/rendering"
	"github.com/jonathan/citation-mailer/internal/table"
)

// Composed is the e-mail built for one ranked record, ready to hand to a Sender
type Composed struct {
	Index      int
	Key        string
	Salutation string
	Values     []string // placeholder values in substitution order
	Collisions []rendering.Collision
	Residual   []string
	Message    mail.Message
	Filename   string
}

// Compose fills body with the values of row i of ranked.
// Values are taken in placeholder order: salutation, publication year, title,
// average citations per year, total citations.
func (o *Orchestrator) Compose(ranked *table.ColumnTable, body string, i int) (*Composed, error) {
	row, err := ranked.Row(i)
	if err != nil {
		return nil, &RecordError{Index: i, Cause: err}
	}
	key := row[o.cfg.JoinKey]

	salutation, err := rendering.Salutation(row[ColumnAuthors], o.cfg.AuthorDelimiter)
	if err != nil {
		return nil, &RecordError{Index: i, Key: key, Cause: err}
	}
	year, err := formatInt(ColumnYear, i, row[ColumnYear])
	if err != nil {
		return nil, &RecordError{Index: i, Key: key, Cause: err}
	}
	rate, err := formatRate(ColumnAveragePerYear, i, row[ColumnAveragePerYear])
	if err != nil {
		return nil, &RecordError{Index: i, Key: key, Cause: err}
	}
	total, err := formatInt(ColumnTotalCitations, i, row[ColumnTotalCitations])
	if err != nil {
		return nil, &RecordError{Index: i, Key: key, Cause: err}
	}

	tokens := o.cfg.Placeholders.Tokens()
	values := []string{salutation, year, row[ColumnTitle], rate, total}
	filled, err := rendering.Fill(body, tokens, values)
	if err != nil {
		return nil, &RecordError{Index: i, Key: key, Cause: err}
	}

	return &Composed{
		Index:      i,
		Key:        key,
		Salutation: salutation,
		Values:     values,
		Collisions: rendering.Collisions(tokens, values),
		Residual:   rendering.Residual(filled, tokens),
		Message: mail.Message{
			From:     o.cfg.From,
			To:       Recipients(row[ColumnEmails]),
			Subject:  o.cfg.Subject,
			HTMLBody: filled,
		},
		Filename: OutputFilename(o.cfg.FilenamePattern, i, row[ColumnAuthors], year),
	}, nil
}
