package pipeline

import (
	"github.com/jonathan/citation-mailer/internal/ranking"
	"github.com/jonathan/citation-mailer/internal/rendering"
	"github.com/jonathan/citation-mailer/internal/types"
)

// BuildArtifact converts the first n ranked records into the RankedPublications artifact.
// n <= 0 or n larger than the table keeps every record. Records whose authors field
// yields no salutation are kept with an empty one.
func (o *Orchestrator) BuildArtifact(ranked *Ranked, n int) (*types.RankedPublications, error) {
	t := ranked.Table
	if n <= 0 || n > t.Len() {
		n = t.Len()
	}

	out := &types.RankedPublications{
		RunID:        o.runID,
		RankedBy:     o.cfg.RankBy,
		Descending:   !o.cfg.Ascending,
		TotalRecords: t.Len(),
		Records:      make([]types.RankedPublication, 0, n),
	}

	for i := 0; i < n; i++ {
		row, err := t.Row(i)
		if err != nil {
			return nil, err
		}
		rate, err := t.Float(ColumnAveragePerYear, i)
		if err != nil {
			return nil, err
		}
		total, err := t.Float(ColumnTotalCitations, i)
		if err != nil {
			return nil, err
		}
		year, err := t.Float(ColumnYear, i)
		if err != nil {
			return nil, err
		}
		salutation, _ := rendering.Salutation(row[ColumnAuthors], o.cfg.AuthorDelimiter)
		emails := Recipients(row[ColumnEmails])
		if emails == nil {
			emails = []string{}
		}

		out.Records = append(out.Records, types.RankedPublication{
			Rank:            i + 1,
			DOI:             row[o.cfg.JoinKey],
			Title:           row[ColumnTitle],
			Authors:         row[ColumnAuthors],
			Salutation:      salutation,
			EmailAddresses:  emails,
			PublicationYear: int(year),
			AveragePerYear:  rate,
			TotalCitations:  int(total),
		})
	}

	totals := ranking.YearTotals(ranked.Years)
	out.CitationsByYear = make([]types.YearCitations, 0, len(totals))
	for _, yt := range totals {
		out.CitationsByYear = append(out.CitationsByYear, types.YearCitations{Year: yt.Year, Citations: yt.Citations})
	}
	return out, nil
}
