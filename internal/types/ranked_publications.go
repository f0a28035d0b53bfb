// Package types provides type definitions for the JSON artifacts written by the CLI.
//
//nolint:revive // types is a standard Go package name pattern
package types

// RankedPublications is the artifact written by the rank command
type RankedPublications struct {
	RunID           string              `json:"run_id"`
	RankedBy        string              `json:"ranked_by"`
	Descending      bool                `json:"descending"`
	TotalRecords    int                 `json:"total_records"`
	Records         []RankedPublication `json:"records"`
	CitationsByYear []YearCitations     `json:"citations_by_year"`
}

// RankedPublication is one row of the merged, ranked citation report
type RankedPublication struct {
	Rank            int      `json:"rank"`
	DOI             string   `json:"doi"`
	Title           string   `json:"title"`
	Authors         string   `json:"authors"`
	Salutation      string   `json:"salutation,omitempty"`
	EmailAddresses  []string `json:"email_addresses"`
	PublicationYear int      `json:"publication_year"`
	AveragePerYear  float64  `json:"average_per_year"`
	TotalCitations  int      `json:"total_citations"`
}

// YearCitations is the total number of citations received in one calendar year
type YearCitations struct {
	Year      int     `json:"year"`
	Citations float64 `json:"citations"`
}
