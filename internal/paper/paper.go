// Package paper defines the core domain types for bibliographic records
// and manuscript references.
package paper

// Source tags identifying where a Record came from.
const (
	SourceCrossref        = "crossref"
	SourcePubMed          = "pubmed"
	SourceSemanticScholar = "semantic_scholar"
	SourceBoth            = "both"
)

// Record is the canonical shape for a paper returned by any metadata source.
//
// Absent values are always the zero value (empty string, 0), never a
// null-vs-missing distinction. Merge and comparison logic relies on being
// able to test emptiness directly.
type Record struct {
	Title           string   `json:"title"`
	Authors         []string `json:"authors"`
	Year            int      `json:"year,omitempty"`
	Journal         string   `json:"journal"`
	Volume          string   `json:"volume,omitempty"`
	Issue           string   `json:"issue,omitempty"`
	Pages           string   `json:"pages,omitempty"`
	DOI             string   `json:"doi,omitempty"`
	PMID            string   `json:"pmid,omitempty"`
	S2ID            string   `json:"semantic_scholar_id,omitempty"`
	Abstract        string   `json:"abstract"`
	CitationCount   int      `json:"citation_count,omitempty"`
	PublicationDate string   `json:"publication_date,omitempty"`
	Source          string   `json:"source"`
}

// FirstAuthor returns the first listed author, or "" if none.
func (r *Record) FirstAuthor() string {
	if len(r.Authors) == 0 {
		return ""
	}
	return r.Authors[0]
}
