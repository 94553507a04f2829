package s2

import "github.com/matsen/refcheck/internal/paper"

// s2Paper is the raw Semantic Scholar paper shape, limited to the fields we
// request.
type s2Paper struct {
	PaperID     string `json:"paperId"`
	ExternalIDs struct {
		DOI    string `json:"DOI"`
		PubMed string `json:"PubMed"`
	} `json:"externalIds"`
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
	Year     int    `json:"year"`
	Venue    string `json:"venue"`
	Journal  *struct {
		Name   string `json:"name"`
		Volume string `json:"volume"`
		Pages  string `json:"pages"`
	} `json:"journal"`
	PublicationVenue *struct {
		Name string `json:"name"`
	} `json:"publicationVenue"`
	PublicationDate string `json:"publicationDate"`
	CitationCount   int    `json:"citationCount"`
	Authors         []struct {
		Name string `json:"name"`
	} `json:"authors"`
}

// toRecord maps a Semantic Scholar paper to the canonical record shape.
// Venue naming prefers the publication venue, then the journal name, then
// the bare venue string.
func (p *s2Paper) toRecord() paper.Record {
	rec := paper.Record{
		S2ID:            p.PaperID,
		Title:           p.Title,
		Abstract:        p.Abstract,
		Year:            p.Year,
		DOI:             p.ExternalIDs.DOI,
		PMID:            p.ExternalIDs.PubMed,
		CitationCount:   p.CitationCount,
		PublicationDate: p.PublicationDate,
		Journal:         p.Venue,
		Source:          paper.SourceSemanticScholar,
	}

	if p.Journal != nil {
		if p.Journal.Name != "" {
			rec.Journal = p.Journal.Name
		}
		rec.Volume = p.Journal.Volume
		rec.Pages = p.Journal.Pages
	}
	if p.PublicationVenue != nil && p.PublicationVenue.Name != "" {
		rec.Journal = p.PublicationVenue.Name
	}

	for _, a := range p.Authors {
		if a.Name != "" {
			rec.Authors = append(rec.Authors, a.Name)
		}
	}

	return rec
}
