package crossref

import (
	"html"
	"strings"

	"github.com/matsen/refcheck/internal/paper"
)

// work is the raw Crossref work shape, limited to the fields we map.
type work struct {
	DOI             string     `json:"DOI"`
	Title           []string   `json:"title"`
	ContainerTitle  []string   `json:"container-title"`
	Author          []author   `json:"author"`
	PublishedPrint  *dateParts `json:"published-print"`
	PublishedOnline *dateParts `json:"published-online"`
	Issued          *dateParts `json:"issued"`
	Volume          string     `json:"volume"`
	Issue           string     `json:"issue"`
	Page            string     `json:"page"`
	ReferencedBy    int        `json:"is-referenced-by-count"`
}

type author struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type dateParts struct {
	DateParts [][]int `json:"date-parts"`
}

// year returns the leading year component, or 0.
func (d *dateParts) year() int {
	if d == nil || len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return 0
	}
	return d.DateParts[0][0]
}

// toRecord maps a Crossref work to the canonical record shape. Titles and
// container titles arrive HTML-escaped and as arrays; the first entry wins.
func (w *work) toRecord() paper.Record {
	rec := paper.Record{
		DOI:           w.DOI,
		Volume:        w.Volume,
		Issue:         w.Issue,
		Pages:         w.Page,
		CitationCount: w.ReferencedBy,
		Source:        paper.SourceCrossref,
	}

	if len(w.Title) > 0 {
		rec.Title = html.UnescapeString(w.Title[0])
	}
	if len(w.ContainerTitle) > 0 {
		rec.Journal = html.UnescapeString(w.ContainerTitle[0])
	}

	for _, a := range w.Author {
		name := strings.TrimSpace(a.Given + " " + a.Family)
		if name != "" {
			rec.Authors = append(rec.Authors, name)
		}
	}

	// Print date preferred, then online, then the issued fallback.
	for _, d := range []*dateParts{w.PublishedPrint, w.PublishedOnline, w.Issued} {
		if y := d.year(); y != 0 {
			rec.Year = y
			break
		}
	}

	return rec
}
