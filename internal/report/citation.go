package report

import (
	"fmt"
	"strings"

	"github.com/matsen/refcheck/internal/paper"
)

// CitationAMA formats a record as a numbered AMA-style citation:
// three authors then "et al" when the list is long.
func CitationAMA(p *paper.Record, number int) string {
	return citation(p, number, 3, "doi:")
}

// CitationVancouver formats a record as a numbered Vancouver-style
// citation: six authors then "et al".
func CitationVancouver(p *paper.Record, number int) string {
	return citation(p, number, 6, "doi: ")
}

func citation(p *paper.Record, number, maxAuthors int, doiPrefix string) string {
	authors := strings.Join(p.Authors, ", ")
	if len(p.Authors) > 6 {
		authors = strings.Join(p.Authors[:maxAuthors], ", ") + ", et al"
	}
	title := strings.TrimRight(p.Title, ".")
	year := yearString(p)
	doi := ""
	if p.DOI != "" {
		doi = " " + doiPrefix + p.DOI
	}
	return fmt.Sprintf("%d. %s. %s. %s. %s%s.%s",
		number, authors, title, p.Journal, year, volIssuePages(p), doi)
}

// volIssuePages builds the ";Volume(Issue):Pages" citation suffix.
func volIssuePages(p *paper.Record) string {
	vip := ""
	if p.Volume != "" {
		vip = ";" + p.Volume
		if p.Issue != "" {
			vip += "(" + p.Issue + ")"
		}
		if p.Pages != "" {
			vip += ":" + p.Pages
		}
		return vip
	}
	if p.Pages != "" {
		return ":" + p.Pages
	}
	return ""
}
