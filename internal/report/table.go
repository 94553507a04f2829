package report

import (
	"fmt"
	"strings"

	"github.com/matsen/refcheck/internal/paper"
)

// DefaultTableLimit caps how many rows PaperTable prints.
const DefaultTableLimit = 25

// PaperTable renders search results as a fixed-width text table.
func PaperTable(papers []paper.Record, limit int) string {
	if limit <= 0 {
		limit = DefaultTableLimit
	}
	var b strings.Builder
	header := fmt.Sprintf("%-4s %-6s %-8s %-25s %-55s %-30s",
		"#", "Year", "Cites", "First Author", "Title", "Journal")
	b.WriteString(header + "\n")
	b.WriteString(strings.Repeat("-", len(header)))

	for i, p := range papers {
		if i >= limit {
			break
		}
		first := p.FirstAuthor()
		if first == "" {
			first = "Unknown"
		}
		year := "N/A"
		if p.Year != 0 {
			year = fmt.Sprintf("%d", p.Year)
		}
		cites := "N/A"
		if p.CitationCount != 0 {
			cites = fmt.Sprintf("%d", p.CitationCount)
		}
		fmt.Fprintf(&b, "\n%-4d %-6s %-8s %-25s %-55s %-30s",
			i+1, year, cites,
			truncate(first, 24), truncate(p.Title, 54), truncate(p.Journal, 29))
	}
	return b.String()
}

// PaperDetail renders the full metadata view for a single record.
func PaperDetail(p *paper.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title:    %s\n", p.Title)
	fmt.Fprintf(&b, "Authors:  %s\n", strings.Join(p.Authors, ", "))
	fmt.Fprintf(&b, "Year:     %s\n", orNA(yearString(p)))
	fmt.Fprintf(&b, "Journal:  %s\n", orNA(p.Journal))
	fmt.Fprintf(&b, "Volume:   %s\n", orNA(p.Volume))
	fmt.Fprintf(&b, "Issue:    %s\n", orNA(p.Issue))
	fmt.Fprintf(&b, "Pages:    %s\n", orNA(p.Pages))
	fmt.Fprintf(&b, "Citations:%d\n", p.CitationCount)
	fmt.Fprintf(&b, "DOI:      %s\n", orNA(p.DOI))
	fmt.Fprintf(&b, "PMID:     %s\n", orNA(p.PMID))
	fmt.Fprintf(&b, "Source:   %s\n", p.Source)
	fmt.Fprintf(&b, "\nAbstract:\n%s", orNA(p.Abstract))
	return b.String()
}

func yearString(p *paper.Record) string {
	if p.Year == 0 {
		return ""
	}
	return fmt.Sprintf("%d", p.Year)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
