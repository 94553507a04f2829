// Package pdfref pulls citation material out of manuscript PDFs: the
// paper's own DOI from its front matter, and the reference list from
// its back matter.
package pdfref

import (
	"errors"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/matsen/refcheck/internal/paper"
	"github.com/matsen/refcheck/internal/refparse"
)

// ErrNoReferences is returned when no reference section heading is
// found in the document text.
var ErrNoReferences = errors.New("no references section found")

// DOI pattern: 10.XXXX/... where XXXX is 4+ digits
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

var referencesHeadingRe = regexp.MustCompile(
	`(?im)^\s*(?:\d+\.?\s+)?(references|bibliography|literature cited|works cited)\s*:?\s*$`)

// ExtractDOI searches the first few pages for a DOI pattern. DOIs
// almost always appear in the front matter, so only three pages are
// scanned. An absent DOI is not an error.
func ExtractDOI(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	maxPages := 3
	if r.NumPage() < maxPages {
		maxPages = r.NumPage()
	}

	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if doi := findDOI(text); doi != "" {
			return doi, nil
		}
	}
	return "", nil
}

// ExtractText extracts plain text from the first maxPages pages, or
// the whole document when maxPages <= 0.
func ExtractText(filePath string, maxPages int) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if maxPages <= 0 || maxPages > r.NumPage() {
		maxPages = r.NumPage()
	}

	var builder strings.Builder
	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// ExtractReferences extracts and parses the reference list of a
// manuscript PDF. Returns ErrNoReferences when the document has no
// recognizable reference section.
func ExtractReferences(filePath string) ([]paper.Reference, error) {
	text, err := ExtractText(filePath, 0)
	if err != nil {
		return nil, err
	}
	section, ok := ReferencesSection(text)
	if !ok {
		return nil, ErrNoReferences
	}
	return refparse.Parse(section)
}

// ReferencesSection returns the text following the last reference
// section heading. The last heading wins because "References" can also
// appear in a table of contents or running text.
func ReferencesSection(text string) (string, bool) {
	locs := referencesHeadingRe.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return "", false
	}
	start := locs[len(locs)-1][1]
	section := strings.TrimSpace(text[start:])
	if section == "" {
		return "", false
	}
	return section, true
}

func findDOI(text string) string {
	for _, match := range doiPattern.FindAllString(text, -1) {
		match = strings.TrimRight(match, ".,;:)")
		if isValidDOI(match) {
			return match
		}
	}
	return ""
}

func isValidDOI(doi string) bool {
	if len(doi) < 10 {
		return false
	}
	slash := strings.Index(doi, "/")
	return slash > 0 && slash < len(doi)-1
}
