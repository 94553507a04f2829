// Package refparse extracts structured fields from free-form citation text
// and loads reference lists from JSON or text files.
package refparse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/matsen/refcheck/internal/paper"
)

// Year bounds accepted when extracting a publication year from text.
const (
	minYear = 1900
	maxYear = 2100
)

var (
	// Leading reference numbering: "1. ", "1) ", "[1] ".
	numberingRe = regexp.MustCompile(`^\s*\[?\d+[\].)]\s*`)

	// DOI with an explicit doi:/doi.org prefix, capturing the bare DOI.
	prefixedDOIRe = regexp.MustCompile(`(?i)(?:https?://doi\.org/|doi[:\s]*)(10\.\d{4,}/[^\s,;"]+)`)
	// Bare DOI anywhere in the text.
	bareDOIRe = regexp.MustCompile(`\b(10\.\d{4,}/[^\s,;"]+)`)

	pmidRe = regexp.MustCompile(`(?i)PMID[:\s]*(\d+)`)

	parenYearRe = regexp.MustCompile(`\((\d{4})\)`)
	bareYearRe  = regexp.MustCompile(`[.\s;,](\d{4})[.\s;,]`)

	// "10(4):663-72" volume(issue):pages.
	volIssuePagesRe = regexp.MustCompile(`(\d+)\((\d+)\)[:\s]*(\d+[-\x{2013}]\d+)`)
	// ";15:123-130" volume:pages without an issue.
	volPagesRe = regexp.MustCompile(`;(\d+)[:\s]+(\d+[-\x{2013}]\d+)`)
)

// ParseText extracts whatever structured fields it can from a raw citation
// string. Handles the common AMA, Vancouver, APA and numbered formats. The
// returned Reference always preserves the original text (including any
// numbering marker) in Raw.
func ParseText(text string) paper.Reference {
	ref := paper.Reference{Raw: strings.TrimSpace(text)}

	// Numbering markers are stripped for extraction only.
	cleaned := numberingRe.ReplaceAllString(text, "")

	if m := prefixedDOIRe.FindStringSubmatch(cleaned); m != nil {
		ref.DOI = strings.TrimRight(m[1], ".")
	} else if m := bareDOIRe.FindStringSubmatch(cleaned); m != nil {
		ref.DOI = strings.TrimRight(m[1], ".")
	}

	if m := pmidRe.FindStringSubmatch(cleaned); m != nil {
		ref.PMID = m[1]
	}

	yearMatch := parenYearRe.FindStringSubmatch(cleaned)
	if yearMatch == nil {
		yearMatch = bareYearRe.FindStringSubmatch(cleaned)
	}
	if yearMatch != nil {
		if y, err := strconv.Atoi(yearMatch[1]); err == nil && y >= minYear && y <= maxYear {
			ref.Year = y
		}
	}

	if m := volIssuePagesRe.FindStringSubmatch(cleaned); m != nil {
		ref.Volume = m[1]
		ref.Issue = m[2]
		ref.Pages = m[3]
	} else if m := volPagesRe.FindStringSubmatch(cleaned); m != nil {
		ref.Volume = m[1]
		ref.Pages = m[2]
	}

	return ref
}
