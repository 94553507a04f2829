// Package normalize canonicalizes identifiers and text for comparison.
//
// Bibliographic metadata arrives with inconsistent punctuation: DOIs wrapped
// in URLs, titles with typographic dashes and quotes, author names in half a
// dozen formats. Every comparison in the verification engine goes through
// these helpers first.
package normalize

import (
	"html"
	"regexp"
	"strings"
)

var (
	doiURLPrefix = regexp.MustCompile(`(?i)^https?://doi\.org/`)
	doiPrefix    = regexp.MustCompile(`(?i)^doi:\s*`)

	// Unicode hyphen/dash variants folded to ASCII "-".
	dashRe = regexp.MustCompile("[‐‑‒–—―−]")
	// Unicode quote variants folded to ASCII "'".
	quoteRe = regexp.MustCompile("[‘’“”]")

	wordRe    = regexp.MustCompile(`\w+`)
	nonWordRe = regexp.MustCompile(`[^\w\s]`)
)

// DOI normalizes a DOI string: strips leading https://doi.org/ or doi:
// prefixes (case-insensitive), trims trailing punctuation and whitespace.
// Idempotent.
func DOI(doi string) string {
	doi = strings.TrimSpace(doi)
	doi = strings.TrimRight(doi, ".,;)")
	doi = doiURLPrefix.ReplaceAllString(doi, "")
	doi = doiPrefix.ReplaceAllString(doi, "")
	return strings.TrimSpace(doi)
}

// Text decodes HTML entities and folds Unicode dash and quote variants to
// their ASCII equivalents so visually-identical punctuation compares equal.
func Text(s string) string {
	s = html.UnescapeString(s)
	s = dashRe.ReplaceAllString(s, "-")
	s = quoteRe.ReplaceAllString(s, "'")
	return s
}

// TokenSimilarity computes the Jaccard similarity of the lowercase word-token
// sets of a and b, after Text normalization. Returns 0 if either side is
// empty. Symmetric, and 1.0 for any nonempty string compared with itself.
func TokenSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	tokensA := tokenSet(Text(a))
	tokensB := tokenSet(Text(b))
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range tokensA {
		if tokensB[tok] {
			intersection++
		}
	}
	union := len(tokensA) + len(tokensB) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range wordRe.FindAllString(strings.ToLower(s), -1) {
		set[tok] = true
	}
	return set
}

// String lowercases s, strips all non-word, non-space characters, and trims
// surrounding whitespace. Returns "" for empty input.
func String(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(nonWordRe.ReplaceAllString(strings.ToLower(s), ""))
}

// LastName extracts a lowercased surname from an author name in any of the
// common formats:
//
//	"Younger, Jarred"  comma separated
//	"Younger"          single token
//	"Younger J"        trailing initial
//	"J Younger"        leading initial
//	"Jarred Younger"   default First Last
//
// A token of one or two alphabetic characters (ignoring periods) is treated
// as an initial.
func LastName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if idx := strings.Index(name, ","); idx >= 0 {
		return strings.ToLower(strings.TrimSpace(name[:idx]))
	}
	parts := strings.Fields(name)
	if len(parts) == 1 {
		return strings.ToLower(parts[0])
	}
	if isInitial(parts[len(parts)-1]) {
		return strings.ToLower(parts[0])
	}
	if isInitial(parts[0]) {
		return strings.ToLower(parts[len(parts)-1])
	}
	return strings.ToLower(parts[len(parts)-1])
}

// isInitial reports whether tok looks like an author initial: at most two
// characters after removing periods, all alphabetic.
func isInitial(tok string) bool {
	tok = strings.ReplaceAll(tok, ".", "")
	if len(tok) == 0 || len(tok) > 2 {
		return false
	}
	for _, r := range tok {
		if !isAlpha(r) {
			return false
		}
	}
	return true
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
