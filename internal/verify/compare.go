package verify

import (
	"math"
	"strconv"
	"strings"

	"github.com/matsen/refcheck/internal/normalize"
	"github.com/matsen/refcheck/internal/paper"
)

// compareFields checks every field present on both the reference and
// the best match, then sets the overall status. Fields absent on either
// side are skipped, not counted as mismatches.
func compareFields(ref paper.Reference, best *paper.Record, res *Result) {
	hasError := false
	record := func(field string, check *FieldCheck) {
		res.FieldChecks[field] = check
		if !check.Match() {
			hasError = true
		}
	}

	if ref.Title != "" && best.Title != "" {
		sim := normalize.TokenSimilarity(ref.Title, best.Title)
		record("title", fuzzyCheck(sim, titleMatchThreshold, ref.Title, best.Title))
	}
	if ref.Year != 0 && best.Year != 0 {
		record("year", newCheck(ref.Year == best.Year,
			strconv.Itoa(ref.Year), strconv.Itoa(best.Year)))
	}
	if ref.Journal != "" && best.Journal != "" {
		sim := normalize.TokenSimilarity(ref.Journal, best.Journal)
		record("journal", fuzzyCheck(sim, journalMatchThreshold, ref.Journal, best.Journal))
	}
	if len(ref.Authors) > 0 && len(best.Authors) > 0 {
		refFirst, bestFirst := ref.Authors[0], best.Authors[0]
		record("first_author", newCheck(
			normalize.LastName(refFirst) == normalize.LastName(bestFirst),
			refFirst, bestFirst))
	}
	if ref.Volume != "" && best.Volume != "" {
		record("volume", newCheck(ref.Volume == best.Volume, ref.Volume, best.Volume))
	}
	if ref.Issue != "" && best.Issue != "" {
		record("issue", newCheck(ref.Issue == best.Issue, ref.Issue, best.Issue))
	}
	if ref.Pages != "" && best.Pages != "" {
		record("pages", newCheck(foldPages(ref.Pages) == foldPages(best.Pages),
			ref.Pages, best.Pages))
	}
	if doi := normalize.DOI(ref.DOI); doi != "" && best.DOI != "" {
		record("doi", newCheck(strings.EqualFold(doi, best.DOI), doi, best.DOI))
	}

	n := len(res.SourcesFound())
	if hasError {
		res.Status = statusWithSources(statusErrorsFound, n)
	} else {
		res.Status = statusWithSources(statusVerified, n)
	}
}

func newCheck(match bool, manuscript, source string) *FieldCheck {
	status := "mismatch"
	if match {
		status = "match"
	}
	return &FieldCheck{Status: status, Manuscript: manuscript, Source: source}
}

func fuzzyCheck(sim, threshold float64, manuscript, source string) *FieldCheck {
	check := newCheck(sim > threshold, manuscript, source)
	rounded := math.Round(sim*100) / 100
	check.Similarity = &rounded
	return check
}

// foldPages maps en-dash page separators to plain hyphens.
func foldPages(pages string) string {
	return strings.ReplaceAll(pages, "–", "-")
}
