package verify

import (
	"context"
	"regexp"
	"strings"

	"github.com/matsen/refcheck/internal/normalize"
	"github.com/matsen/refcheck/internal/paper"
)

var (
	doiSubstringRe  = regexp.MustCompile(`(?i)(?:doi[:\s]*)?10\.\d{4,}/\S+`)
	pmidSubstringRe = regexp.MustCompile(`(?i)PMID[:\s]*\d+`)
)

// resolve runs the fallback chain for one reference, recording every
// record found in res.Sources. Identifier lookups are not mutually
// exclusive: a DOI hit does not suppress the PMID fetch. The
// bibliographic search runs only when neither Crossref nor PubMed
// produced a record.
func (v *Verifier) resolve(ctx context.Context, ref paper.Reference, res *Result) {
	doi := normalize.DOI(ref.DOI)

	if doi != "" && v.crossref != nil {
		rec, err := v.crossref.ResolveDOI(ctx, doi)
		if err != nil {
			res.SourceErrors[paper.SourceCrossref] = err.Error()
		} else {
			res.Sources[paper.SourceCrossref] = rec
		}
	}

	// DOI fallbacks, stopping at the first source that resolves it.
	if doi != "" && res.Sources[paper.SourceCrossref] == nil && v.scholar != nil {
		if rec, err := v.scholar.GetPaper(ctx, "DOI:"+doi); err == nil && rec.Title != "" {
			res.Sources[paper.SourceSemanticScholar] = rec
		}
	}
	if doi != "" && res.Sources[paper.SourceCrossref] == nil &&
		res.Sources[paper.SourceSemanticScholar] == nil && v.pubmed != nil {
		if recs, err := v.pubmed.Search(ctx, `"`+doi+`"[doi]`, 1); err == nil && len(recs) > 0 {
			res.Sources[paper.SourcePubMed] = &recs[0]
		}
	}

	if ref.PMID != "" && v.pubmed != nil {
		if rec, err := v.pubmed.FetchByPMID(ctx, ref.PMID); err == nil {
			res.Sources[paper.SourcePubMed] = rec
		}
	}

	if res.Sources[paper.SourceCrossref] == nil && res.Sources[paper.SourcePubMed] == nil {
		v.searchFallback(ctx, ref, res)
	}
}

// searchFallback runs a top-3 bibliographic search when no identifier
// resolved, accepting the first candidate whose title is similar enough
// to the reference.
func (v *Verifier) searchFallback(ctx context.Context, ref paper.Reference, res *Result) {
	query := bibliographicQuery(ref)
	if query == "" {
		return
	}
	want := ref.Title
	if want == "" {
		want = ref.Raw
	}

	if v.crossref != nil {
		if recs, err := v.crossref.Search(ctx, query, searchCandidates); err == nil {
			for i := range recs {
				if normalize.TokenSimilarity(want, recs[i].Title) > searchMatchThreshold {
					res.Sources[paper.SourceCrossref] = &recs[i]
					break
				}
			}
		}
	}
	if res.Sources[paper.SourcePubMed] == nil && v.pubmed != nil {
		if recs, err := v.pubmed.Search(ctx, query, searchCandidates); err == nil {
			for i := range recs {
				if normalize.TokenSimilarity(want, recs[i].Title) > searchMatchThreshold {
					res.Sources[paper.SourcePubMed] = &recs[i]
					break
				}
			}
		}
	}
}

// bibliographicQuery builds the free-text search query: the title, or
// the raw citation with identifier substrings stripped, plus the first
// author name.
func bibliographicQuery(ref paper.Reference) string {
	var parts []string
	switch {
	case ref.Title != "":
		parts = append(parts, ref.Title)
	case ref.Raw != "":
		clean := doiSubstringRe.ReplaceAllString(ref.Raw, "")
		clean = pmidSubstringRe.ReplaceAllString(clean, "")
		if clean = strings.TrimSpace(clean); clean != "" {
			parts = append(parts, clean)
		}
	}
	if first := ref.FirstAuthor(); first != "" {
		parts = append(parts, first)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
