// Package verify resolves manuscript references against bibliographic
// sources and checks each field of the citation against the best match.
//
// A Verifier drives the per-reference fallback chain: identifier-based
// lookups first (DOI, then PMID), then a bibliographic search when no
// identifier resolves. Field comparison and the batched retraction pass
// operate on the resulting Result values.
package verify

import (
	"context"
	"fmt"
	"strings"

	"github.com/matsen/refcheck/internal/paper"
)

// Statuses reported per reference. Verified and errors-found statuses
// carry a source count and are built with statusWithSources.
const (
	StatusNotFound  = "NOT_FOUND"
	StatusRetracted = "RETRACTED"

	statusVerified    = "VERIFIED"
	statusErrorsFound = "ERRORS_FOUND"
)

// Similarity thresholds for fuzzy field matching. Journal titles are
// frequently abbreviated, so they get a looser bound than titles.
const (
	titleMatchThreshold   = 0.7
	journalMatchThreshold = 0.5
	searchMatchThreshold  = 0.5

	searchCandidates = 3
)

// CheckFields lists the comparable fields in report order.
var CheckFields = []string{
	"title", "year", "journal", "first_author", "volume", "issue", "pages", "doi",
}

// FieldCheck records the outcome of comparing one field between the
// manuscript reference and the best-matching source record. Similarity
// is set only for fuzzy-compared fields (title, journal).
type FieldCheck struct {
	Status     string   `json:"status"`
	Similarity *float64 `json:"similarity,omitempty"`
	Manuscript string   `json:"manuscript"`
	Source     string   `json:"source"`
}

// Match reports whether the check passed.
func (c *FieldCheck) Match() bool { return c.Status == "match" }

// Result is the verification outcome for a single reference. Sources
// holds every record found keyed by source name; SourceErrors holds
// error text for sources that failed outright. Retracted is the only
// field mutated after construction, by ApplyRetractions.
type Result struct {
	Index        int                      `json:"index"`
	Input        paper.Reference          `json:"input"`
	Status       string                   `json:"status"`
	Sources      map[string]*paper.Record `json:"-"`
	SourceErrors map[string]string        `json:"-"`
	FieldChecks  map[string]*FieldCheck   `json:"field_checks"`
	BestMatch    *paper.Record            `json:"best_match"`
	Retracted    bool                     `json:"retracted"`
}

// SourcesFound returns the names of the sources that produced a record,
// in fixed order.
func (r *Result) SourcesFound() []string {
	var found []string
	for _, name := range []string{paper.SourceCrossref, paper.SourcePubMed, paper.SourceSemanticScholar} {
		if r.Sources[name] != nil {
			found = append(found, name)
		}
	}
	return found
}

// Crossref is the DOI-registry source: authoritative for DOI resolution
// and usable for bibliographic search.
type Crossref interface {
	ResolveDOI(ctx context.Context, doi string) (*paper.Record, error)
	Search(ctx context.Context, query string, limit int) ([]paper.Record, error)
}

// Scholar is the citation-graph source, used only as a DOI fallback.
type Scholar interface {
	GetPaper(ctx context.Context, paperID string) (*paper.Record, error)
}

// PubMed is the biomedical index: PMID fetch, search, and the batch
// retraction lookup.
type PubMed interface {
	FetchByPMID(ctx context.Context, pmid string) (*paper.Record, error)
	Search(ctx context.Context, term string, limit int) ([]paper.Record, error)
	CheckRetractions(ctx context.Context, pmids []string) (map[string]bool, error)
}

// Verifier resolves references against the three sources. Sources may
// be nil, in which case their lookups are skipped.
type Verifier struct {
	crossref Crossref
	scholar  Scholar
	pubmed   PubMed
}

// New returns a Verifier backed by the given sources.
func New(cr Crossref, sc Scholar, pm PubMed) *Verifier {
	return &Verifier{crossref: cr, scholar: sc, pubmed: pm}
}

// Verify resolves one reference and compares its fields against the
// best match. Source failures are recorded on the Result; Verify itself
// never returns an error, so one bad reference cannot abort a batch.
func (v *Verifier) Verify(ctx context.Context, ref paper.Reference, index int) *Result {
	res := &Result{
		Index:        index,
		Input:        ref,
		Status:       StatusNotFound,
		Sources:      make(map[string]*paper.Record),
		SourceErrors: make(map[string]string),
		FieldChecks:  make(map[string]*FieldCheck),
	}

	v.resolve(ctx, ref, res)

	best := bestMatch(res)
	if best == nil {
		return res
	}
	res.BestMatch = best

	compareFields(ref, best, res)
	return res
}

// VerifyAll verifies each reference in order. The optional progress
// callback is invoked before each reference is resolved.
func (v *Verifier) VerifyAll(ctx context.Context, refs []paper.Reference, progress func(i, n int, ref paper.Reference)) []*Result {
	results := make([]*Result, 0, len(refs))
	for i, ref := range refs {
		if progress != nil {
			progress(i+1, len(refs), ref)
		}
		results = append(results, v.Verify(ctx, ref, i+1))
	}
	return results
}

// bestMatch picks the record used for field comparison. PubMed is the
// most authoritative for biomedical citations, then Crossref, then
// Semantic Scholar.
func bestMatch(res *Result) *paper.Record {
	for _, name := range []string{paper.SourcePubMed, paper.SourceCrossref, paper.SourceSemanticScholar} {
		if rec := res.Sources[name]; rec != nil {
			return rec
		}
	}
	return nil
}

func statusWithSources(prefix string, n int) string {
	if n == 1 {
		return fmt.Sprintf("%s (1 source)", prefix)
	}
	return fmt.Sprintf("%s (%d sources)", prefix, n)
}

// Summary aggregates final statuses across a batch.
type Summary struct {
	Total     int `json:"total"`
	Verified  int `json:"verified"`
	Errors    int `json:"errors_found"`
	NotFound  int `json:"not_found"`
	Retracted int `json:"retracted"`
}

// Summarize tallies results by status. Retracted results count only as
// retracted, matching the terminal-override rule.
func Summarize(results []*Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Retracted:
			s.Retracted++
		case strings.HasPrefix(r.Status, statusVerified):
			s.Verified++
		case strings.HasPrefix(r.Status, statusErrorsFound):
			s.Errors++
		default:
			s.NotFound++
		}
	}
	return s
}
