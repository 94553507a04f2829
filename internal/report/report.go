// Package report renders verification results and paper records as
// human-readable text and as the JSON structures emitted by the CLI.
package report

import (
	"fmt"
	"strings"

	"github.com/matsen/refcheck/internal/paper"
	"github.com/matsen/refcheck/internal/verify"
)

const ruleWidth = 72

// Verification renders the full citation verification report.
func Verification(results []*verify.Result) string {
	var b strings.Builder
	rule := strings.Repeat("=", ruleWidth)
	b.WriteString(rule + "\n")
	b.WriteString("CITATION VERIFICATION REPORT\n")
	b.WriteString(rule + "\n")

	for _, r := range results {
		writeResult(&b, r)
	}

	s := verify.Summarize(results)
	b.WriteString("\n" + rule + "\n")
	b.WriteString("SUMMARY\n")
	fmt.Fprintf(&b, "  Total references:  %d\n", s.Total)
	fmt.Fprintf(&b, "  Verified:          %d\n", s.Verified)
	fmt.Fprintf(&b, "  Errors found:      %d\n", s.Errors)
	fmt.Fprintf(&b, "  Not found:         %d\n", s.NotFound)
	if s.Retracted > 0 {
		fmt.Fprintf(&b, "  RETRACTED:         %d\n", s.Retracted)
	}
	b.WriteString(rule)
	return b.String()
}

func writeResult(b *strings.Builder, r *verify.Result) {
	title := r.Input.Title
	if title == "" {
		title = r.Input.Raw
	}
	if title == "" {
		title = "(no title)"
	}
	title = truncate(title, 70)

	label := ""
	if r.Input.Label != "" {
		label = fmt.Sprintf(" [%s]", r.Input.Label)
	}

	b.WriteString("\n")
	switch {
	case r.Retracted:
		fmt.Fprintf(b, "Reference %d%s: *** RETRACTED ***\n", r.Index, label)
	case r.Status == verify.StatusNotFound:
		fmt.Fprintf(b, "Reference %d%s: NOT FOUND\n", r.Index, label)
	default:
		fmt.Fprintf(b, "Reference %d%s: %s\n", r.Index, label, r.Status)
	}
	fmt.Fprintf(b, "  Title:  %s\n", title)

	for _, field := range verify.CheckFields {
		check, ok := r.FieldChecks[field]
		if !ok {
			continue
		}
		if check.Match() {
			fmt.Fprintf(b, "  %-14s [OK]\n", field)
		} else {
			fmt.Fprintf(b, "  %-14s [XX] manuscript=%q vs source=%q\n",
				field, check.Manuscript, check.Source)
		}
	}

	if bm := r.BestMatch; bm != nil {
		if line := confirmedLine(bm); line != "" {
			fmt.Fprintf(b, "  Confirmed:  %s\n", line)
		}
	}

	if found := r.SourcesFound(); len(found) > 0 {
		names := make([]string, len(found))
		for i, s := range found {
			names[i] = sourceLabel(s)
		}
		fmt.Fprintf(b, "  Sources: %s\n", strings.Join(names, ", "))
	} else if msg := r.SourceErrors[paper.SourceCrossref]; msg != "" {
		fmt.Fprintf(b, "  Crossref: %s\n", msg)
	}

	if r.Retracted {
		pmid := r.Input.PMID
		if pmid == "" && r.BestMatch != nil {
			pmid = r.BestMatch.PMID
		}
		fmt.Fprintf(b, "  *** WARNING: This paper has been RETRACTED (PMID: %s) ***\n", pmid)
	}
}

// confirmedLine summarizes the best match's metadata.
func confirmedLine(bm *paper.Record) string {
	var parts []string
	if vip := volIssuePagesSummary(bm); vip != "" {
		parts = append(parts, vip)
	}
	if bm.PMID != "" {
		parts = append(parts, "PMID: "+bm.PMID)
	}
	if len(bm.Authors) > 0 {
		n := len(bm.Authors)
		if n > 3 {
			n = 3
		}
		parts = append(parts, "Authors: "+strings.Join(bm.Authors[:n], ", "))
	}
	return strings.Join(parts, " | ")
}

func volIssuePagesSummary(bm *paper.Record) string {
	s := ""
	if bm.Volume != "" {
		s = "Vol " + bm.Volume
	}
	if bm.Issue != "" {
		if s != "" {
			s += "(" + bm.Issue + ")"
		} else {
			s = "Issue " + bm.Issue
		}
	}
	if bm.Pages != "" {
		if s != "" {
			s += ":" + bm.Pages
		} else {
			s = bm.Pages
		}
	}
	return s
}

func sourceLabel(source string) string {
	switch source {
	case paper.SourceCrossref:
		return "Crossref"
	case paper.SourcePubMed:
		return "PubMed"
	case paper.SourceSemanticScholar:
		return "Semantic Scholar"
	}
	return source
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-2] + ".."
}

// VerificationJSON is the machine-readable form of a batch run.
type VerificationJSON struct {
	Results []ResultJSON `json:"verification_results"`
	Total   int          `json:"total"`
}

// ResultJSON flattens one verification result for JSON output. Status
// reflects the retraction override.
type ResultJSON struct {
	Index        int                           `json:"index"`
	Label        string                        `json:"label,omitempty"`
	Status       string                        `json:"status"`
	Input        paper.Reference               `json:"input"`
	FieldChecks  map[string]*verify.FieldCheck `json:"field_checks"`
	SourcesFound []string                      `json:"sources_found"`
	BestMatch    *paper.Record                 `json:"best_match"`
	Retracted    bool                          `json:"retracted,omitempty"`
}

// ToJSON converts a batch of results into the JSON report structure.
func ToJSON(results []*verify.Result) VerificationJSON {
	out := VerificationJSON{Total: len(results)}
	for _, r := range results {
		out.Results = append(out.Results, ResultJSON{
			Index:        r.Index,
			Label:        r.Input.Label,
			Status:       r.Status,
			Input:        r.Input,
			FieldChecks:  r.FieldChecks,
			SourcesFound: r.SourcesFound(),
			BestMatch:    r.BestMatch,
			Retracted:    r.Retracted,
		})
	}
	return out
}
