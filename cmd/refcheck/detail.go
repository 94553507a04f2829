package main

import (
	"context"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/matsen/refcheck/internal/paper"
	"github.com/matsen/refcheck/internal/report"
)

var doiLikeRe = regexp.MustCompile(`^10\.\d{4,}/`)
var pmidLikeRe = regexp.MustCompile(`^\d+$`)

var detailCmd = &cobra.Command{
	Use:   "detail <paper-id>",
	Short: "Show full metadata for one paper",
	Long: `Fetch detailed metadata for a paper by Semantic Scholar ID, DOI,
or PMID. Tries Semantic Scholar first and falls back to Crossref or
PubMed depending on what the identifier looks like.

Examples:
  refcheck detail 10.1056/NEJMoa2034577
  refcheck detail 33301246 --human
  refcheck detail 649def34f8be52c8b66281af98ae884c09aef38b`,
	Args: cobra.ExactArgs(1),
	Run:  runDetail,
}

func init() {
	rootCmd.AddCommand(detailCmd)
}

func runDetail(cmd *cobra.Command, args []string) {
	paperID := args[0]
	src := newSources()
	defer src.Close()

	rec := lookupPaper(context.Background(), src, paperID)
	if rec == nil {
		exitWithError(ExitNotFound, "paper not found in any source: %s", paperID)
	}

	if humanOutput {
		outputHuman("%s\n", report.PaperDetail(rec))
		return
	}
	outputJSON(rec)
}

// lookupPaper resolves an identifier against every source in turn.
func lookupPaper(ctx context.Context, src *sources, paperID string) *paper.Record {
	if rec, err := src.scholar.GetPaper(ctx, paperID); err == nil && rec.Title != "" {
		return rec
	}
	if doiLikeRe.MatchString(paperID) {
		progress("  Trying Crossref...")
		if rec, err := src.crossref.ResolveDOI(ctx, paperID); err == nil {
			return rec
		}
	}
	if pmidLikeRe.MatchString(paperID) {
		progress("  Trying PubMed...")
		if rec, err := src.pubmed.FetchByPMID(ctx, paperID); err == nil {
			return rec
		}
	}
	if rec, err := src.scholar.GetPaper(ctx, "DOI:"+paperID); err == nil && rec.Title != "" {
		return rec
	}
	return nil
}
