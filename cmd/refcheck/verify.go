package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/refcheck/internal/normalize"
	"github.com/matsen/refcheck/internal/paper"
	"github.com/matsen/refcheck/internal/pdfref"
	"github.com/matsen/refcheck/internal/refparse"
	"github.com/matsen/refcheck/internal/report"
	"github.com/matsen/refcheck/internal/verify"
)

var (
	verifyOutputFile        string
	verifyNoRetractionCheck bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify <references-file>",
	Short: "Verify a reference list against bibliographic sources",
	Long: `Verify citations in a reference list against Crossref, PubMed, and
Semantic Scholar.

The file may be JSON (an array of references, or an object with a
"references" array), free text (one reference per line or paragraph),
or a manuscript PDF, in which case the reference section is extracted
and parsed.

Examples:
  refcheck verify references.json
  refcheck verify bibliography.txt --human
  refcheck verify manuscript.pdf --output results.json
  refcheck verify references.json --no-retraction-check`,
	Args: cobra.ExactArgs(1),
	Run:  runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyOutputFile, "output", "", "Write JSON results to a file")
	verifyCmd.Flags().BoolVar(&verifyNoRetractionCheck, "no-retraction-check", false, "Skip the batch retraction check")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) {
	path := args[0]
	refs, err := loadReferences(path)
	if err != nil {
		exitWithError(ExitDataError, "loading references from %s: %v", path, err)
	}
	if len(refs) == 0 {
		exitWithError(ExitDataError, "no references found in %s", path)
	}

	src := newSources()
	defer src.Close()
	v := src.verifier()

	progress("Loaded %d references from %s", len(refs), path)

	ctx := context.Background()
	results := v.VerifyAll(ctx, refs, func(i, n int, ref paper.Reference) {
		preview := ref.Title
		if preview == "" {
			preview = ref.Raw
		}
		if len(preview) > 50 {
			preview = preview[:50]
		}
		progress("  [%d/%d] Checking: %s...", i, n, preview)
	})

	if !verifyNoRetractionCheck {
		retracted, err := v.CheckRetractions(ctx, results)
		if err != nil {
			progress("retraction check failed: %v", err)
		} else if len(retracted) > 0 {
			progress("Found %d retracted paper(s)", len(retracted))
		}
	}

	out := report.ToJSON(results)

	if verifyOutputFile != "" {
		if err := writeJSONFile(verifyOutputFile, out); err != nil {
			exitWithError(ExitError, "writing %s: %v", verifyOutputFile, err)
		}
		progress("JSON results written to: %s", verifyOutputFile)
	}

	if humanOutput {
		outputHuman("%s\n", report.Verification(results))
	} else {
		outputJSON(out)
	}

	if s := verify.Summarize(results); s.NotFound == s.Total {
		os.Exit(ExitNotFound)
	}
}

// loadReferences picks the loader by file type: PDFs go through
// reference-section extraction, everything else through the JSON/text
// loader.
func loadReferences(path string) ([]paper.Reference, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		refs, err := pdfref.ExtractReferences(path)
		if err != nil {
			return nil, err
		}
		if doi, err := pdfref.ExtractDOI(path); err == nil && doi != "" {
			progress("Manuscript DOI: %s", doi)
			refs = dropSelfCitations(refs, doi)
		}
		return refs, nil
	}
	return refparse.LoadFile(path)
}

// dropSelfCitations removes entries carrying the manuscript's own DOI.
// Running headers and footers bleed it into the extracted reference
// section, where it parses as a spurious citation.
func dropSelfCitations(refs []paper.Reference, manuscriptDOI string) []paper.Reference {
	own := normalize.DOI(manuscriptDOI)
	kept := refs[:0]
	for _, ref := range refs {
		if doi := normalize.DOI(ref.DOI); doi != "" && strings.EqualFold(doi, own) {
			continue
		}
		kept = append(kept, ref)
	}
	return kept
}
