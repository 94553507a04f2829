package main

import (
	"context"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/refcheck/internal/paper"
	"github.com/matsen/refcheck/internal/report"
	"github.com/matsen/refcheck/internal/s2"
)

var authorLimit int

var authorCmd = &cobra.Command{
	Use:   "author <name>",
	Short: "Find an author and list their papers",
	Long: `Search for an author on Semantic Scholar and fetch the papers of
the top match. Falls back to a PubMed author search when Semantic
Scholar finds nothing.

Examples:
  refcheck author "Jennifer Doudna"
  refcheck author "E V Koonin" --limit 30 --human`,
	Args: cobra.MinimumNArgs(1),
	Run:  runAuthor,
}

func init() {
	authorCmd.Flags().IntVar(&authorLimit, "limit", 50, "Maximum number of papers")
	rootCmd.AddCommand(authorCmd)
}

// AuthorResponse is the JSON output of the author command.
type AuthorResponse struct {
	Authors []s2.Author    `json:"authors,omitempty"`
	Papers  []paper.Record `json:"papers"`
	Source  string         `json:"source"`
}

func runAuthor(cmd *cobra.Command, args []string) {
	name := strings.Join(args, " ")
	src := newSources()
	defer src.Close()
	ctx := context.Background()

	progress("Searching for author: %s", name)
	authors, err := src.scholarClient.SearchAuthors(ctx, name, 5)
	if err != nil {
		progress("  S2 warning: %v", err)
	}

	if len(authors) == 0 {
		runAuthorPubMedFallback(ctx, src, name)
		return
	}

	if humanOutput {
		for _, a := range authors {
			outputHuman("\n  %s (ID: %s)\n", a.Name, a.AuthorID)
			outputHuman("    Papers: %d | Citations: %d | h-index: %d\n",
				a.PaperCount, a.CitationCount, a.HIndex)
		}
	}

	progress("Fetching papers for top result: %s", authors[0].Name)
	papers, err := src.scholarClient.AuthorPapers(ctx, authors[0].AuthorID, authorLimit)
	if err != nil {
		exitWithError(ExitError, "fetching author papers: %v", err)
	}
	progress("Found %d papers", len(papers))

	// Most recent work first.
	sort.SliceStable(papers, func(i, j int) bool {
		return papers[i].Year > papers[j].Year
	})

	if humanOutput {
		outputHuman("\n%s\n", report.PaperTable(papers, 0))
		return
	}
	outputJSON(AuthorResponse{
		Authors: authors,
		Papers:  papers,
		Source:  paper.SourceSemanticScholar,
	})
}

func runAuthorPubMedFallback(ctx context.Context, src *sources, name string) {
	progress("  Falling back to PubMed author search...")
	papers, err := src.pubmedClient.SearchAuthor(ctx, name, 30)
	if err != nil {
		exitWithError(ExitError, "pubmed author search: %v", err)
	}
	if len(papers) == 0 {
		exitWithError(ExitNotFound, "no papers found for author %s", name)
	}
	progress("Found %d papers by %s on PubMed", len(papers), name)

	if humanOutput {
		outputHuman("%s\n", report.PaperTable(papers, 0))
		return
	}
	outputJSON(AuthorResponse{Papers: papers, Source: paper.SourcePubMed})
}
