package main

import (
	"context"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/refcheck/internal/dedup"
	"github.com/matsen/refcheck/internal/paper"
	"github.com/matsen/refcheck/internal/pubmed"
	"github.com/matsen/refcheck/internal/report"
	"github.com/matsen/refcheck/internal/session"
)

var (
	searchLimit  int
	searchYear   string
	searchFilter string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search Semantic Scholar and PubMed",
	Long: `Search both Semantic Scholar and PubMed, deduplicate the merged
results, and save them as a research session.

The --filter flag applies a PubMed clinical-query hedge to restrict
results to a study category.

Examples:
  refcheck search "fibromyalgia exercise therapy"
  refcheck search "long covid" --limit 10 --year 2020-2024
  refcheck search "statin myopathy" --filter therapy --human`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "Maximum results per source")
	searchCmd.Flags().StringVar(&searchYear, "year", "", "Publication year range (e.g., 2020-2024)")
	searchCmd.Flags().StringVar(&searchFilter, "filter", "", "Clinical query filter: "+strings.Join(pubmed.FilterNames(), "|"))
	rootCmd.AddCommand(searchCmd)
}

// SearchResponse is the JSON output of the search command.
type SearchResponse struct {
	Query       string         `json:"query"`
	Papers      []paper.Record `json:"merged_papers"`
	SessionFile string         `json:"session_file,omitempty"`
	Total       int            `json:"total"`
}

func runSearch(cmd *cobra.Command, args []string) {
	query := strings.Join(args, " ")

	pmQuery := query
	if searchFilter != "" {
		filtered, ok := pubmed.ApplyFilter(query, searchFilter)
		if !ok {
			exitWithError(ExitError, "unknown filter %q: available: %s",
				searchFilter, strings.Join(pubmed.FilterNames(), ", "))
		}
		pmQuery = filtered
	}

	src := newSources()
	defer src.Close()
	ctx := context.Background()

	progress("Searching Semantic Scholar for: %s", query)
	s2Papers, err := src.scholarClient.Search(ctx, query, searchLimit, searchYear, "Medicine")
	if err != nil {
		progress("  S2 warning: %v", err)
		progress("  Running in PubMed-only mode. Citation counts unavailable.")
	}
	progress("  Found %d papers from Semantic Scholar", len(s2Papers))

	progress("Searching PubMed for: %s", query)
	minDate, maxDate := pubmedDateRange(searchYear)
	pmPapers, err := src.pubmedClient.SearchRange(ctx, pmQuery, searchLimit, minDate, maxDate)
	if err != nil {
		progress("  PM warning: %v", err)
	}
	progress("  Found %d papers from PubMed", len(pmPapers))

	merged := dedup.Merge(s2Papers, pmPapers)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CitationCount > merged[j].CitationCount
	})
	progress("Total unique papers after deduplication: %d", len(merged))

	sess := session.New(query)
	sess.AddPapers(merged, query, paper.SourceBoth)
	sessionFile, err := sess.Save(".")
	if err != nil {
		progress("saving session: %v", err)
		sessionFile = ""
	} else {
		progress("Session saved to: %s", sessionFile)
	}

	if humanOutput {
		outputHuman("%s\n", report.PaperTable(merged, 0))
		return
	}
	outputJSON(SearchResponse{
		Query:       query,
		Papers:      merged,
		SessionFile: sessionFile,
		Total:       len(merged),
	})
}

// pubmedDateRange converts a YYYY-YYYY range into E-utilities date
// bounds.
func pubmedDateRange(yearRange string) (minDate, maxDate string) {
	parts := strings.SplitN(yearRange, "-", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", ""
	}
	return parts[0] + "/01/01", parts[1] + "/12/31"
}
