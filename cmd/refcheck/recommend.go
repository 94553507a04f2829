package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matsen/refcheck/internal/paper"
	"github.com/matsen/refcheck/internal/report"
)

var recommendLimit int

var recommendCmd = &cobra.Command{
	Use:   "recommend <paper-id> [paper-id...]",
	Short: "Recommend papers based on seed papers",
	Long: `Get paper recommendations from the Semantic Scholar
recommendations API based on one or more seed papers.

Examples:
  refcheck recommend 10.1056/NEJMoa2034577
  refcheck recommend 10.1/a 10.1/b --limit 10 --human`,
	Args: cobra.MinimumNArgs(1),
	Run:  runRecommend,
}

func init() {
	recommendCmd.Flags().IntVar(&recommendLimit, "limit", 20, "Maximum number of recommendations")
	rootCmd.AddCommand(recommendCmd)
}

// RecommendResponse is the JSON output of the recommend command.
type RecommendResponse struct {
	Seeds  []string       `json:"seeds"`
	Papers []paper.Record `json:"papers"`
	Total  int            `json:"total"`
}

func runRecommend(cmd *cobra.Command, args []string) {
	src := newSources()
	defer src.Close()

	progress("Getting recommendations based on %d seed paper(s)", len(args))
	papers, err := src.scholarClient.Recommend(context.Background(), args, recommendLimit)
	if err != nil {
		exitWithError(ExitError, "fetching recommendations: %v", err)
	}
	progress("Found %d recommended papers", len(papers))

	if humanOutput {
		outputHuman("%s\n", report.PaperTable(papers, 0))
		return
	}
	outputJSON(RecommendResponse{Seeds: args, Papers: papers, Total: len(papers)})
}
