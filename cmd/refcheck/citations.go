package main

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matsen/refcheck/internal/paper"
	"github.com/matsen/refcheck/internal/report"
	"github.com/matsen/refcheck/internal/s2"
	"github.com/matsen/refcheck/internal/session"
)

var (
	citationsDirection string
	citationsLimit     int
	citationsSession   string
)

var citationsCmd = &cobra.Command{
	Use:   "citations <paper-id>",
	Short: "List papers citing or cited by a paper",
	Long: `Fetch forward citations (papers citing this one) or backward
references (papers this one cites) from Semantic Scholar.

With --session, the citation edges are recorded in an existing
research session file.

Examples:
  refcheck citations 10.1056/NEJMoa2034577
  refcheck citations 33301246 --direction references --human
  refcheck citations 10.1/x --session research_session_topic_2026-08-31.json`,
	Args: cobra.ExactArgs(1),
	Run:  runCitations,
}

func init() {
	citationsCmd.Flags().StringVar(&citationsDirection, "direction", string(s2.CitedBy), "Traversal direction: citedBy|references")
	citationsCmd.Flags().IntVar(&citationsLimit, "limit", 50, "Maximum number of results")
	citationsCmd.Flags().StringVar(&citationsSession, "session", "", "Record edges in a session file")
	rootCmd.AddCommand(citationsCmd)
}

// CitationsResponse is the JSON output of the citations command.
type CitationsResponse struct {
	PaperID   string         `json:"paper_id"`
	Direction string         `json:"direction"`
	Papers    []paper.Record `json:"papers"`
	Total     int            `json:"total"`
}

func runCitations(cmd *cobra.Command, args []string) {
	paperID := args[0]
	dir := s2.Direction(citationsDirection)

	src := newSources()
	defer src.Close()

	progress("Fetching %s for paper: %s", citationsDirection, paperID)
	papers, err := src.scholarClient.Citations(context.Background(), paperID, dir, citationsLimit)
	if err != nil {
		exitWithError(ExitError, "fetching citations: %v", err)
	}
	progress("Found %d papers", len(papers))

	sort.SliceStable(papers, func(i, j int) bool {
		return papers[i].CitationCount > papers[j].CitationCount
	})

	if citationsSession != "" {
		sess, err := session.Load(citationsSession)
		if err != nil {
			exitWithError(ExitDataError, "loading session: %v", err)
		}
		sess.AddCitations(paperID, dir == s2.CitedBy, papers)
		if _, err := sess.Save(filepath.Dir(citationsSession)); err != nil {
			exitWithError(ExitError, "saving session: %v", err)
		}
		progress("Citation edges recorded in %s", citationsSession)
	}

	if humanOutput {
		outputHuman("%s\n", report.PaperTable(papers, 0))
		return
	}
	outputJSON(CitationsResponse{
		PaperID:   paperID,
		Direction: citationsDirection,
		Papers:    papers,
		Total:     len(papers),
	})
}
