package main

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/matsen/refcheck/internal/paper"
	"github.com/matsen/refcheck/internal/report"
	"github.com/matsen/refcheck/internal/session"
)

var sessionCmd = &cobra.Command{
	Use:   "session [session-file]",
	Short: "List or inspect research sessions",
	Long: `Without arguments, list the research session files in the current
directory. With a file argument, show that session's searches and
collected papers.

Examples:
  refcheck session
  refcheck session research_session_long_covid_2026-08-31.json --human`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSession,
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}

// SessionListEntry summarizes one session file.
type SessionListEntry struct {
	File       string `json:"file"`
	Topic      string `json:"topic,omitempty"`
	PaperCount int    `json:"paper_count"`
	Error      string `json:"error,omitempty"`
}

func runSession(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		runSessionList()
		return
	}

	sess, err := session.Load(args[0])
	if err != nil {
		exitWithError(ExitDataError, "loading session: %v", err)
	}

	if !humanOutput {
		outputJSON(sess)
		return
	}

	outputHuman("Session:  %s\n", sess.Topic)
	outputHuman("Created:  %s\n", sess.CreatedAt.Format("2006-01-02 15:04"))
	outputHuman("Updated:  %s\n", sess.UpdatedAt.Format("2006-01-02 15:04"))
	outputHuman("Searches: %d\n", len(sess.Searches))
	for _, s := range sess.Searches {
		outputHuman("  [%s] %q (%d results)\n", s.Source, s.Query, s.ResultCount)
	}
	outputHuman("Papers:   %d\n\n", len(sess.Papers))
	outputHuman("%s\n", report.PaperTable(sessionPapers(sess), 0))
}

func runSessionList() {
	files, err := session.List(".")
	if err != nil {
		exitWithError(ExitError, "listing sessions: %v", err)
	}

	entries := make([]SessionListEntry, 0, len(files))
	for _, f := range files {
		entry := SessionListEntry{File: f}
		if sess, err := session.Load(f); err != nil {
			entry.Error = err.Error()
		} else {
			entry.Topic = sess.Topic
			entry.PaperCount = len(sess.Papers)
		}
		entries = append(entries, entry)
	}

	if !humanOutput {
		outputJSON(entries)
		return
	}
	if len(entries) == 0 {
		outputHuman("No session files found in current directory.\n")
		return
	}
	outputHuman("Available sessions:\n")
	for _, e := range entries {
		if e.Error != "" {
			outputHuman("  %s  --  (could not read)\n", e.File)
			continue
		}
		outputHuman("  %s  --  %s (%d papers)\n", e.File, e.Topic, e.PaperCount)
	}
}

// sessionPapers flattens the paper map in a stable order, most cited
// first.
func sessionPapers(sess *session.Session) []paper.Record {
	papers := make([]paper.Record, 0, len(sess.Papers))
	for _, p := range sess.Papers {
		papers = append(papers, p.Record)
	}
	sort.SliceStable(papers, func(i, j int) bool {
		if papers[i].CitationCount != papers[j].CitationCount {
			return papers[i].CitationCount > papers[j].CitationCount
		}
		return papers[i].Title < papers[j].Title
	})
	return papers
}
