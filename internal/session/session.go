// Package session persists research sessions: searches performed,
// papers collected, and citation-graph edges, stored as one JSON file
// per topic.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matsen/refcheck/internal/dedup"
	"github.com/matsen/refcheck/internal/paper"
)

// FilePattern matches session files in a directory.
const FilePattern = "research_session_*.json"

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Search logs one query made while the session was active.
type Search struct {
	Source      string    `json:"source"`
	Query       string    `json:"query"`
	Timestamp   time.Time `json:"timestamp"`
	ResultCount int       `json:"result_count"`
}

// Paper is a collected record plus the user's annotations.
type Paper struct {
	paper.Record
	Tags  []string `json:"tags"`
	Notes string   `json:"notes"`
}

// Edges holds the citation-graph neighbors of one paper.
type Edges struct {
	Cites   []string `json:"cites"`
	CitedBy []string `json:"cited_by"`
}

// Session is the on-disk research session document.
type Session struct {
	ID            string            `json:"session_id"`
	Topic         string            `json:"topic"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	Filename      string            `json:"filename"`
	Searches      []Search          `json:"searches_performed"`
	Papers        map[string]*Paper `json:"papers"`
	CitationGraph map[string]*Edges `json:"citation_graph"`
}

// New creates a session for a topic. The filename embeds a slug of the
// topic and today's date.
func New(topic string) *Session {
	now := time.Now()
	slug := strings.Trim(slugRe.ReplaceAllString(strings.ToLower(topic), "_"), "_")
	return &Session{
		ID:            uuid.NewString(),
		Topic:         topic,
		CreatedAt:     now,
		UpdatedAt:     now,
		Filename:      fmt.Sprintf("research_session_%s_%s.json", slug, now.Format("2006-01-02")),
		Searches:      []Search{},
		Papers:        make(map[string]*Paper),
		CitationGraph: make(map[string]*Edges),
	}
}

// Load reads a session file.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing session %s: %w", path, err)
	}
	if s.Papers == nil {
		s.Papers = make(map[string]*Paper)
	}
	if s.CitationGraph == nil {
		s.CitationGraph = make(map[string]*Edges)
	}
	return &s, nil
}

// Save writes the session into dir under its own filename, bumping
// UpdatedAt. Returns the full path written.
func (s *Session) Save(dir string) (string, error) {
	s.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, s.Filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing session: %w", err)
	}
	return path, nil
}

// List returns the session files in dir, sorted by name.
func List(dir string) ([]string, error) {
	return filepath.Glob(filepath.Join(dir, FilePattern))
}

// AddPapers logs a search and folds its results into the collection.
// Papers are keyed like the deduplicator; an existing entry is merged
// fill-only and keyless records are skipped.
func (s *Session) AddPapers(papers []paper.Record, query, source string) {
	s.Searches = append(s.Searches, Search{
		Source:      source,
		Query:       query,
		Timestamp:   time.Now(),
		ResultCount: len(papers),
	})
	for i := range papers {
		p := papers[i]
		key := dedup.Key(&p)
		if key == "" {
			continue
		}
		if existing, ok := s.Papers[key]; ok {
			dedup.Fill(&existing.Record, &p)
			if existing.Source != p.Source {
				existing.Source = paper.SourceBoth
			}
			continue
		}
		s.Papers[key] = &Paper{Record: p, Tags: []string{}}
	}
}

// AddCitations records the citation-graph neighbors of a paper in one
// direction, replacing any previous listing for that direction.
func (s *Session) AddCitations(paperID string, citedBy bool, papers []paper.Record) {
	edges, ok := s.CitationGraph[paperID]
	if !ok {
		edges = &Edges{Cites: []string{}, CitedBy: []string{}}
		s.CitationGraph[paperID] = edges
	}
	ids := make([]string, 0, len(papers))
	for i := range papers {
		id := papers[i].S2ID
		if id == "" {
			id = papers[i].DOI
		}
		ids = append(ids, id)
	}
	if citedBy {
		edges.CitedBy = ids
	} else {
		edges.Cites = ids
	}
}
