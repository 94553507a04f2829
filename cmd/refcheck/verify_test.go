package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matsen/refcheck/internal/paper"
)

func TestLoadReferencesJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "refs.json")
	content := `[{"title": "A Paper", "doi": "10.1/a", "year": 2020}]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	refs, err := loadReferences(path)
	if err != nil {
		t.Fatalf("loadReferences: %v", err)
	}
	if len(refs) != 1 || refs[0].DOI != "10.1/a" || refs[0].Year != 2020 {
		t.Errorf("refs = %+v", refs)
	}
}

func TestLoadReferencesText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "refs.txt")
	content := "1. Smith J. First paper. J Med. 2020;10(2):100-110.\n2. Doe A. Second paper. PMID: 12345"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	refs, err := loadReferences(path)
	if err != nil {
		t.Fatalf("loadReferences: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("refs = %+v", refs)
	}
	if refs[1].PMID != "12345" {
		t.Errorf("pmid = %q", refs[1].PMID)
	}
}

func TestLoadReferencesMissingFile(t *testing.T) {
	if _, err := loadReferences(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDropSelfCitations(t *testing.T) {
	refs := []paper.Reference{
		{Title: "The manuscript itself", DOI: "https://doi.org/10.1056/NEJMoa2034577"},
		{Title: "A real citation", DOI: "10.1234/other"},
		{Title: "No identifier at all"},
	}

	got := dropSelfCitations(refs, "10.1056/nejmoa2034577")
	if len(got) != 2 {
		t.Fatalf("got %d refs, want 2: %+v", len(got), got)
	}
	if got[0].DOI != "10.1234/other" {
		t.Errorf("got[0].DOI = %q", got[0].DOI)
	}
	if got[1].Title != "No identifier at all" {
		t.Errorf("DOI-less references must be kept: %+v", got[1])
	}
}

func TestPubmedDateRange(t *testing.T) {
	tests := []struct {
		in       string
		min, max string
	}{
		{"2020-2024", "2020/01/01", "2024/12/31"},
		{"", "", ""},
		{"2020", "", ""},
		{"-2024", "", ""},
	}
	for _, tt := range tests {
		min, max := pubmedDateRange(tt.in)
		if min != tt.min || max != tt.max {
			t.Errorf("pubmedDateRange(%q) = %q, %q", tt.in, min, max)
		}
	}
}
