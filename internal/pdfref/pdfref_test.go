package pdfref

import (
	"testing"

	"github.com/matsen/refcheck/internal/refparse"
)

func TestFindDOI(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain", "doi: 10.1056/NEJMoa2034577 in text", "10.1056/NEJMoa2034577"},
		{"trailing punctuation", "see 10.1038/s41586-021-03819-2.", "10.1038/s41586-021-03819-2"},
		{"too short rejected", "10.1/x", ""},
		{"none", "no identifiers here", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findDOI(tt.text); got != tt.want {
				t.Errorf("findDOI(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestReferencesSection(t *testing.T) {
	text := "Introduction\nWe cite references throughout.\n\nREFERENCES\n1. Smith J. A paper. J Stuff. 2020.\n2. Doe A. Another. J Things. 2021."
	section, ok := ReferencesSection(text)
	if !ok {
		t.Fatal("section not found")
	}
	if section[0] != '1' {
		t.Errorf("section = %q", section)
	}
}

func TestReferencesSectionLastHeadingWins(t *testing.T) {
	text := "Contents\nReferences\nChapter text mentioning nothing.\n\nReferences\n1. Only real entry."
	section, ok := ReferencesSection(text)
	if !ok {
		t.Fatal("section not found")
	}
	if section != "1. Only real entry." {
		t.Errorf("section = %q", section)
	}
}

func TestReferencesSectionMissing(t *testing.T) {
	if _, ok := ReferencesSection("no heading anywhere"); ok {
		t.Error("unexpected section")
	}
}

func TestReferencesSectionParses(t *testing.T) {
	text := "Body text.\n\nReferences\n1. Smith J. Trial of things. J Med. 2020;10(2):100-110. doi:10.1056/abc123\n2. Doe A. Second paper. PMID: 12345"
	section, ok := ReferencesSection(text)
	if !ok {
		t.Fatal("section not found")
	}
	// Wire through the reference parser the way ExtractReferences does.
	refs, err := refparse.Parse(section)
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 2 {
		t.Fatalf("refs = %+v", refs)
	}
	if refs[0].DOI != "10.1056/abc123" {
		t.Errorf("doi = %q", refs[0].DOI)
	}
	if refs[1].PMID != "12345" {
		t.Errorf("pmid = %q", refs[1].PMID)
	}
}
