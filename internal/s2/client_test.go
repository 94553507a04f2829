package s2

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const paperJSON = `{
  "paperId": "abc123",
  "externalIds": {"DOI": "10.1/x", "PubMed": "33301246"},
  "title": "A Paper",
  "abstract": "Some abstract.",
  "year": 2020,
  "venue": "ic ml",
  "journal": {"name": "Journal of Testing", "volume": "12", "pages": "1-10"},
  "publicationVenue": {"name": "Intl Conf on Testing"},
  "publicationDate": "2020-06-01",
  "citationCount": 7,
  "authors": [{"name": "Jane Doe"}, {"name": "John Smith"}]
}`

func TestGetPaper(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-api-key")
		w.Write([]byte(paperJSON))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithAPIKey("secret"))
	rec, err := client.GetPaper(context.Background(), "DOI:10.1/x")
	if err != nil {
		t.Fatalf("GetPaper: %v", err)
	}

	if !strings.HasPrefix(gotPath, "/paper/DOI:") {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "secret" {
		t.Errorf("x-api-key = %q", gotKey)
	}
	if rec.S2ID != "abc123" || rec.DOI != "10.1/x" || rec.PMID != "33301246" {
		t.Errorf("identifiers: %+v", rec)
	}
	if rec.Journal != "Intl Conf on Testing" {
		t.Errorf("Journal = %q, publicationVenue name should win", rec.Journal)
	}
	if rec.Volume != "12" || rec.Pages != "1-10" {
		t.Errorf("volume/pages: %+v", rec)
	}
	if rec.Source != "semantic_scholar" {
		t.Errorf("Source = %q", rec.Source)
	}
}

func TestGetPaperEmptyIDIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.GetPaper(context.Background(), "DOI:10.9999/missing")
	if !IsNotFound(err) {
		t.Errorf("err = %v, want not-found", err)
	}
}

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("query") != "chronic fatigue" || q.Get("fieldsOfStudy") != "Medicine" {
			t.Errorf("query params = %v", q)
		}
		w.Write([]byte(`{"total": 1, "data": [` + paperJSON + `]}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	records, err := client.Search(context.Background(), "chronic fatigue", 10, "", "Medicine")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(records) != 1 || records[0].Title != "A Paper" {
		t.Fatalf("records = %+v", records)
	}
}

func TestCitationsUnwrapsDirection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/references") {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"data": [{"citedPaper": {"paperId": "p1", "title": "Cited"}},
			{"citedPaper": {"paperId": "", "title": "dropped"}}]}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	records, err := client.Citations(context.Background(), "abc", References, 10)
	if err != nil {
		t.Fatalf("Citations: %v", err)
	}
	if len(records) != 1 || records[0].Title != "Cited" {
		t.Fatalf("records = %+v", records)
	}
}

func TestCitationsInvalidDirection(t *testing.T) {
	client := NewClient()
	if _, err := client.Citations(context.Background(), "abc", Direction("sideways"), 10); err == nil {
		t.Fatal("expected error for invalid direction")
	}
}

func TestRecommendPostsSeeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q", r.Method)
		}
		var body map[string][]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if len(body["positivePaperIds"]) != 2 {
			t.Errorf("body = %v", body)
		}
		w.Write([]byte(`{"recommendedPapers": [` + paperJSON + `]}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	records, err := client.Recommend(context.Background(), []string{"a", "b"}, 5)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %+v", records)
	}
}
