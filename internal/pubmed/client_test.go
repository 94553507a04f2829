package pubmed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSearchFetchesDetails(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "esearch"):
			calls = append(calls, "esearch")
			if got := r.URL.Query().Get("term"); got != "fibromyalgia" {
				t.Errorf("term = %q", got)
			}
			if got := r.URL.Query().Get("tool"); got != "refcheck" {
				t.Errorf("tool = %q", got)
			}
			w.Write([]byte(`{"esearchresult":{"count":"1","idlist":["33301246"]}}`))
		case strings.Contains(r.URL.Path, "efetch"):
			calls = append(calls, "efetch")
			if got := r.URL.Query().Get("id"); got != "33301246" {
				t.Errorf("id = %q", got)
			}
			w.Write([]byte(articleXML))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	records, err := client.Search(context.Background(), "fibromyalgia", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(records) != 1 || records[0].PMID != "33301246" {
		t.Fatalf("records = %+v", records)
	}
	if len(calls) != 2 || calls[0] != "esearch" || calls[1] != "efetch" {
		t.Errorf("calls = %v", calls)
	}
}

func TestSearchNoHits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"esearchresult":{"count":"0","idlist":[]}}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	records, err := client.Search(context.Background(), "nothing matches this", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("records = %+v, want none", records)
	}
}

func TestFetchByPMIDNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<PubmedArticleSet></PubmedArticleSet>`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.FetchByPMID(context.Background(), "404404")
	if !IsNotFound(err) {
		t.Errorf("err = %v, want not-found", err)
	}
}

func TestCheckRetractions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<PubmedArticleSet>
			<PubmedArticle><MedlineCitation><PMID>111</PMID>
				<Article><PublicationTypeList>
					<PublicationType>Retracted Publication</PublicationType>
				</PublicationTypeList></Article>
			</MedlineCitation></PubmedArticle>
			<PubmedArticle><MedlineCitation><PMID>222</PMID>
				<Article><PublicationTypeList>
					<PublicationType>Journal Article</PublicationType>
				</PublicationTypeList></Article>
			</MedlineCitation></PubmedArticle>
		</PubmedArticleSet>`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	retracted, err := client.CheckRetractions(context.Background(), []string{"111", "222"})
	if err != nil {
		t.Fatalf("CheckRetractions: %v", err)
	}
	if !retracted["111"] || retracted["222"] {
		t.Errorf("retracted = %v", retracted)
	}
}

func TestCheckRetractionsEmptyInput(t *testing.T) {
	client := NewClient()
	retracted, err := client.CheckRetractions(context.Background(), nil)
	if err != nil {
		t.Fatalf("CheckRetractions: %v", err)
	}
	if len(retracted) != 0 {
		t.Errorf("retracted = %v, want empty without any request", retracted)
	}
}

func TestAPIKeyPassedAsParam(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("api_key")
		w.Write([]byte(`{"esearchresult":{"idlist":[]}}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithAPIKey("ncbi-key"))
	if _, err := client.Search(context.Background(), "q", 1); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotKey != "ncbi-key" {
		t.Errorf("api_key = %q", gotKey)
	}
}
