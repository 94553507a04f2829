package pubmed

import (
	"reflect"
	"testing"
)

const articleXML = `<?xml version="1.0" ?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID Version="1">33301246</PMID>
      <Article>
        <Journal>
          <Title>The New England Journal of Medicine</Title>
          <ISOAbbreviation>N Engl J Med</ISOAbbreviation>
          <JournalIssue>
            <Volume>383</Volume>
            <Issue>27</Issue>
            <PubDate><Year>2020</Year></PubDate>
          </JournalIssue>
        </Journal>
        <ArticleTitle>Safety and Efficacy of the BNT162b2 Vaccine</ArticleTitle>
        <Pagination><MedlinePgn>2603-2615</MedlinePgn></Pagination>
        <ELocationID EIdType="doi">10.1056/NEJMoa2034577</ELocationID>
        <Abstract>
          <AbstractText Label="BACKGROUND">Severe disease.</AbstractText>
          <AbstractText Label="METHODS">Randomized trial.</AbstractText>
        </Abstract>
        <AuthorList>
          <Author><LastName>Polack</LastName><ForeName>Fernando P</ForeName></Author>
          <Author><LastName>Thomas</LastName><ForeName>Stephen J</ForeName></Author>
        </AuthorList>
        <PublicationTypeList>
          <PublicationType>Journal Article</PublicationType>
        </PublicationTypeList>
      </Article>
    </MedlineCitation>
    <PubmedData>
      <ArticleIdList>
        <ArticleId IdType="pubmed">33301246</ArticleId>
        <ArticleId IdType="doi">10.1056/nejmoa2034577</ArticleId>
      </ArticleIdList>
    </PubmedData>
  </PubmedArticle>
</PubmedArticleSet>`

func TestParseArticle(t *testing.T) {
	set, err := parseArticleSet([]byte(articleXML))
	if err != nil {
		t.Fatalf("parseArticleSet: %v", err)
	}
	if len(set.Articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(set.Articles))
	}

	rec := set.Articles[0].toRecord()
	if rec.PMID != "33301246" {
		t.Errorf("PMID = %q", rec.PMID)
	}
	if rec.Title != "Safety and Efficacy of the BNT162b2 Vaccine" {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.Journal != "The New England Journal of Medicine" {
		t.Errorf("Journal = %q", rec.Journal)
	}
	if rec.Year != 2020 || rec.Volume != "383" || rec.Issue != "27" || rec.Pages != "2603-2615" {
		t.Errorf("bibliographic fields: %+v", rec)
	}
	if rec.DOI != "10.1056/nejmoa2034577" {
		t.Errorf("DOI = %q, ArticleIdList entry should win over ELocationID", rec.DOI)
	}
	wantAuthors := []string{"Fernando P Polack", "Stephen J Thomas"}
	if !reflect.DeepEqual(rec.Authors, wantAuthors) {
		t.Errorf("Authors = %v, want %v", rec.Authors, wantAuthors)
	}
	if rec.Abstract != "BACKGROUND: Severe disease. METHODS: Randomized trial." {
		t.Errorf("Abstract = %q", rec.Abstract)
	}
	if rec.Source != "pubmed" {
		t.Errorf("Source = %q", rec.Source)
	}
}

func TestParseArticleFallbacks(t *testing.T) {
	xmlData := `<PubmedArticleSet><PubmedArticle><MedlineCitation>
      <PMID>999</PMID>
      <Article>
        <Journal>
          <ISOAbbreviation>J Abbrev</ISOAbbreviation>
          <JournalIssue><PubDate><MedlineDate>1998 Nov-Dec</MedlineDate></PubDate></JournalIssue>
        </Journal>
        <ArticleTitle>Fallback Fields</ArticleTitle>
        <ELocationID EIdType="doi">10.1/fallback</ELocationID>
      </Article>
    </MedlineCitation></PubmedArticle></PubmedArticleSet>`

	set, err := parseArticleSet([]byte(xmlData))
	if err != nil {
		t.Fatalf("parseArticleSet: %v", err)
	}
	rec := set.Articles[0].toRecord()
	if rec.Journal != "J Abbrev" {
		t.Errorf("Journal = %q, want ISOAbbreviation fallback", rec.Journal)
	}
	if rec.Year != 1998 {
		t.Errorf("Year = %d, want MedlineDate scan", rec.Year)
	}
	if rec.DOI != "10.1/fallback" {
		t.Errorf("DOI = %q, want ELocationID fallback", rec.DOI)
	}
}

func TestIsRetracted(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want bool
	}{
		{
			name: "publication type marker",
			xml: `<PubmedArticleSet><PubmedArticle><MedlineCitation><PMID>1</PMID>
				<Article><PublicationTypeList>
					<PublicationType>Journal Article</PublicationType>
					<PublicationType>Retracted Publication</PublicationType>
				</PublicationTypeList></Article>
			</MedlineCitation></PubmedArticle></PubmedArticleSet>`,
			want: true,
		},
		{
			name: "retraction-in correction",
			xml: `<PubmedArticleSet><PubmedArticle><MedlineCitation><PMID>2</PMID>
				<Article/>
				<CommentsCorrectionsList>
					<CommentsCorrections RefType="CommentIn"/>
					<CommentsCorrections RefType="RetractionIn"/>
				</CommentsCorrectionsList>
			</MedlineCitation></PubmedArticle></PubmedArticleSet>`,
			want: true,
		},
		{
			name: "clean article",
			xml: `<PubmedArticleSet><PubmedArticle><MedlineCitation><PMID>3</PMID>
				<Article><PublicationTypeList>
					<PublicationType>Journal Article</PublicationType>
				</PublicationTypeList></Article>
			</MedlineCitation></PubmedArticle></PubmedArticleSet>`,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := parseArticleSet([]byte(tt.xml))
			if err != nil {
				t.Fatalf("parseArticleSet: %v", err)
			}
			if got := set.Articles[0].isRetracted(); got != tt.want {
				t.Errorf("isRetracted() = %v, want %v", got, tt.want)
			}
		})
	}
}
