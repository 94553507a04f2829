package pubmed

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/matsen/refcheck/internal/paper"
)

// retractedPublicationType marks a retracted article in its publication
// type list; matched case-insensitively as a substring.
const retractedPublicationType = "retracted publication"

// retractionRefType is the CommentsCorrections relation pointing at a
// retraction notice.
const retractionRefType = "RetractionIn"

var yearRe = regexp.MustCompile(`(\d{4})`)

// articleSet mirrors the PubmedArticleSet XML returned by efetch.
type articleSet struct {
	XMLName  xml.Name        `xml:"PubmedArticleSet"`
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	MedlineCitation struct {
		PMID    string `xml:"PMID"`
		Article struct {
			ArticleTitle string `xml:"ArticleTitle"`
			Journal      struct {
				Title           string `xml:"Title"`
				ISOAbbreviation string `xml:"ISOAbbreviation"`
				JournalIssue    struct {
					Volume  string `xml:"Volume"`
					Issue   string `xml:"Issue"`
					PubDate struct {
						Year        string `xml:"Year"`
						MedlineDate string `xml:"MedlineDate"`
					} `xml:"PubDate"`
				} `xml:"JournalIssue"`
			} `xml:"Journal"`
			Pagination struct {
				MedlinePgn string `xml:"MedlinePgn"`
			} `xml:"Pagination"`
			ELocationIDs []struct {
				EIdType string `xml:"EIdType,attr"`
				Value   string `xml:",chardata"`
			} `xml:"ELocationID"`
			Abstract struct {
				Texts []struct {
					Label string `xml:"Label,attr"`
					Value string `xml:",chardata"`
				} `xml:"AbstractText"`
			} `xml:"Abstract"`
			AuthorList struct {
				Authors []struct {
					LastName string `xml:"LastName"`
					ForeName string `xml:"ForeName"`
				} `xml:"Author"`
			} `xml:"AuthorList"`
			PublicationTypeList struct {
				Types []string `xml:"PublicationType"`
			} `xml:"PublicationTypeList"`
		} `xml:"Article"`
		CommentsCorrectionsList struct {
			Items []struct {
				RefType string `xml:"RefType,attr"`
			} `xml:"CommentsCorrections"`
		} `xml:"CommentsCorrectionsList"`
	} `xml:"MedlineCitation"`
	PubmedData struct {
		ArticleIDs []struct {
			IDType string `xml:"IdType,attr"`
			Value  string `xml:",chardata"`
		} `xml:"ArticleIdList>ArticleId"`
	} `xml:"PubmedData"`
}

// parseArticleSet decodes an efetch XML payload.
func parseArticleSet(data []byte) (*articleSet, error) {
	var set articleSet
	if err := xml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("%w: parsing article XML: %v", ErrInvalidResponse, err)
	}
	return &set, nil
}

func (a *pubmedArticle) pmid() string {
	return strings.TrimSpace(a.MedlineCitation.PMID)
}

// isRetracted checks both retraction signals carried by a PubMed record.
func (a *pubmedArticle) isRetracted() bool {
	for _, pt := range a.MedlineCitation.Article.PublicationTypeList.Types {
		if strings.Contains(strings.ToLower(pt), retractedPublicationType) {
			return true
		}
	}
	for _, cc := range a.MedlineCitation.CommentsCorrectionsList.Items {
		if cc.RefType == retractionRefType {
			return true
		}
	}
	return false
}

// toRecord maps a PubmedArticle to the canonical record shape, applying the
// standard fallbacks: ISOAbbreviation when the journal title is missing, a
// MedlineDate year scan when no Year element exists, and ELocationID as the
// secondary DOI location.
func (a *pubmedArticle) toRecord() paper.Record {
	art := &a.MedlineCitation.Article

	rec := paper.Record{
		PMID:    a.pmid(),
		Title:   strings.TrimSpace(art.ArticleTitle),
		Volume:  art.Journal.JournalIssue.Volume,
		Issue:   art.Journal.JournalIssue.Issue,
		Pages:   art.Pagination.MedlinePgn,
		Journal: art.Journal.Title,
		Source:  paper.SourcePubMed,
	}

	if rec.Journal == "" {
		rec.Journal = art.Journal.ISOAbbreviation
	}

	for _, author := range art.AuthorList.Authors {
		var parts []string
		if author.ForeName != "" {
			parts = append(parts, author.ForeName)
		}
		if author.LastName != "" {
			parts = append(parts, author.LastName)
		}
		if len(parts) > 0 {
			rec.Authors = append(rec.Authors, strings.Join(parts, " "))
		}
	}

	pubDate := art.Journal.JournalIssue.PubDate
	if y, err := strconv.Atoi(strings.TrimSpace(pubDate.Year)); err == nil {
		rec.Year = y
	} else if m := yearRe.FindStringSubmatch(pubDate.MedlineDate); m != nil {
		rec.Year, _ = strconv.Atoi(m[1])
	}

	var abstractParts []string
	for _, at := range art.Abstract.Texts {
		text := strings.TrimSpace(at.Value)
		if at.Label != "" {
			abstractParts = append(abstractParts, at.Label+": "+text)
		} else {
			abstractParts = append(abstractParts, text)
		}
	}
	rec.Abstract = strings.Join(abstractParts, " ")

	for _, id := range a.PubmedData.ArticleIDs {
		if id.IDType == "doi" {
			rec.DOI = strings.TrimSpace(id.Value)
			break
		}
	}
	if rec.DOI == "" {
		for _, loc := range art.ELocationIDs {
			if loc.EIdType == "doi" {
				rec.DOI = strings.TrimSpace(loc.Value)
				break
			}
		}
	}

	return rec
}
