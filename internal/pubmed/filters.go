package pubmed

import "sort"

// ClinicalFilters are PubMed clinical-query hedges, appended to a
// search term to restrict results to a study category. Adapted from
// the Haynes clinical query filter strategies.
var ClinicalFilters = map[string]string{
	"therapy": "(randomized controlled trial[pt] OR controlled clinical trial[pt] " +
		"OR randomized[tiab] OR placebo[tiab] OR drug therapy[sh] " +
		"OR randomly[tiab] OR trial[tiab] OR groups[tiab]) " +
		"NOT (animals[mh] NOT humans[mh])",
	"diagnosis": "(sensitiv*[tiab] OR sensitivity and specificity[MeSH Terms] " +
		"OR diagnos*[tiab] OR diagnosis[MeSH:noexp] " +
		"OR diagnostic *[MeSH:noexp] OR diagnosis,differential[MeSH:noexp] " +
		"OR diagnosis[Subheading:noexp]) " +
		"NOT (animals[mh] NOT humans[mh])",
	"prognosis": "(incidence[MeSH:noexp] OR mortality[MeSH Terms] " +
		"OR follow up studies[MeSH:noexp] OR prognos*[tw] " +
		"OR predict*[tw] OR course[tw]) " +
		"NOT (animals[mh] NOT humans[mh])",
	"etiology": "(risk*[tiab] OR risk*[MeSH:noexp] OR cohort studies[MeSH Terms] " +
		"OR odds ratio[tw] OR relative risk[tw] " +
		"OR case control*[tw]) " +
		"NOT (animals[mh] NOT humans[mh])",
	"systematic_review": "(systematic review[ti] OR meta-analysis[pt] OR meta-analysis[ti] " +
		"OR systematic literature review[ti] " +
		"OR (systematic review[tiab] AND review[pt]) " +
		"OR cochrane database syst rev[ta]) " +
		"NOT (animals[mh] NOT humans[mh])",
}

// FilterNames lists the available clinical filter names, sorted.
func FilterNames() []string {
	names := make([]string, 0, len(ClinicalFilters))
	for name := range ClinicalFilters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyFilter combines a query with a named clinical filter hedge.
// Unknown names return the query unchanged and ok=false.
func ApplyFilter(query, name string) (string, bool) {
	hedge, ok := ClinicalFilters[name]
	if !ok {
		return query, false
	}
	return "(" + query + ") AND " + hedge, true
}
