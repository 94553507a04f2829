// Package dedup collapses paper records from multiple metadata sources into
// a single record per work, filling metadata gaps as it goes.
package dedup

import (
	"strings"

	"github.com/matsen/refcheck/internal/paper"
)

// mergeFields is the fixed list of fields filled during a merge. Merging is
// fill-only: a field already populated on the retained record is never
// overwritten.
var mergeFields = []struct {
	get func(*paper.Record) string
	set func(*paper.Record, string)
}{
	{func(p *paper.Record) string { return p.PMID }, func(p *paper.Record, v string) { p.PMID = v }},
	{func(p *paper.Record) string { return p.DOI }, func(p *paper.Record, v string) { p.DOI = v }},
	{func(p *paper.Record) string { return p.Abstract }, func(p *paper.Record, v string) { p.Abstract = v }},
	{func(p *paper.Record) string { return p.Journal }, func(p *paper.Record, v string) { p.Journal = v }},
	{func(p *paper.Record) string { return p.Volume }, func(p *paper.Record, v string) { p.Volume = v }},
	{func(p *paper.Record) string { return p.Issue }, func(p *paper.Record, v string) { p.Issue = v }},
	{func(p *paper.Record) string { return p.Pages }, func(p *paper.Record, v string) { p.Pages = v }},
	{func(p *paper.Record) string { return p.S2ID }, func(p *paper.Record, v string) { p.S2ID = v }},
}

// Key derives the identity key for a record: DOI, then PMID, then source
// specific id, then lowercased title. Returns "" when the record has no
// usable key; keyless records never collide with anything.
func Key(p *paper.Record) string {
	switch {
	case p.DOI != "":
		return p.DOI
	case p.PMID != "":
		return p.PMID
	case p.S2ID != "":
		return p.S2ID
	default:
		return strings.ToLower(p.Title)
	}
}

// Merge deduplicates records from two sources, merging records that share an
// identity key and preserving first-seen order. For each record in b the
// candidate keys doi, pmid, lowercased title are tried in priority order
// against the index built from a; on a hit the existing record keeps its own
// values and only empty fields are filled from the incoming record, with the
// source tag set to "both". Records carrying no key at all are kept as
// distinct entries, never collapsed together.
func Merge(a, b []paper.Record) []paper.Record {
	index := make(map[string]int)
	var merged []paper.Record

	for _, p := range a {
		key := Key(&p)
		if key != "" {
			if _, seen := index[key]; seen {
				continue
			}
			index[key] = len(merged)
		}
		merged = append(merged, p)
	}

	for _, p := range b {
		idx, found := lookupExisting(index, &p)
		if found {
			Fill(&merged[idx], &p)
			merged[idx].Source = paper.SourceBoth
			continue
		}

		key := Key(&p)
		if key != "" {
			if _, seen := index[key]; seen {
				continue
			}
			index[key] = len(merged)
		}
		merged = append(merged, p)
	}

	return merged
}

// lookupExisting tries the candidate keys of p, in priority order, against
// the index.
func lookupExisting(index map[string]int, p *paper.Record) (int, bool) {
	for _, key := range []string{p.DOI, p.PMID, strings.ToLower(p.Title)} {
		if key == "" {
			continue
		}
		if idx, ok := index[key]; ok {
			return idx, true
		}
	}
	return 0, false
}

// Fill copies incoming values into existing for every merge field that is
// empty on the existing record, plus the numeric citation count.
func Fill(existing, incoming *paper.Record) {
	for _, f := range mergeFields {
		if f.get(existing) == "" && f.get(incoming) != "" {
			f.set(existing, f.get(incoming))
		}
	}
	if existing.CitationCount == 0 && incoming.CitationCount != 0 {
		existing.CitationCount = incoming.CitationCount
	}
}
