package verify

import (
	"context"
	"sort"
)

// CollectPMIDs gathers every distinct PMID seen across the batch: each
// result's best match plus the input reference's own PMID. Sorted for
// deterministic request order.
func CollectPMIDs(results []*Result) []string {
	seen := make(map[string]bool)
	for _, r := range results {
		if r.Input.PMID != "" {
			seen[r.Input.PMID] = true
		}
		if r.BestMatch != nil && r.BestMatch.PMID != "" {
			seen[r.BestMatch.PMID] = true
		}
	}
	pmids := make([]string, 0, len(seen))
	for pmid := range seen {
		pmids = append(pmids, pmid)
	}
	sort.Strings(pmids)
	return pmids
}

// ApplyRetractions patches results whose linked PMID is retracted.
// Retraction is a terminal override: the status becomes RETRACTED
// regardless of the field-check outcome.
func ApplyRetractions(results []*Result, retracted map[string]bool) {
	for _, r := range results {
		pmid := r.Input.PMID
		if pmid == "" && r.BestMatch != nil {
			pmid = r.BestMatch.PMID
		}
		if pmid != "" && retracted[pmid] {
			r.Retracted = true
			r.Status = StatusRetracted
		}
	}
}

// CheckRetractions runs the batched retraction pass over resolved
// results and applies the outcome. With no PMIDs to check or no PubMed
// source it is a no-op.
func (v *Verifier) CheckRetractions(ctx context.Context, results []*Result) (map[string]bool, error) {
	pmids := CollectPMIDs(results)
	if len(pmids) == 0 || v.pubmed == nil {
		return nil, nil
	}
	retracted, err := v.pubmed.CheckRetractions(ctx, pmids)
	if err != nil {
		return nil, err
	}
	ApplyRetractions(results, retracted)
	return retracted, nil
}
