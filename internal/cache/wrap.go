package cache

import (
	"context"

	"github.com/matsen/refcheck/internal/paper"
	"github.com/matsen/refcheck/internal/verify"
)

// Caching wrappers for the verifier's source interfaces. Identifier
// lookups go through the cache; free-text searches always hit the
// source, since result rankings go stale quickly. Cache write failures
// are swallowed: a broken cache must not fail a lookup that succeeded.

type cachedCrossref struct {
	src verify.Crossref
	db  *DB
}

// WrapCrossref returns a Crossref source whose DOI lookups are cached.
func WrapCrossref(src verify.Crossref, db *DB) verify.Crossref {
	return &cachedCrossref{src: src, db: db}
}

func (c *cachedCrossref) ResolveDOI(ctx context.Context, doi string) (*paper.Record, error) {
	if rec, ok, err := c.db.Get(paper.SourceCrossref, doi); err == nil && ok {
		return rec, nil
	}
	rec, err := c.src.ResolveDOI(ctx, doi)
	if err != nil {
		return nil, err
	}
	c.db.Put(paper.SourceCrossref, doi, rec)
	return rec, nil
}

func (c *cachedCrossref) Search(ctx context.Context, query string, limit int) ([]paper.Record, error) {
	return c.src.Search(ctx, query, limit)
}

type cachedScholar struct {
	src verify.Scholar
	db  *DB
}

// WrapScholar returns a Scholar source whose paper lookups are cached.
func WrapScholar(src verify.Scholar, db *DB) verify.Scholar {
	return &cachedScholar{src: src, db: db}
}

func (c *cachedScholar) GetPaper(ctx context.Context, paperID string) (*paper.Record, error) {
	if rec, ok, err := c.db.Get(paper.SourceSemanticScholar, paperID); err == nil && ok {
		return rec, nil
	}
	rec, err := c.src.GetPaper(ctx, paperID)
	if err != nil {
		return nil, err
	}
	c.db.Put(paper.SourceSemanticScholar, paperID, rec)
	return rec, nil
}

type cachedPubMed struct {
	src verify.PubMed
	db  *DB
}

// WrapPubMed returns a PubMed source whose PMID fetches are cached.
// Retraction checks are never cached: a paper can be retracted after
// the lookup was stored.
func WrapPubMed(src verify.PubMed, db *DB) verify.PubMed {
	return &cachedPubMed{src: src, db: db}
}

func (c *cachedPubMed) FetchByPMID(ctx context.Context, pmid string) (*paper.Record, error) {
	if rec, ok, err := c.db.Get(paper.SourcePubMed, pmid); err == nil && ok {
		return rec, nil
	}
	rec, err := c.src.FetchByPMID(ctx, pmid)
	if err != nil {
		return nil, err
	}
	c.db.Put(paper.SourcePubMed, pmid, rec)
	return rec, nil
}

func (c *cachedPubMed) Search(ctx context.Context, term string, limit int) ([]paper.Record, error) {
	return c.src.Search(ctx, term, limit)
}

func (c *cachedPubMed) CheckRetractions(ctx context.Context, pmids []string) (map[string]bool, error) {
	return c.src.CheckRetractions(ctx, pmids)
}
