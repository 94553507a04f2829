package main

import (
	"github.com/joho/godotenv"

	"github.com/matsen/refcheck/internal/cache"
	"github.com/matsen/refcheck/internal/config"
	"github.com/matsen/refcheck/internal/crossref"
	"github.com/matsen/refcheck/internal/pubmed"
	"github.com/matsen/refcheck/internal/s2"
	"github.com/matsen/refcheck/internal/verify"
)

// sources bundles the concrete API clients plus the cache-wrapped
// interfaces consumed by the verifier.
type sources struct {
	crossrefClient *crossref.Client
	scholarClient  *s2.Client
	pubmedClient   *pubmed.Client

	crossref verify.Crossref
	scholar  verify.Scholar
	pubmed   verify.PubMed

	cacheDB *cache.DB
}

// newSources builds the API clients from configuration. Identifier
// lookups go through the SQLite cache unless --no-cache is set; a
// cache that fails to open just degrades to direct lookups.
func newSources() *sources {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	s := &sources{}

	var crOpts []crossref.ClientOption
	if cfg.Mailto != "" {
		crOpts = append(crOpts, crossref.WithMailto(cfg.Mailto))
	}
	s.crossrefClient = crossref.NewClient(crOpts...)

	var s2Opts []s2.ClientOption
	if cfg.S2APIKey != "" {
		s2Opts = append(s2Opts, s2.WithAPIKey(cfg.S2APIKey))
	}
	s.scholarClient = s2.NewClient(s2Opts...)

	var pmOpts []pubmed.ClientOption
	if cfg.NCBIAPIKey != "" {
		pmOpts = append(pmOpts, pubmed.WithAPIKey(cfg.NCBIAPIKey))
	}
	s.pubmedClient = pubmed.NewClient(pmOpts...)

	s.crossref = s.crossrefClient
	s.scholar = s.scholarClient
	s.pubmed = s.pubmedClient

	if !noCache {
		if path, err := cache.DefaultPath(); err == nil {
			if db, err := cache.Open(path); err == nil {
				s.cacheDB = db
				s.crossref = cache.WrapCrossref(s.crossref, db)
				s.scholar = cache.WrapScholar(s.scholar, db)
				s.pubmed = cache.WrapPubMed(s.pubmed, db)
			}
		}
	}
	return s
}

// Close releases the cache database if one was opened.
func (s *sources) Close() {
	if s.cacheDB != nil {
		s.cacheDB.Close()
	}
}

func (s *sources) verifier() *verify.Verifier {
	return verify.New(s.crossref, s.scholar, s.pubmed)
}
