package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/matsen/refcheck/internal/paper"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "papers.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGetPutRoundTrip(t *testing.T) {
	db := openTestDB(t)

	rec := &paper.Record{Title: "Cached Paper", DOI: "10.1/a", Year: 2020}
	if err := db.Put(paper.SourceCrossref, "10.1/a", rec); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := db.Get(paper.SourceCrossref, "10.1/a")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.Title != "Cached Paper" || got.Year != 2020 {
		t.Errorf("got = %+v", got)
	}

	// Same key under another source is a distinct entry.
	if _, ok, _ := db.Get(paper.SourcePubMed, "10.1/a"); ok {
		t.Error("hit under wrong source")
	}
}

func TestGetMiss(t *testing.T) {
	db := openTestDB(t)
	if _, ok, err := db.Get(paper.SourceCrossref, "absent"); ok || err != nil {
		t.Errorf("ok=%v err=%v", ok, err)
	}
}

func TestExpiry(t *testing.T) {
	db := openTestDB(t)
	if err := db.Put(paper.SourcePubMed, "123", &paper.Record{PMID: "123"}); err != nil {
		t.Fatal(err)
	}
	db.SetMaxAge(-time.Second)
	if _, ok, _ := db.Get(paper.SourcePubMed, "123"); ok {
		t.Error("expired entry returned")
	}
}

func TestPurge(t *testing.T) {
	db := openTestDB(t)
	if err := db.Put(paper.SourcePubMed, "123", &paper.Record{PMID: "123"}); err != nil {
		t.Fatal(err)
	}
	db.SetMaxAge(-time.Second)
	n, err := db.Purge()
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if n != 1 {
		t.Errorf("purged %d, want 1", n)
	}
}

type countingCrossref struct {
	calls int
	rec   *paper.Record
	err   error
}

func (c *countingCrossref) ResolveDOI(context.Context, string) (*paper.Record, error) {
	c.calls++
	return c.rec, c.err
}

func (c *countingCrossref) Search(context.Context, string, int) ([]paper.Record, error) {
	c.calls++
	return nil, nil
}

func TestWrapCrossrefCachesResolve(t *testing.T) {
	db := openTestDB(t)
	src := &countingCrossref{rec: &paper.Record{DOI: "10.1/a", Title: "X"}}
	wrapped := WrapCrossref(src, db)

	for i := 0; i < 3; i++ {
		rec, err := wrapped.ResolveDOI(context.Background(), "10.1/a")
		if err != nil || rec.Title != "X" {
			t.Fatalf("ResolveDOI: rec=%+v err=%v", rec, err)
		}
	}
	if src.calls != 1 {
		t.Errorf("source called %d times, want 1", src.calls)
	}
}

func TestWrapCrossrefDoesNotCacheErrors(t *testing.T) {
	db := openTestDB(t)
	src := &countingCrossref{err: errors.New("boom")}
	wrapped := WrapCrossref(src, db)

	for i := 0; i < 2; i++ {
		if _, err := wrapped.ResolveDOI(context.Background(), "10.1/a"); err == nil {
			t.Fatal("expected error")
		}
	}
	if src.calls != 2 {
		t.Errorf("source called %d times, want 2", src.calls)
	}
}

func TestWrapCrossrefSearchPassesThrough(t *testing.T) {
	db := openTestDB(t)
	src := &countingCrossref{}
	wrapped := WrapCrossref(src, db)

	for i := 0; i < 2; i++ {
		if _, err := wrapped.Search(context.Background(), "q", 3); err != nil {
			t.Fatal(err)
		}
	}
	if src.calls != 2 {
		t.Errorf("source called %d times, want 2 (search is uncached)", src.calls)
	}
}
