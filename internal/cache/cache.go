// Package cache stores source lookup results in a local SQLite
// database so repeated identifier lookups skip the network.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/matsen/refcheck/internal/paper"
)

// DefaultMaxAge is how long a cached lookup stays usable.
const DefaultMaxAge = 30 * 24 * time.Hour

// DB wraps a SQLite database holding cached lookups.
type DB struct {
	db     *sql.DB
	maxAge time.Duration
}

// DefaultPath returns the cache database location, honoring
// XDG_CACHE_HOME.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("finding home directory: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "refcheck", "papers.db"), nil
}

// Open opens or creates the cache database at path, creating parent
// directories as needed.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return &DB{db: db, maxAge: DefaultMaxAge}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// SetMaxAge overrides the expiry window for cached lookups.
func (d *DB) SetMaxAge(age time.Duration) {
	d.maxAge = age
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS lookups (
			source TEXT NOT NULL,
			key TEXT NOT NULL,
			record_json TEXT NOT NULL,
			fetched_at INTEGER NOT NULL,
			PRIMARY KEY (source, key)
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Get returns the cached record for a source/key pair, or ok=false on
// a miss or an expired entry.
func (d *DB) Get(source, key string) (*paper.Record, bool, error) {
	var blob string
	var fetchedAt int64
	err := d.db.QueryRow(
		"SELECT record_json, fetched_at FROM lookups WHERE source = ? AND key = ?",
		source, key,
	).Scan(&blob, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache: %w", err)
	}
	if time.Since(time.Unix(fetchedAt, 0)) > d.maxAge {
		return nil, false, nil
	}
	var rec paper.Record
	if err := json.Unmarshal([]byte(blob), &rec); err != nil {
		return nil, false, fmt.Errorf("decoding cached record: %w", err)
	}
	return &rec, true, nil
}

// Put stores a record under a source/key pair, replacing any previous
// entry.
func (d *DB) Put(source, key string, rec *paper.Record) error {
	blob, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = d.db.Exec(
		"INSERT OR REPLACE INTO lookups (source, key, record_json, fetched_at) VALUES (?, ?, ?, ?)",
		source, key, string(blob), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}

// Purge removes entries older than the expiry window and returns how
// many were deleted.
func (d *DB) Purge() (int64, error) {
	cutoff := time.Now().Add(-d.maxAge).Unix()
	res, err := d.db.Exec("DELETE FROM lookups WHERE fetched_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("purging cache: %w", err)
	}
	return res.RowsAffected()
}
