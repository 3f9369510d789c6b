// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists converted fragment RTF between runs so
// unchanged fragments skip the pandoc subprocess. The cache is a derived
// artifact keyed by content and option digests; deleting it only costs
// recomputation.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const dbFile = "rtfweave.db"

// Store manages the conversion cache SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cache database under dir, creating the
// schema when missing.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS conversions (
		name TEXT NOT NULL,
		content_sha TEXT NOT NULL,
		options_sha TEXT NOT NULL,
		rtf TEXT NOT NULL,
		converted_at TEXT NOT NULL,
		PRIMARY KEY (name, content_sha, options_sha)
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Digest returns the hex SHA-256 of data. Both fragment contents and
// serialized conversion options are digested with it.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Get returns the cached RTF for the key, or ok=false on a miss.
func (s *Store) Get(name, contentSHA, optionsSHA string) (rtf string, ok bool, err error) {
	err = s.db.QueryRow(
		`SELECT rtf FROM conversions WHERE name = ? AND content_sha = ? AND options_sha = ?`,
		name, contentSHA, optionsSHA,
	).Scan(&rtf)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying cache for %s: %w", name, err)
	}
	return rtf, true, nil
}

// Put stores converted RTF under the key. Older entries for the same
// fragment name remain until overwritten; they are harmless and keep
// switching between option sets cheap.
func (s *Store) Put(name, contentSHA, optionsSHA, rtf string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO conversions (name, content_sha, options_sha, rtf, converted_at)
		 VALUES (?, ?, ?, ?, ?)`,
		name, contentSHA, optionsSHA, rtf, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("caching conversion for %s: %w", name, err)
	}
	return nil
}
