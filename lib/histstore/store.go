// Package histstore keeps a local sqlite log of past catalog
// searches.
package histstore

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "embed"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

type Store struct {
	db *sql.DB
}

func Open(path string) (Store, error) {
	if path != ":memory:" {
		os.MkdirAll(filepath.Dir(path), 0777)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return Store{}, err
	}
	_, err = db.Exec(Schema)
	if err != nil {
		db.Close()
		return Store{}, err
	}
	return Store{db: db}, nil
}

func (s Store) Close() error {
	return s.db.Close()
}

type Entry struct {
	Query string
	Hits  int
	Time  time.Time
}

func (s Store) Record(ctx context.Context, query string, hits int) error {
	_, err := s.db.ExecContext(
		ctx,
		"INSERT INTO searches (query, hits, searched_at) VALUES (?, ?, ?)",
		query, hits, time.Now().Unix(),
	)
	return err
}

// Recent returns up to limit past searches, newest first.
func (s Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(
		ctx,
		"SELECT query, hits, searched_at FROM searches ORDER BY searched_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var unix int64
		if err := rows.Scan(&e.Query, &e.Hits, &unix); err != nil {
			return nil, err
		}
		e.Time = time.Unix(unix, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
