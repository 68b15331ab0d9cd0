// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists generated reviews in a SQLite database so past
// reviews can be listed and re-downloaded.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/scholarsynth/pkg/types"
)

// Store manages the review history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the review database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS reviews (
			id TEXT PRIMARY KEY,
			topic TEXT NOT NULL,
			model TEXT,
			content TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS review_papers (
			review_id TEXT NOT NULL REFERENCES reviews(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			arxiv_id TEXT NOT NULL,
			title TEXT,
			authors TEXT,
			published TEXT,
			summary TEXT,
			pdf_url TEXT,
			relevance_score REAL,
			PRIMARY KEY (review_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_created_at ON reviews(created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save inserts a review and its papers in one transaction.
func (s *Store) Save(ctx context.Context, r types.Review) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO reviews (id, topic, model, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.Topic, r.Model, r.Content, r.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("inserting review: %w", err)
	}

	for i, p := range r.Papers {
		authors, err := json.Marshal(p.Authors)
		if err != nil {
			return fmt.Errorf("encoding authors: %w", err)
		}
		published := ""
		if !p.Published.IsZero() {
			published = p.Published.UTC().Format(time.RFC3339Nano)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO review_papers
				(review_id, position, arxiv_id, title, authors, published, summary, pdf_url, relevance_score)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, i, p.ArxivID, p.Title, string(authors), published, p.Summary, p.PDFURL, p.RelevanceScore)
		if err != nil {
			return fmt.Errorf("inserting paper %s: %w", p.ArxivID, err)
		}
	}

	return tx.Commit()
}

// Get returns the review with the given ID, including its papers, or
// sql.ErrNoRows when absent.
func (s *Store) Get(ctx context.Context, id string) (*types.Review, error) {
	var r types.Review
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, topic, model, content, created_at FROM reviews WHERE id = ?`, id,
	).Scan(&r.ID, &r.Topic, &r.Model, &r.Content, &createdAt)
	if err != nil {
		return nil, err
	}
	if t, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
		r.CreatedAt = t
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT arxiv_id, title, authors, published, summary, pdf_url, relevance_score
		 FROM review_papers WHERE review_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p types.Paper
		var authors, published string
		if err := rows.Scan(&p.ArxivID, &p.Title, &authors, &published, &p.Summary, &p.PDFURL, &p.RelevanceScore); err != nil {
			return nil, fmt.Errorf("scanning paper: %w", err)
		}
		if authors != "" {
			if err := json.Unmarshal([]byte(authors), &p.Authors); err != nil {
				return nil, fmt.Errorf("decoding authors: %w", err)
			}
		}
		if published != "" {
			if t, parseErr := time.Parse(time.RFC3339Nano, published); parseErr == nil {
				p.Published = t
			}
		}
		r.Papers = append(r.Papers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &r, nil
}

// List returns review summaries (without paper details) newest first,
// capped at limit when limit is positive.
func (s *Store) List(ctx context.Context, limit int) ([]types.Review, error) {
	query := `SELECT id, topic, model, content, created_at FROM reviews ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying reviews: %w", err)
	}
	defer rows.Close()

	var reviews []types.Review
	for rows.Next() {
		var r types.Review
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Topic, &r.Model, &r.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning review: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
			r.CreatedAt = t
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// Delete removes a review and its papers. Deleting an absent review is
// not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting review: %w", err)
	}
	return nil
}
