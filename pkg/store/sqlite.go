// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package store exports catalogs into a SQLite index so other tools can
// query games without parsing the catalog file.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/content-catalog/pkg/catalog"

	_ "modernc.org/sqlite"
)

// ErrNoRuns is returned by LatestRun when nothing has been exported yet.
var ErrNoRuns = errors.New("no catalog runs recorded")

// Store is a SQLite-backed catalog index.
type Store struct {
	db *sql.DB
}

// GameRow is one indexed game.
type GameRow struct {
	GameID       string
	SourceGameID string
	Title        string
	Subtitle     *string
	RepoName     string
	Folder       string
	JSONPath     string
	ContentHash  string
	HTMLPath     *string
	JSPath       *string
}

// Run records one export.
type Run struct {
	ID            int64
	Fingerprint   string
	SchemaVersion string
	GeneratedAt   time.Time
	TotalGames    int
	ExportedAt    time.Time
}

// Open opens or creates the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// A single connection keeps :memory: databases coherent.
	db.SetMaxOpenConns(1)
	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating %s: %w", path, err)
	}
	return s, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	query := `
    CREATE TABLE IF NOT EXISTS games (
        game_id TEXT PRIMARY KEY,
        source_game_id TEXT NOT NULL,
        title TEXT NOT NULL,
        subtitle TEXT,
        repo_name TEXT NOT NULL,
        folder TEXT NOT NULL,
        json_path TEXT NOT NULL UNIQUE,
        content_hash TEXT NOT NULL,
        html_path TEXT,
        js_path TEXT
    );
    CREATE TABLE IF NOT EXISTS key_frequency (
        key TEXT PRIMARY KEY,
        count INTEGER NOT NULL
    );
    CREATE TABLE IF NOT EXISTS runs (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        fingerprint TEXT NOT NULL,
        schema_version TEXT NOT NULL,
        generated_at TEXT NOT NULL,
        total_games INTEGER NOT NULL,
        exported_at TEXT NOT NULL
    );`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

// SaveCatalog replaces the games and key frequency tables with c's
// contents and appends a run row, all in one transaction.
func (s *Store) SaveCatalog(ctx context.Context, c *catalog.Catalog, fingerprint string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning export: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, q := range []string{`DELETE FROM games`, `DELETE FROM key_frequency`} {
		if _, err = tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("clearing index: %w", err)
		}
	}

	insertGame, err := tx.PrepareContext(ctx, `INSERT INTO games (
		game_id, source_game_id, title, subtitle, repo_name, folder, json_path, content_hash, html_path, js_path
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing game insert: %w", err)
	}
	defer func() { _ = insertGame.Close() }()
	for _, g := range c.Games {
		_, err = insertGame.ExecContext(ctx,
			g.GameID, g.SourceGameID, g.Metadata.Title, g.Metadata.Subtitle, g.Repo.Name, g.Repo.Folder,
			g.Source.JSONPath, g.Source.ContentHash, g.Repo.HTMLPath, g.Repo.JSPath,
		)
		if err != nil {
			return fmt.Errorf("inserting game %s: %w", g.GameID, err)
		}
	}

	for _, kc := range c.Stats.TopLevelKeys {
		if _, err = tx.ExecContext(ctx, `INSERT INTO key_frequency (key, count) VALUES (?, ?)`, kc.Key, kc.Count); err != nil {
			return fmt.Errorf("inserting key %s: %w", kc.Key, err)
		}
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO runs (fingerprint, schema_version, generated_at, total_games, exported_at) VALUES (?, ?, ?, ?, ?)`,
		fingerprint, c.SchemaVersion, c.GeneratedAt.UTC().Format(time.RFC3339Nano), c.TotalGames, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing export: %w", err)
	}
	return nil
}

// Games returns every indexed game ordered by game_id.
func (s *Store) Games(ctx context.Context) ([]GameRow, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT game_id, source_game_id, title, subtitle, repo_name, folder, json_path, content_hash, html_path, js_path
        FROM games
        ORDER BY game_id
    `)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []GameRow
	for rows.Next() {
		var (
			g                          GameRow
			subtitle, htmlPath, jsPath sql.NullString
		)
		if err := rows.Scan(&g.GameID, &g.SourceGameID, &g.Title, &subtitle, &g.RepoName, &g.Folder,
			&g.JSONPath, &g.ContentHash, &htmlPath, &jsPath); err != nil {
			return nil, err
		}
		g.Subtitle = nullable(subtitle)
		g.HTMLPath = nullable(htmlPath)
		g.JSPath = nullable(jsPath)
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// KeyFrequency returns the stored key table ordered by count descending
// then key ascending.
func (s *Store) KeyFrequency(ctx context.Context) ([]catalog.KeyCount, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, count FROM key_frequency ORDER BY count DESC, key ASC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []catalog.KeyCount
	for rows.Next() {
		var kc catalog.KeyCount
		if err := rows.Scan(&kc.Key, &kc.Count); err != nil {
			return nil, err
		}
		out = append(out, kc)
	}
	return out, rows.Err()
}

// LatestRun returns the most recent export.
func (s *Store) LatestRun(ctx context.Context) (*Run, error) {
	var (
		r                       Run
		generatedAt, exportedAt string
	)
	err := s.db.QueryRowContext(ctx, `
        SELECT id, fingerprint, schema_version, generated_at, total_games, exported_at
        FROM runs
        ORDER BY id DESC
        LIMIT 1
    `).Scan(&r.ID, &r.Fingerprint, &r.SchemaVersion, &generatedAt, &r.TotalGames, &exportedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRuns
	}
	if err != nil {
		return nil, err
	}
	if r.GeneratedAt, err = time.Parse(time.RFC3339Nano, generatedAt); err != nil {
		return nil, fmt.Errorf("parsing generated_at: %w", err)
	}
	if r.ExportedAt, err = time.Parse(time.RFC3339Nano, exportedAt); err != nil {
		return nil, fmt.Errorf("parsing exported_at: %w", err)
	}
	return &r, nil
}

func nullable(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
