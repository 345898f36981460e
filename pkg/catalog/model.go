// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"encoding/json"
	"time"
)

// SchemaVersion tags every catalog this package writes.
const SchemaVersion = "1.0.0"

// SourceFile is a candidate content file found by the walker.
type SourceFile struct {
	AbsPath string // absolute filesystem path
	RelPath string // corpus-relative, forward slashes
	Folder  string // RelPath's directory, "." for the root
	Name    string // base file name
	Data    []byte // raw bytes, filled by the loader
}

// Document is a parsed content file. Numbers are kept as json.Number so
// re-encoding reproduces their literal text.
type Document map[string]any

// ParseError records a content file that could not be parsed.
type ParseError struct {
	Path    string `json:"path" yaml:"path"`
	Message string `json:"message" yaml:"message"`
}

// GameSource identifies the file a game came from.
type GameSource struct {
	JSONPath    string `json:"jsonPath"`
	ContentHash string `json:"contentHash"`
	Bytes       int    `json:"bytes"`
}

// GameRepo locates a game inside the corpus.
type GameRepo struct {
	Name     string  `json:"name"`
	Folder   string  `json:"folder"`
	HTMLPath *string `json:"htmlPath"`
	JSPath   *string `json:"jsPath"`
}

// GameMetadata is the canonical subset extracted from a document.
type GameMetadata struct {
	Title        string   `json:"title"`
	Subtitle     *string  `json:"subtitle"`
	LegacyID     *string  `json:"legacyId"`
	TopLevelKeys []string `json:"topLevelKeys"`
	HasMeta      bool     `json:"hasMeta"`
}

// NormalizedGame is one catalog entry.
type NormalizedGame struct {
	GameID       string          `json:"gameId"`
	SourceGameID string          `json:"sourceGameId"`
	Source       GameSource      `json:"source"`
	Repo         GameRepo        `json:"repo"`
	Metadata     GameMetadata    `json:"metadata"`
	Content      json.RawMessage `json:"content,omitempty"`
}

// KeyCount is one row of the top-level key frequency table.
type KeyCount struct {
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}

// MissingCounts counts documents lacking a source field.
type MissingCounts struct {
	Title int `json:"title"`
	ID    int `json:"id"`
	Meta  int `json:"meta"`
}

// Stats summarises the corpus.
type Stats struct {
	TotalSourceFiles       int           `json:"totalSourceFiles"`
	MissingFields          MissingCounts `json:"missingFields"`
	DuplicateSourceGameIDs int           `json:"duplicateSourceGameIds"`
	TopLevelKeys           []KeyCount    `json:"topLevelKeys"`
}

// Catalog is the persisted index.
type Catalog struct {
	SchemaVersion string           `json:"schemaVersion"`
	GeneratedAt   time.Time        `json:"generatedAt"`
	TotalGames    int              `json:"totalGames"`
	Stats         Stats            `json:"stats"`
	Games         []NormalizedGame `json:"games"`
}

// DuplicateID is a candidate identifier claimed by more than one file.
type DuplicateID struct {
	GameID string `json:"gameId" yaml:"gameId"`
	Count  int    `json:"count" yaml:"count"`
}

// MissingPaths lists the content files lacking a source field.
type MissingPaths struct {
	Title []string `json:"title" yaml:"title"`
	ID    []string `json:"id" yaml:"id"`
	Meta  []string `json:"meta" yaml:"meta"`
}

// Report is the diagnostic companion of a Catalog. It is never written
// into the catalog file.
type Report struct {
	RunID                  string        `json:"runId" yaml:"runId"`
	GeneratedAt            time.Time     `json:"generatedAt" yaml:"generatedAt"`
	Fingerprint            string        `json:"fingerprint" yaml:"fingerprint"`
	DurationMS             int64         `json:"durationMs" yaml:"durationMs"`
	CacheHits              int           `json:"cacheHits" yaml:"cacheHits"`
	FileCount              int           `json:"fileCount" yaml:"fileCount"`
	ParseErrors            []ParseError  `json:"parseErrors" yaml:"parseErrors"`
	DuplicateSourceGameIDs []DuplicateID `json:"duplicateSourceGameIds" yaml:"duplicateSourceGameIds"`
	MissingSourceFields    MissingPaths  `json:"missingSourceFields" yaml:"missingSourceFields"`
	TopLevelKeys           []KeyCount    `json:"topLevelKeys" yaml:"topLevelKeys"`
}
