// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
)

// Record is the loader's verdict on one source file: either Doc is set or
// Err is, never both.
type Record struct {
	File SourceFile
	Hash string
	Doc  Document
	Err  *ParseError
}

type parsed struct {
	doc Document
	msg string
}

// Loader reads, hashes and parses source files. Parse results are cached
// by content hash so a Loader reused across builds only re-parses files
// whose bytes changed.
type Loader struct {
	workers int
	cache   *lru.Cache[string, parsed]
	hits    atomic.Int64
}

// NewLoader returns a Loader with the given parallelism and cache size.
func NewLoader(workers, cacheSize int) (*Loader, error) {
	if workers < 1 {
		workers = 1
	}
	cache, err := lru.New[string, parsed](max(cacheSize, 1))
	if err != nil {
		return nil, fmt.Errorf("creating parse cache: %w", err)
	}
	return &Loader{workers: workers, cache: cache}, nil
}

// CacheHits returns the number of parses served from cache so far.
func (l *Loader) CacheHits() int {
	return int(l.hits.Load())
}

// LoadAll loads every file concurrently and returns records in the same
// order as files. Read failures are fatal; parse failures are recorded.
func (l *Loader) LoadAll(ctx context.Context, files []SourceFile) ([]Record, error) {
	records := make([]Record, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i := range files {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := l.Load(files[i])
			if err != nil {
				return err
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// Load reads and parses a single file.
func (l *Loader) Load(f SourceFile) (Record, error) {
	data, err := os.ReadFile(f.AbsPath)
	if err != nil {
		return Record{}, fmt.Errorf("reading %s: %w", f.RelPath, err)
	}
	f.Data = data
	rec := Record{File: f, Hash: ContentHash(data)}

	p, ok := l.cache.Get(rec.Hash)
	if ok {
		l.hits.Add(1)
	} else {
		doc, err := ParseDocument(data)
		if err != nil {
			p = parsed{msg: err.Error()}
		} else {
			p = parsed{doc: doc}
		}
		l.cache.Add(rec.Hash, p)
	}

	if p.doc == nil {
		debugf("load: parse error in %s: %s", f.RelPath, p.msg)
		rec.Err = &ParseError{Path: f.RelPath, Message: p.msg}
		return rec, nil
	}
	rec.Doc = p.doc
	return rec, nil
}

// ContentHash returns the sha256 digest of raw bytes, prefixed with the
// algorithm name.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return "sha256:" + hex.EncodeToString(sum[:])
}

// ParseDocument decodes data as a single JSON object.
func ParseDocument(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("top-level value is %s, not an object", jsonKind(v))
	}
	return Document(m), nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case []any:
		return "an array"
	case string:
		return "a string"
	case json.Number:
		return "a number"
	case bool:
		return "a boolean"
	case nil:
		return "null"
	}
	return fmt.Sprintf("%T", v)
}
