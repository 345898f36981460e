// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package catalog indexes a tree of content-configuration documents and
// produces a normalized Catalog plus a diagnostic Report.
//
// The pipeline runs leaf-first: Walker, Loader, Normalizer, Allocator,
// Aggregator. Only loading runs concurrently; everything that assigns
// identifiers or counts runs over the sorted record list in order.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Result pairs the two outputs of a build.
type Result struct {
	Catalog *Catalog
	Report  *Report
}

// Builder runs catalog builds. A Builder may be reused; its Loader keeps
// parsed documents cached between runs. Builds on separate Builders share
// no state.
type Builder struct {
	cfg        Config
	walker     *Walker
	loader     *Loader
	normalizer *Normalizer
	now        func() time.Time
}

// NewBuilder validates cfg and returns a Builder.
func NewBuilder(cfg Config) (*Builder, error) {
	cfg.applyDefaults()
	walker, err := NewWalker(cfg.Corpus)
	if err != nil {
		return nil, err
	}
	loader, err := NewLoader(cfg.Build.Workers, cfg.Build.CacheSize)
	if err != nil {
		return nil, err
	}
	return &Builder{
		cfg:        cfg,
		walker:     walker,
		loader:     loader,
		normalizer: NewNormalizer(cfg.Corpus, cfg.Siblings),
		now:        func() time.Time { return time.Now().UTC() },
	}, nil
}

// Config returns the resolved configuration.
func (b *Builder) Config() Config {
	return b.cfg
}

// Build walks the configured root and assembles a Catalog and Report. It
// fails only when the corpus cannot be enumerated or read, or when ctx is
// cancelled; per-file parse failures end up in the Report.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	start := time.Now()
	hitsBefore := b.loader.CacheHits()
	logf("build: root=%s includeContent=%v workers=%d", b.cfg.Corpus.Root, b.cfg.IncludeContent(), b.cfg.Build.Workers)

	tree, err := b.walker.Walk(b.cfg.Corpus.Root)
	if err != nil {
		return nil, fmt.Errorf("enumerating corpus: %w", err)
	}
	records, err := b.loader.LoadAll(ctx, tree.Files)
	if err != nil {
		return nil, fmt.Errorf("loading content files: %w", err)
	}

	alloc := NewAllocator()
	agg := NewAggregator()
	games := make([]NormalizedGame, 0, len(records))
	for _, rec := range records {
		if rec.Err != nil {
			agg.AddParseError(*rec.Err)
			continue
		}
		game, err := b.assemble(rec, tree, alloc, agg)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}

	dups := alloc.Duplicates()
	cat := &Catalog{
		SchemaVersion: SchemaVersion,
		GeneratedAt:   b.now(),
		TotalGames:    len(games),
		Stats:         agg.Stats(dups),
		Games:         games,
	}

	fp, err := Fingerprint(cat)
	if err != nil {
		return nil, err
	}
	report := agg.Report(dups)
	report.RunID = uuid.NewString()
	report.GeneratedAt = cat.GeneratedAt
	report.Fingerprint = fp
	report.DurationMS = time.Since(start).Milliseconds()
	report.CacheHits = b.loader.CacheHits() - hitsBefore

	logf("build: %d game(s) from %d file(s), %d parse error(s), %d duplicate id(s) fingerprint=%s",
		cat.TotalGames, cat.Stats.TotalSourceFiles, len(report.ParseErrors), len(dups), fp)
	return &Result{Catalog: cat, Report: &report}, nil
}

func (b *Builder) assemble(rec Record, tree *Tree, alloc *Allocator, agg *Aggregator) (NormalizedGame, error) {
	obs := b.normalizer.Normalize(rec, tree.Folders[rec.File.Folder])
	agg.Observe(rec.File.RelPath, obs)

	candidate := CandidateID(rec.Doc, rec.File.RelPath, b.cfg.Identity.IDField, b.cfg.Corpus.ContentExt)
	game := NormalizedGame{
		GameID:       alloc.Assign(candidate),
		SourceGameID: candidate,
		Source: GameSource{
			JSONPath:    rec.File.RelPath,
			ContentHash: rec.Hash,
			Bytes:       len(rec.File.Data),
		},
		Repo:     obs.Repo,
		Metadata: obs.Metadata,
	}
	if b.cfg.IncludeContent() {
		content, err := marshalNoEscape(rec.Doc)
		if err != nil {
			return NormalizedGame{}, fmt.Errorf("encoding content of %s: %w", rec.File.RelPath, err)
		}
		game.Content = content
	}
	return game, nil
}

// Build is a convenience wrapper that builds once with a fresh Builder.
func Build(ctx context.Context, cfg Config) (*Result, error) {
	b, err := NewBuilder(cfg)
	if err != nil {
		return nil, err
	}
	return b.Build(ctx)
}
