//go:build usecase

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package uc001_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/content-catalog/pkg/catalog"
	"github.com/mesh-intelligence/content-catalog/tests/rel01.0/internal/testutil"
)

func gameAt(t *testing.T, c *catalog.Catalog, rel string) catalog.NormalizedGame {
	t.Helper()
	for _, g := range c.Games {
		if g.Source.JSONPath == rel {
			return g
		}
	}
	t.Fatalf("no game for %s", rel)
	return catalog.NormalizedGame{}
}

// TestRel01_UC001_BuildCatalog indexes the sample corpus through a config
// file and checks the persisted catalog.
func TestRel01_UC001_BuildCatalog(t *testing.T) {
	t.Parallel()
	dir := testutil.SetupCorpus(t, snapshotDir)
	out := filepath.Join(t.TempDir(), "catalog.json")
	cfgPath := testutil.WriteConfigOverride(t, dir, func(cfg *catalog.Config) {
		cfg.Output.CatalogPath = out
	})

	cfg, err := catalog.LoadConfig(cfgPath)
	require.NoError(t, err)
	res, err := catalog.Build(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, catalog.WriteCatalogFile(cfg.Output.CatalogPath, res.Catalog))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.NoError(t, catalog.Validate(data))

	c, err := catalog.ReadCatalog(out)
	require.NoError(t, err)
	assert.Equal(t, 3, c.TotalGames)
	assert.Equal(t, 4, c.Stats.TotalSourceFiles)

	memory := gameAt(t, c, "games/memory/config2_pairs.json")
	trivia := gameAt(t, c, "games/trivia/config1.json")
	wheel := gameAt(t, c, "games/wheel/config3_spin-wheel.json")

	assert.Equal(t, "checkout", memory.GameID)
	assert.Equal(t, "checkout_2", trivia.GameID)
	assert.Equal(t, "games-wheel-config3-spin-wheel", wheel.GameID)

	assert.Equal(t, "Memory Pairs", memory.Metadata.Title)
	assert.Equal(t, "Trivia Night", trivia.Metadata.Title)
	assert.Equal(t, "3 Spin Wheel", wheel.Metadata.Title)

	require.NotNil(t, memory.Repo.HTMLPath)
	assert.Equal(t, "games/memory/index.html", *memory.Repo.HTMLPath)
	assert.Nil(t, memory.Repo.JSPath)
	require.NotNil(t, trivia.Repo.JSPath)
	assert.Equal(t, "games/trivia/game1.js", *trivia.Repo.JSPath)
	require.NotNil(t, wheel.Repo.JSPath)
	assert.Equal(t, "games/wheel/wheel.js", *wheel.Repo.JSPath)
	assert.Equal(t, "wheel", wheel.Repo.Name)

	assert.NotEmpty(t, trivia.Content)
}

// TestRel01_UC001_Lightweight omits content while keeping every other field.
func TestRel01_UC001_Lightweight(t *testing.T) {
	t.Parallel()
	dir := testutil.SetupCorpus(t, snapshotDir)
	cfg := catalog.DefaultConfig()
	cfg.Corpus.Root = dir
	full, err := catalog.Build(context.Background(), cfg)
	require.NoError(t, err)

	cfg.SetIncludeContent(false)
	lite, err := catalog.Build(context.Background(), cfg)
	require.NoError(t, err)

	require.Len(t, lite.Catalog.Games, len(full.Catalog.Games))
	for i, g := range lite.Catalog.Games {
		assert.Nil(t, g.Content)
		f := full.Catalog.Games[i]
		f.Content = nil
		assert.Equal(t, f, g)
	}
}
