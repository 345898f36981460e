//go:build usecase

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package uc004_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/content-catalog/pkg/catalog"
	"github.com/mesh-intelligence/content-catalog/pkg/store"
	"github.com/mesh-intelligence/content-catalog/tests/rel01.0/internal/testutil"
)

// TestRel01_UC004_ExportToSQLite exports the sample corpus and reads it back.
func TestRel01_UC004_ExportToSQLite(t *testing.T) {
	t.Parallel()
	dir := testutil.SetupCorpus(t, snapshotDir)
	cfg := catalog.DefaultConfig()
	cfg.Corpus.Root = dir
	cfg.SetIncludeContent(false)
	res, err := catalog.Build(context.Background(), cfg)
	require.NoError(t, err)

	s, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.SaveCatalog(context.Background(), res.Catalog, res.Report.Fingerprint))

	games, err := s.Games(context.Background())
	require.NoError(t, err)
	ids := make([]string, 0, len(games))
	for _, g := range games {
		ids = append(ids, g.GameID)
	}
	assert.Equal(t, []string{"checkout", "checkout_2", "games-wheel-config3-spin-wheel"}, ids)

	keys, err := s.KeyFrequency(context.Background())
	require.NoError(t, err)
	assert.Equal(t, res.Catalog.Stats.TopLevelKeys, keys)

	run, err := s.LatestRun(context.Background())
	require.NoError(t, err)
	assert.Equal(t, res.Report.Fingerprint, run.Fingerprint)
}
