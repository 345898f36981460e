// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/content-catalog/pkg/catalog"
)

func buildCatalog(t *testing.T, files map[string]string) *catalog.Result {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	cfg := catalog.DefaultConfig()
	cfg.Corpus.Root = root
	cfg.SetIncludeContent(false)
	res, err := catalog.Build(context.Background(), cfg)
	require.NoError(t, err)
	return res
}

func TestStore_SaveAndQuery(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.LatestRun(ctx)
	assert.True(t, errors.Is(err, ErrNoRuns))

	res := buildCatalog(t, map[string]string{
		"games/b/config1.json": `{"id":"beta","title":"Beta","meta":{"subtitle":"Two"}}`,
		"games/b/game1.html":   ``,
		"games/a/config1.json": `{"id":"alpha","title":"Alpha"}`,
	})
	require.NoError(t, s.SaveCatalog(ctx, res.Catalog, res.Report.Fingerprint))

	games, err := s.Games(ctx)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "alpha", games[0].GameID)
	assert.Equal(t, "beta", games[1].GameID)
	assert.Equal(t, "a", games[0].RepoName)
	assert.Nil(t, games[0].Subtitle)
	assert.Nil(t, games[0].HTMLPath)
	require.NotNil(t, games[1].Subtitle)
	assert.Equal(t, "Two", *games[1].Subtitle)
	require.NotNil(t, games[1].HTMLPath)
	assert.Equal(t, "games/b/game1.html", *games[1].HTMLPath)

	keys, err := s.KeyFrequency(ctx)
	require.NoError(t, err)
	assert.Equal(t, []catalog.KeyCount{{Key: "id", Count: 2}, {Key: "title", Count: 2}, {Key: "meta", Count: 1}}, keys)

	run, err := s.LatestRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, res.Report.Fingerprint, run.Fingerprint)
	assert.Equal(t, 2, run.TotalGames)
	assert.Equal(t, catalog.SchemaVersion, run.SchemaVersion)
	assert.True(t, run.GeneratedAt.Equal(res.Catalog.GeneratedAt))
}

func TestStore_SaveReplacesGames(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")
	s, err := Open(ctx, path)
	require.NoError(t, err)

	first := buildCatalog(t, map[string]string{
		"games/a/config1.json": `{"id":"alpha"}`,
		"games/b/config1.json": `{"id":"beta"}`,
	})
	require.NoError(t, s.SaveCatalog(ctx, first.Catalog, first.Report.Fingerprint))
	require.NoError(t, s.Close())

	// Reopen to check the schema migration is idempotent.
	s, err = Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	second := buildCatalog(t, map[string]string{
		"games/c/config1.json": `{"id":"gamma"}`,
	})
	require.NoError(t, s.SaveCatalog(ctx, second.Catalog, second.Report.Fingerprint))

	games, err := s.Games(ctx)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "gamma", games[0].GameID)

	run, err := s.LatestRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), run.ID)
	assert.Equal(t, second.Report.Fingerprint, run.Fingerprint)
}

func TestStore_OpenBadPath(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "missing", "dir", "catalog.db"))
	assert.Error(t, err)
}
