//go:build usecase

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package testutil builds sample corpora for the release use-case tests.
package testutil

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/content-catalog/pkg/catalog"
)

// SampleCorpus is a small corpus that exercises every diagnostic: a
// duplicate identifier, a missing title, a missing meta block, sibling
// files, excluded tooling directories and an unparseable file.
var SampleCorpus = map[string]string{
	"games/trivia/config1.json":             `{"id":"checkout","title":"Trivia Night","rounds":3,"meta":{"subtitle":"Pub quiz"}}`,
	"games/trivia/game1.html":               `<html></html>`,
	"games/trivia/game1.js":                 ``,
	"games/memory/config2_pairs.json":       `{"id":"Checkout","rounds":[1,2],"meta":{"title":"Memory Pairs"}}`,
	"games/memory/index.html":               ``,
	"games/wheel/config3_spin-wheel.json":   `{"scoring":{"max":10}}`,
	"games/wheel/wheel.js":                  ``,
	"games/broken/config1.json":             `{"title": "oops",`,
	"games/wheel/node_modules/config9.json": `{"title":"ignored"}`,
	"games/.cache/config1.json":             `{"title":"ignored"}`,
}

// PrepareSnapshot writes SampleCorpus into a temp directory and returns it
// plus a cleanup func. Tests copy the snapshot with SetupCorpus.
func PrepareSnapshot() (string, func(), error) {
	snap, err := os.MkdirTemp("", "usecase-corpus-*")
	if err != nil {
		return "", nil, err
	}
	if err := WriteFiles(snap, SampleCorpus); err != nil {
		os.RemoveAll(snap)
		return "", nil, err
	}
	return snap, func() { os.RemoveAll(snap) }, nil
}

// SetupCorpus copies the snapshot to a fresh temp directory owned by t.
func SetupCorpus(t testing.TB, snapshotDir string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "corpus")
	if err := CopyDir(snapshotDir, dir); err != nil {
		t.Fatalf("SetupCorpus: copy snapshot: %v", err)
	}
	return dir
}

// WriteFiles writes files (slash-separated relative path -> content)
// under dir.
func WriteFiles(dir string, files map[string]string) error {
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// WriteConfigOverride writes catalog.yaml into dir starting from the
// defaults rooted at dir, after applying modify.
func WriteConfigOverride(t testing.TB, dir string, modify func(*catalog.Config)) string {
	t.Helper()
	cfg := catalog.DefaultConfig()
	cfg.Corpus.Root = dir
	modify(&cfg)
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		t.Fatalf("WriteConfigOverride: marshal: %v", err)
	}
	cfgPath := filepath.Join(dir, catalog.DefaultConfigFile)
	if err := os.WriteFile(cfgPath, data, 0o644); err != nil {
		t.Fatalf("WriteConfigOverride: write: %v", err)
	}
	return cfgPath
}

// ReadFileContains returns true if the file at path contains substr.
func ReadFileContains(path, substr string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return strings.Contains(string(data), substr)
}

// CopyDir copies src to dst recursively.
func CopyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(src, path)
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return CopyFile(path, target)
	})
}

// CopyFile copies a single file from src to dst.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}
