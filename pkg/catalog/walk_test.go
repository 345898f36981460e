// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
)

func TestWalker_Matches(t *testing.T) {
	t.Parallel()
	w, err := NewWalker(DefaultConfig().Corpus)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		want bool
	}{
		{"config1.json", true},
		{"config12_quiz.json", true},
		{"CONFIG3-Memory.JSON", true},
		{"config.json", false},
		{"configx1.json", false},
		{"myconfig1.json", false},
		{"config1.json.bak", false},
		{"config1.yaml", false},
	}
	for _, tc := range tests {
		if got := w.Matches(tc.name); got != tc.want {
			t.Errorf("Matches(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestWalk_SkipsHiddenAndToolingDirs(t *testing.T) {
	t.Parallel()
	root := writeCorpus(t, map[string]string{
		"games/b/config1.json":              `{}`,
		"games/a/config2_x.json":            `{}`,
		"games/a/game.html":                 ``,
		"games/.git/config1.json":           `{}`,
		"games/a/node_modules/config1.json": `{}`,
		"vendor/config1.json":               `{}`,
		"config9.json":                      `{}`,
		"games/a/readme.md":                 ``,
	})
	w, err := NewWalker(DefaultConfig().Corpus)
	if err != nil {
		t.Fatal(err)
	}
	tree, err := w.Walk(root)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	var got []string
	for _, f := range tree.Files {
		got = append(got, f.RelPath)
	}
	want := []string{"config9.json", "games/a/config2_x.json", "games/b/config1.json"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("files = %v, want %v", got, want)
	}
	if tree.Files[0].Folder != "." {
		t.Errorf("root file folder = %q, want %q", tree.Files[0].Folder, ".")
	}

	names := tree.Folders["games/a"]
	if len(names) != 3 {
		t.Errorf("Folders[games/a] = %v, want 3 names", names)
	}
}

func TestWalk_ExcludeGlobs(t *testing.T) {
	t.Parallel()
	root := writeCorpus(t, map[string]string{
		"games/a/config1.json":        `{}`,
		"games/drafts/x/config1.json": `{}`,
		"games/b/config1_old.json":    `{}`,
	})
	corpus := DefaultConfig().Corpus
	corpus.ExcludeGlobs = []string{"**/drafts/**", "**/*_old.json"}
	w, err := NewWalker(corpus)
	if err != nil {
		t.Fatal(err)
	}
	tree, err := w.Walk(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(tree.Files) != 1 || tree.Files[0].RelPath != "games/a/config1.json" {
		t.Errorf("files = %+v, want only games/a/config1.json", tree.Files)
	}
}

func TestNewWalker_InvalidGlob(t *testing.T) {
	t.Parallel()
	corpus := DefaultConfig().Corpus
	corpus.ExcludeGlobs = []string{"[unclosed"}
	if _, err := NewWalker(corpus); err == nil {
		t.Error("expected error for invalid glob")
	}
}

func TestWalk_MissingRootIsFatal(t *testing.T) {
	t.Parallel()
	w, _ := NewWalker(DefaultConfig().Corpus)
	if _, err := w.Walk(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestWalk_UnreadableDirIsFatal(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	root := writeCorpus(t, map[string]string{"games/a/config1.json": `{}`})
	locked := filepath.Join(root, "games", "a")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	w, _ := NewWalker(DefaultConfig().Corpus)
	if _, err := w.Walk(root); err == nil {
		t.Error("expected error for unreadable directory")
	}
}
