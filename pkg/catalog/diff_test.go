// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDiff_DetectsChanges(t *testing.T) {
	t.Parallel()
	files := map[string]string{
		"games/a/config1.json": `{"id":"shared","title":"A"}`,
		"games/b/config1.json": `{"title":"B"}`,
		"games/c/config1.json": `{"title":"C"}`,
	}
	root := writeCorpus(t, files)
	prev := mustBuild(t, testConfig(root)).Catalog

	// Modify b, remove c, add a file that sorts before a and claims its id.
	if err := os.WriteFile(filepath.Join(root, "games/b/config1.json"), []byte(`{"title":"B2"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.RemoveAll(filepath.Join(root, "games/c")); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "games/0"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "games/0/config1.json"), []byte(`{"id":"shared"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	next := mustBuild(t, testConfig(root)).Catalog

	ch, err := Diff(prev, next)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if want := []GameRef{{GameID: "shared", JSONPath: "games/0/config1.json"}}; !reflect.DeepEqual(ch.Added, want) {
		t.Errorf("Added = %+v, want %+v", ch.Added, want)
	}
	if want := []GameRef{{GameID: "games-c-config1", JSONPath: "games/c/config1.json"}}; !reflect.DeepEqual(ch.Removed, want) {
		t.Errorf("Removed = %+v, want %+v", ch.Removed, want)
	}
	if want := []GameRef{{GameID: "games-b-config1", JSONPath: "games/b/config1.json"}}; !reflect.DeepEqual(ch.Modified, want) {
		t.Errorf("Modified = %+v, want %+v", ch.Modified, want)
	}
	want := []Reassignment{{JSONPath: "games/a/config1.json", Previous: "shared", Current: "shared_2"}}
	if !reflect.DeepEqual(ch.Reassigned, want) {
		t.Errorf("Reassigned = %+v, want %+v", ch.Reassigned, want)
	}
	if ch.Unchanged != 0 {
		t.Errorf("Unchanged = %d, want 0", ch.Unchanged)
	}
	if ch.Empty() {
		t.Error("Empty() = true")
	}
}

func TestDiff_Identical(t *testing.T) {
	t.Parallel()
	root := writeCorpus(t, sampleCorpus())
	a := mustBuild(t, testConfig(root)).Catalog
	b := mustBuild(t, testConfig(root)).Catalog
	ch, err := Diff(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if !ch.Empty() || ch.Unchanged != 3 {
		t.Errorf("changes = %+v, want empty with 3 unchanged", ch)
	}
}

func TestDiff_IncompatibleSchema(t *testing.T) {
	t.Parallel()
	prev := &Catalog{SchemaVersion: "2.0.0"}
	next := &Catalog{SchemaVersion: SchemaVersion}
	if _, err := Diff(prev, next); !errors.Is(err, ErrIncompatibleSchema) {
		t.Errorf("error = %v, want ErrIncompatibleSchema", err)
	}
}
