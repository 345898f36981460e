// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestCandidateID(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		doc  Document
		rel  string
		want string
	}{
		{"explicit id", Document{"id": "Checkout Game"}, "games/a/config1.json", "checkout-game"},
		{"numeric id", Document{"id": json.Number("12")}, "games/a/config1.json", "12"},
		{"blank id uses path", Document{"id": "  "}, "games/a/config1.json", "games-a-config1"},
		{"unsluggable id uses path", Document{"id": "!!!"}, "games/a/Config2.JSON", "games-a-config2"},
		{"no id", Document{}, "config3_x.json", "config3-x"},
		{"cyrillic id", Document{"id": "Квиз 1"}, "games/a/config1.json", "квиз-1"},
		{"cjk path", Document{}, "games/日本/config1.json", "games-日本-config1"},
	}
	for _, tc := range tests {
		if got := CandidateID(tc.doc, tc.rel, "id", ".json"); got != tc.want {
			t.Errorf("%s: CandidateID = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestAllocator_CollisionResolution(t *testing.T) {
	t.Parallel()
	a := NewAllocator()
	got := []string{a.Assign("checkout"), a.Assign("checkout"), a.Assign("other"), a.Assign("checkout")}
	want := []string{"checkout", "checkout_2", "other", "checkout_3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("assigned = %v, want %v", got, want)
	}
	dups := a.Duplicates()
	if len(dups) != 1 || dups[0] != (DuplicateID{GameID: "checkout", Count: 3}) {
		t.Errorf("Duplicates = %+v", dups)
	}
}

func TestAllocator_DuplicatesOrder(t *testing.T) {
	t.Parallel()
	a := NewAllocator()
	for _, c := range []string{"b", "a", "b", "a", "c", "c", "c", "d"} {
		a.Assign(c)
	}
	want := []DuplicateID{{"c", 3}, {"a", 2}, {"b", 2}}
	if got := a.Duplicates(); !reflect.DeepEqual(got, want) {
		t.Errorf("Duplicates = %+v, want %+v", got, want)
	}
}

func TestAllocator_IndependentRuns(t *testing.T) {
	t.Parallel()
	a, b := NewAllocator(), NewAllocator()
	a.Assign("x")
	if got := b.Assign("x"); got != "x" {
		t.Errorf("second allocator assigned %q, want x", got)
	}
}
