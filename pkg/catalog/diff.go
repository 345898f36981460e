// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import "sort"

// GameRef names one catalog entry in a change set.
type GameRef struct {
	GameID   string `json:"gameId" yaml:"gameId"`
	JSONPath string `json:"jsonPath" yaml:"jsonPath"`
}

// Reassignment is a source file whose gameId changed between two runs.
type Reassignment struct {
	JSONPath string `json:"jsonPath" yaml:"jsonPath"`
	Previous string `json:"previous" yaml:"previous"`
	Current  string `json:"current" yaml:"current"`
}

// Changes is the difference between two catalogs, keyed by source path.
type Changes struct {
	Added      []GameRef      `json:"added" yaml:"added"`
	Removed    []GameRef      `json:"removed" yaml:"removed"`
	Modified   []GameRef      `json:"modified" yaml:"modified"`
	Reassigned []Reassignment `json:"reassigned" yaml:"reassigned"`
	Unchanged  int            `json:"unchanged" yaml:"unchanged"`
}

// Empty reports whether the two catalogs index the same files with the
// same bytes and identifiers.
func (c *Changes) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0 && len(c.Modified) == 0 && len(c.Reassigned) == 0
}

// Diff compares two catalogs. Files are matched by source.jsonPath, so a
// file whose identifier moved shows up as reassigned rather than as a
// removal plus an addition. A file can be both modified and reassigned.
func Diff(prev, next *Catalog) (*Changes, error) {
	for _, c := range []*Catalog{prev, next} {
		if err := CheckSchemaVersion(c.SchemaVersion); err != nil {
			return nil, err
		}
	}

	before := indexByPath(prev.Games)
	after := indexByPath(next.Games)
	ch := &Changes{
		Added:      []GameRef{},
		Removed:    []GameRef{},
		Modified:   []GameRef{},
		Reassigned: []Reassignment{},
	}

	for _, p := range sortedKeys(after) {
		cur := after[p]
		old, ok := before[p]
		if !ok {
			ch.Added = append(ch.Added, GameRef{GameID: cur.GameID, JSONPath: p})
			continue
		}
		same := true
		if old.Source.ContentHash != cur.Source.ContentHash {
			ch.Modified = append(ch.Modified, GameRef{GameID: cur.GameID, JSONPath: p})
			same = false
		}
		if old.GameID != cur.GameID {
			ch.Reassigned = append(ch.Reassigned, Reassignment{JSONPath: p, Previous: old.GameID, Current: cur.GameID})
			same = false
		}
		if same {
			ch.Unchanged++
		}
	}
	for _, p := range sortedKeys(before) {
		if _, ok := after[p]; !ok {
			ch.Removed = append(ch.Removed, GameRef{GameID: before[p].GameID, JSONPath: p})
		}
	}
	return ch, nil
}

func indexByPath(games []NormalizedGame) map[string]NormalizedGame {
	m := make(map[string]NormalizedGame, len(games))
	for _, g := range games {
		m[g.Source.JSONPath] = g
	}
	return m
}

// sortedKeys returns map keys in byte order for deterministic iteration.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
