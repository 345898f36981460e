// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"sort"
	"strconv"
	"strings"
)

// fallbackID is used when neither the explicit identifier nor the path
// produce a usable slug.
const fallbackID = "game"

// CandidateID derives the pre-collision identifier for a document: the
// slug of its explicit identifier field when present, else the slug of
// its relative path without the content extension.
func CandidateID(doc Document, relPath, idField, contentExt string) string {
	if v, ok := scalarString(doc[idField]); ok {
		if s := Slugify(v); s != "" {
			return s
		}
	}
	p := relPath
	if len(p) >= len(contentExt) && strings.EqualFold(p[len(p)-len(contentExt):], contentExt) {
		p = p[:len(p)-len(contentExt)]
	}
	if s := Slugify(p); s != "" {
		return s
	}
	return fallbackID
}

// Allocator hands out catalog-unique identifiers for one build run and
// counts how often each candidate was requested. It is not safe for
// concurrent use.
type Allocator struct {
	assigned map[string]bool
	next     map[string]int
	seen     map[string]int
}

// NewAllocator returns an empty Allocator.
func NewAllocator() *Allocator {
	return &Allocator{
		assigned: make(map[string]bool),
		next:     make(map[string]int),
		seen:     make(map[string]int),
	}
}

// Assign returns candidate if it is unused, otherwise candidate_N for the
// smallest N >= 2 not yet assigned.
func (a *Allocator) Assign(candidate string) string {
	a.seen[candidate]++
	id := candidate
	if a.assigned[id] {
		n := max(a.next[candidate], 2)
		for {
			id = candidate + "_" + strconv.Itoa(n)
			n++
			if !a.assigned[id] {
				break
			}
		}
		a.next[candidate] = n
	}
	a.assigned[id] = true
	return id
}

// Duplicates returns every candidate requested more than once, sorted by
// count descending then identifier ascending.
func (a *Allocator) Duplicates() []DuplicateID {
	var out []DuplicateID
	for id, n := range a.seen {
		if n > 1 {
			out = append(out, DuplicateID{GameID: id, Count: n})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].GameID < out[j].GameID
	})
	return out
}
