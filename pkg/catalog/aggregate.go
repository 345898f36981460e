// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import "sort"

// Aggregator folds per-record observations into corpus-wide statistics.
// It is fed one record at a time in sorted order and is not safe for
// concurrent use.
type Aggregator struct {
	totalFiles  int
	keyCounts   map[string]int
	missing     MissingPaths
	parseErrors []ParseError
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{keyCounts: make(map[string]int)}
}

// AddParseError records a file that failed to parse.
func (a *Aggregator) AddParseError(pe ParseError) {
	a.totalFiles++
	a.parseErrors = append(a.parseErrors, pe)
}

// Observe records a successfully normalized file.
func (a *Aggregator) Observe(relPath string, obs Observation) {
	a.totalFiles++
	for _, k := range obs.Metadata.TopLevelKeys {
		a.keyCounts[k]++
	}
	if obs.MissingTitle {
		a.missing.Title = append(a.missing.Title, relPath)
	}
	if obs.MissingID {
		a.missing.ID = append(a.missing.ID, relPath)
	}
	if obs.MissingMeta {
		a.missing.Meta = append(a.missing.Meta, relPath)
	}
}

// KeyTable returns the top-level key frequencies sorted by count
// descending then key ascending.
func (a *Aggregator) KeyTable() []KeyCount {
	table := make([]KeyCount, 0, len(a.keyCounts))
	for k, n := range a.keyCounts {
		table = append(table, KeyCount{Key: k, Count: n})
	}
	sort.Slice(table, func(i, j int) bool {
		if table[i].Count != table[j].Count {
			return table[i].Count > table[j].Count
		}
		return table[i].Key < table[j].Key
	})
	return table
}

// Stats assembles the catalog statistics block.
func (a *Aggregator) Stats(duplicates []DuplicateID) Stats {
	return Stats{
		TotalSourceFiles: a.totalFiles,
		MissingFields: MissingCounts{
			Title: len(a.missing.Title),
			ID:    len(a.missing.ID),
			Meta:  len(a.missing.Meta),
		},
		DuplicateSourceGameIDs: len(duplicates),
		TopLevelKeys:           a.KeyTable(),
	}
}

// Report assembles the diagnostic report body. Run metadata is filled in
// by the caller.
func (a *Aggregator) Report(duplicates []DuplicateID) Report {
	return Report{
		FileCount:              a.totalFiles,
		ParseErrors:            nonNil(a.parseErrors),
		DuplicateSourceGameIDs: nonNil(duplicates),
		MissingSourceFields: MissingPaths{
			Title: nonNil(a.missing.Title),
			ID:    nonNil(a.missing.ID),
			Meta:  nonNil(a.missing.Meta),
		},
		TopLevelKeys: a.KeyTable(),
	}
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
