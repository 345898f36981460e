// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Report file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

func printSection(w io.Writer, label string, items []string) bool {
	if len(items) == 0 {
		return false
	}
	fmt.Fprintf(w, "\n⚠️  %s:\n", label)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
	return true
}

// PrintReport writes a human-readable summary of r to w. It returns true
// when the report carries any warning section.
func PrintReport(w io.Writer, r *Report) bool {
	fmt.Fprintf(w, "run %s  fingerprint %s\n", r.RunID, r.Fingerprint)

	parseErrs := make([]string, 0, len(r.ParseErrors))
	for _, pe := range r.ParseErrors {
		parseErrs = append(parseErrs, pe.Path+": "+pe.Message)
	}
	dups := make([]string, 0, len(r.DuplicateSourceGameIDs))
	for _, d := range r.DuplicateSourceGameIDs {
		dups = append(dups, fmt.Sprintf("%s (x%d)", d.GameID, d.Count))
	}

	hasIssues := false
	hasIssues = printSection(w, "Parse errors", parseErrs) || hasIssues
	hasIssues = printSection(w, "Duplicate source game ids", dups) || hasIssues
	hasIssues = printSection(w, "Missing title (derived from file name)", r.MissingSourceFields.Title) || hasIssues
	hasIssues = printSection(w, "Missing id", r.MissingSourceFields.ID) || hasIssues
	hasIssues = printSection(w, "Missing meta", r.MissingSourceFields.Meta) || hasIssues

	if len(r.TopLevelKeys) > 0 {
		fmt.Fprintln(w)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tFILES")
		fmt.Fprintln(tw, "---\t-----")
		for _, kc := range r.TopLevelKeys {
			fmt.Fprintf(tw, "%s\t%d\n", kc.Key, kc.Count)
		}
		tw.Flush()
	}

	if !hasIssues {
		fmt.Fprintf(w, "\n✅ All content files indexed cleanly\n")
	}
	fmt.Fprintf(w, "   - %d content file(s)\n", r.FileCount)
	fmt.Fprintf(w, "   - %d cache hit(s)\n", r.CacheHits)
	fmt.Fprintf(w, "   - %d ms\n", r.DurationMS)
	return hasIssues
}

// PrintChanges writes a human-readable summary of a diff to w.
func PrintChanges(w io.Writer, c *Changes) {
	refs := func(rs []GameRef) []string {
		out := make([]string, 0, len(rs))
		for _, r := range rs {
			out = append(out, r.GameID+" ("+r.JSONPath+")")
		}
		return out
	}
	moved := make([]string, 0, len(c.Reassigned))
	for _, r := range c.Reassigned {
		moved = append(moved, fmt.Sprintf("%s: %s -> %s", r.JSONPath, r.Previous, r.Current))
	}
	printSection(w, "Added", refs(c.Added))
	printSection(w, "Removed", refs(c.Removed))
	printSection(w, "Modified", refs(c.Modified))
	printSection(w, "Reassigned ids", moved)
	if c.Empty() {
		fmt.Fprintf(w, "\n✅ No changes\n")
	}
	fmt.Fprintf(w, "   - %d unchanged\n", c.Unchanged)
}

// ReportFormat resolves the output format: an explicit format wins, else
// the file extension decides, else JSON.
func ReportFormat(format, path string) string {
	switch strings.ToLower(format) {
	case FormatJSON:
		return FormatJSON
	case FormatYAML, "yml":
		return FormatYAML
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// MarshalReport encodes r in the given format.
func MarshalReport(r *Report, format string) ([]byte, error) {
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("marshaling report: %w", err)
		}
		return data, nil
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling report: %w", err)
		}
		return append(data, '\n'), nil
	}
	return nil, fmt.Errorf("unknown report format %q", format)
}

// WriteReportFile writes r to path, creating parent directories.
func WriteReportFile(path, format string, r *Report) error {
	data, err := MarshalReport(r, ReportFormat(format, path))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	logf("report: written to %s", path)
	return nil
}
