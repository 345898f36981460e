// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"sort"
	"strings"
)

// siblingRule is one step of the companion-file ranking. Rules are tried
// in order and the first rule that matches any candidate wins.
type siblingRule struct {
	name  string
	match func(name string) bool
}

// siblingRules returns the ranked rules for a content file whose stripped
// name is suffix. All comparisons ignore case.
func siblingRules(suffix, ext, role, altRole string) []siblingRule {
	lower := func(s string) string { return strings.ToLower(s) }
	return []siblingRule{
		{"role-exact", func(n string) bool { return strings.EqualFold(n, role+suffix+ext) }},
		{"alt-role-exact", func(n string) bool { return strings.EqualFold(n, altRole+suffix+ext) }},
		{"contains-suffix", func(n string) bool {
			return suffix != "" && strings.Contains(lower(n), lower(suffix))
		}},
		{"role-prefix", func(n string) bool { return role != "" && strings.HasPrefix(lower(n), lower(role)) }},
		{"alt-role-prefix", func(n string) bool { return altRole != "" && strings.HasPrefix(lower(n), lower(altRole)) }},
		{"first", func(string) bool { return true }},
	}
}

// ResolveSibling picks the companion file with extension ext among names.
// It returns false when no file of that extension exists.
func ResolveSibling(names []string, suffix, ext, role, altRole string) (string, bool) {
	candidates := withExt(names, ext)
	if len(candidates) == 0 {
		return "", false
	}
	for _, rule := range siblingRules(suffix, ext, role, altRole) {
		for _, c := range candidates {
			if rule.match(c) {
				debugf("siblings: %q matched %s for suffix %q", c, rule.name, suffix)
				return c, true
			}
		}
	}
	return "", false
}

// withExt returns the names ending in ext, sorted lexically.
func withExt(names []string, ext string) []string {
	var out []string
	for _, n := range names {
		if len(n) > len(ext) && strings.EqualFold(n[len(n)-len(ext):], ext) {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}
