// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import "testing"

func TestSlugify(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"Checkout", "checkout"},
		{"  Memory Match!! ", "memory-match"},
		{"games/trivia/config1", "games-trivia-config1"},
		{"Café Crème", "cafe-creme"},
		{"a__b--c", "a-b-c"},
		{"---", ""},
		{"", ""},
		{"日本語", "日本語"},
		{"Квиз 1", "квиз-1"},
		{"Тест 1", "тест-1"},
		{"Ёлка", "елка"},
		{"①", "1"},
	}
	for _, tc := range tests {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
