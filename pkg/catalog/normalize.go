// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"encoding/json"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PlaceholderTitle is used when neither the document nor its file name
// yields a title.
const PlaceholderTitle = "Untitled"

// accessor extracts one optional string from a document.
type accessor func(Document) (string, bool)

// field reads a top-level scalar. Strings are trimmed; blank strings and
// non-scalar values count as absent.
func field(name string) accessor {
	return func(d Document) (string, bool) {
		return scalarString(d[name])
	}
}

// metaField reads a scalar from the nested "meta" object.
func metaField(name string) accessor {
	return func(d Document) (string, bool) {
		meta, ok := d["meta"].(map[string]any)
		if !ok {
			return "", false
		}
		return scalarString(meta[name])
	}
}

// firstNonEmpty returns the first value produced by the accessors.
func firstNonEmpty(d Document, accessors ...accessor) (string, bool) {
	for _, a := range accessors {
		if v, ok := a(d); ok {
			return v, true
		}
	}
	return "", false
}

func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		s := strings.TrimSpace(x)
		return s, s != ""
	case json.Number:
		return x.String(), true
	}
	return "", false
}

// Ordered fallback chains for the canonical metadata fields.
var (
	titleChain    = []accessor{field("title"), metaField("title")}
	subtitleChain = []accessor{field("subtitle"), metaField("subtitle")}
	legacyIDChain = []accessor{field("id")}
)

// Observation is what the normalizer learns from one parsed document.
type Observation struct {
	Repo         GameRepo
	Metadata     GameMetadata
	MissingTitle bool
	MissingID    bool
	MissingMeta  bool
}

// Normalizer extracts canonical metadata and companion files.
type Normalizer struct {
	corpus   CorpusConfig
	siblings SiblingConfig
}

// NewNormalizer returns a Normalizer for the given settings.
func NewNormalizer(corpus CorpusConfig, siblings SiblingConfig) *Normalizer {
	return &Normalizer{corpus: corpus, siblings: siblings}
}

// Normalize extracts metadata from rec's document. siblingNames lists
// every file name in rec's folder.
func (n *Normalizer) Normalize(rec Record, siblingNames []string) Observation {
	var obs Observation
	doc := rec.Doc

	title, ok := firstNonEmpty(doc, titleChain...)
	if !ok {
		obs.MissingTitle = true
		title = DeriveTitle(rec.File.Name, n.corpus.ContentPrefix, n.corpus.ContentExt)
	}
	obs.Metadata.Title = title

	if s, ok := firstNonEmpty(doc, subtitleChain...); ok {
		obs.Metadata.Subtitle = &s
	}
	if id, ok := firstNonEmpty(doc, legacyIDChain...); ok {
		obs.Metadata.LegacyID = &id
	} else {
		obs.MissingID = true
	}

	_, obs.Metadata.HasMeta = doc["meta"].(map[string]any)
	obs.MissingMeta = !obs.Metadata.HasMeta
	obs.Metadata.TopLevelKeys = TopLevelKeys(doc)

	suffix := StripMarker(rec.File.Name, n.corpus.ContentPrefix, n.corpus.ContentExt)
	obs.Repo = GameRepo{
		Name:     RepoName(rec.File.RelPath, n.corpus.RootMarker),
		Folder:   rec.File.Folder,
		HTMLPath: n.sibling(rec.File.Folder, siblingNames, suffix, n.siblings.MarkupExt),
		JSPath:   n.sibling(rec.File.Folder, siblingNames, suffix, n.siblings.ScriptExt),
	}
	return obs
}

func (n *Normalizer) sibling(folder string, names []string, suffix, ext string) *string {
	name, ok := ResolveSibling(names, suffix, ext, n.siblings.RolePrefix, n.siblings.AltRolePrefix)
	if !ok {
		return nil
	}
	p := path.Join(folder, name)
	return &p
}

// TopLevelKeys returns the document's field names in sorted order.
func TopLevelKeys(d Document) []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// StripMarker removes the content prefix and extension from a file name,
// both matched case-insensitively: "config3_quiz.json" -> "3_quiz".
func StripMarker(name, prefix, ext string) string {
	if len(name) >= len(ext) && strings.EqualFold(name[len(name)-len(ext):], ext) {
		name = name[:len(name)-len(ext)]
	}
	if len(name) >= len(prefix) && strings.EqualFold(name[:len(prefix)], prefix) {
		name = name[len(prefix):]
	}
	return name
}

// DeriveTitle builds a display title from a content file name by
// stripping the marker, splitting on '_' and '-', and upper-casing the
// first letter of each segment. The rest of a segment keeps its case. It
// never returns an empty string.
func DeriveTitle(name, prefix, ext string) string {
	base := StripMarker(name, prefix, ext)
	parts := strings.FieldsFunc(base, func(r rune) bool { return r == '_' || r == '-' })
	caser := cases.Title(language.Und, cases.NoLower)
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		words = append(words, caser.String(p))
	}
	if len(words) == 0 {
		return PlaceholderTitle
	}
	return strings.Join(words, " ")
}

// RepoName returns the first directory after the marker segment in rel,
// or the first directory of rel when the marker is absent. Files at the
// corpus root belong to no repo and yield "".
func RepoName(rel, marker string) string {
	dirs := strings.Split(rel, "/")
	dirs = dirs[:len(dirs)-1]
	for i, seg := range dirs {
		if seg == marker && i+1 < len(dirs) {
			return dirs[i+1]
		}
	}
	if len(dirs) == 0 {
		return ""
	}
	if dirs[0] == marker {
		return ""
	}
	return dirs[0]
}
