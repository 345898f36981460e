// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Walker enumerates content files below a root directory.
type Walker struct {
	match        *regexp.Regexp
	excludeDirs  map[string]bool
	excludeGlobs []string
}

// NewWalker builds a Walker from the corpus settings. Invalid exclude
// globs are reported here rather than mid-walk.
func NewWalker(c CorpusConfig) (*Walker, error) {
	pattern := `(?i)^` + regexp.QuoteMeta(c.ContentPrefix) + `\d+.*` + regexp.QuoteMeta(c.ContentExt) + `$`
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling content pattern: %w", err)
	}
	for _, g := range c.ExcludeGlobs {
		if !doublestar.ValidatePattern(g) {
			return nil, fmt.Errorf("invalid exclude glob %q", g)
		}
	}
	w := &Walker{
		match:        re,
		excludeDirs:  make(map[string]bool, len(c.ExcludeDirs)),
		excludeGlobs: c.ExcludeGlobs,
	}
	for _, d := range c.ExcludeDirs {
		w.excludeDirs[d] = true
	}
	return w, nil
}

// Matches reports whether a file name looks like a content file.
func (w *Walker) Matches(name string) bool {
	return w.match.MatchString(name)
}

// Tree is the result of a walk.
type Tree struct {
	Root  string       // absolute corpus root
	Files []SourceFile // content files sorted by RelPath

	// Folders maps a relative folder to the names of every regular file
	// in it, content or not. The sibling resolver reads these.
	Folders map[string][]string
}

// Walk returns every content file under root sorted by relative path.
// Any directory that cannot be read aborts the walk.
func (w *Walker) Walk(root string) (*Tree, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root %s: %w", root, err)
	}

	var files []SourceFile
	folders := make(map[string][]string)
	err = filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walking %s: %w", p, err)
		}
		if p == absRoot {
			return nil
		}
		rel, err := filepath.Rel(absRoot, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if w.skipDir(d.Name(), rel) {
				debugf("walk: skipping %s", rel)
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		folder := path.Dir(rel)
		folders[folder] = append(folders[folder], d.Name())
		if !w.Matches(d.Name()) || w.excluded(rel) {
			return nil
		}
		files = append(files, SourceFile{
			AbsPath: p,
			RelPath: rel,
			Folder:  folder,
			Name:    d.Name(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	SortSourceFiles(files)
	logf("walk: found %d content file(s) under %s", len(files), absRoot)
	return &Tree{Root: absRoot, Files: files, Folders: folders}, nil
}

func (w *Walker) skipDir(name, rel string) bool {
	if strings.HasPrefix(name, ".") || w.excludeDirs[name] {
		return true
	}
	return w.excluded(rel) || w.excluded(rel+"/")
}

func (w *Walker) excluded(rel string) bool {
	for _, g := range w.excludeGlobs {
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
	}
	return false
}

// SortSourceFiles orders files by relative path using byte comparison so
// the result does not depend on locale or directory listing order.
func SortSourceFiles(files []SourceFile) {
	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
}
