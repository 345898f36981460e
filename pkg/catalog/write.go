// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
)

// ErrIncompatibleSchema is returned when a catalog was written with a
// schema major version this package cannot read.
var ErrIncompatibleSchema = errors.New("incompatible catalog schema version")

// marshalNoEscape encodes v as compact JSON without HTML escaping so
// payload text survives byte for byte.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// WriteCatalog encodes c as indented JSON. Map keys are sorted by the
// encoder, so equal catalogs produce equal bytes.
func WriteCatalog(w io.Writer, c *Catalog) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	return nil
}

// MarshalCatalog returns the bytes WriteCatalog would write.
func MarshalCatalog(c *Catalog) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCatalog(&buf, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteCatalogFile writes c to path through a temporary file in the same
// directory, so readers never observe a partial catalog.
func WriteCatalogFile(path string, c *Catalog) error {
	data, err := MarshalCatalog(c)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	logf("write: catalog written to %s (%d games, %d bytes)", path, c.TotalGames, len(data))
	return nil
}

// ReadCatalog loads a catalog previously written by WriteCatalogFile.
func ReadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return DecodeCatalog(data)
}

// DecodeCatalog parses catalog bytes and checks the schema version.
func DecodeCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	if err := CheckSchemaVersion(c.SchemaVersion); err != nil {
		return nil, err
	}
	return &c, nil
}

// CheckSchemaVersion reports whether v shares a major version with
// SchemaVersion.
func CheckSchemaVersion(v string) error {
	got, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrIncompatibleSchema, v, err)
	}
	want := semver.MustParse(SchemaVersion)
	if got.Major() != want.Major() {
		return fmt.Errorf("%w: %s (supported %d.x)", ErrIncompatibleSchema, got, want.Major())
	}
	return nil
}
