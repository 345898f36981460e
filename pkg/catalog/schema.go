// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/catalog.schema.json
var catalogSchemaJSON string

const catalogSchemaURL = "https://content-catalog.local/schema/catalog.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func catalogSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(catalogSchemaURL, strings.NewReader(catalogSchemaJSON)); err != nil {
			schemaErr = fmt.Errorf("catalog schema load failed: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(catalogSchemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("catalog schema compile failed: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// SchemaJSON returns the embedded catalog JSON Schema.
func SchemaJSON() string {
	return catalogSchemaJSON
}

// Validate checks a catalog document against the embedded schema, then
// checks the invariants a schema cannot express: totalGames matches the
// game count and gameIds are unique.
func Validate(data []byte) error {
	sch, err := catalogSchema()
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("decoding catalog: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("catalog schema validation failed: %w", err)
	}

	c, err := DecodeCatalog(data)
	if err != nil {
		return err
	}
	return checkInvariants(c)
}

func checkInvariants(c *Catalog) error {
	var errs []error
	if c.TotalGames != len(c.Games) {
		errs = append(errs, fmt.Errorf("totalGames is %d but catalog lists %d game(s)", c.TotalGames, len(c.Games)))
	}
	seen := make(map[string]bool, len(c.Games))
	for _, g := range c.Games {
		if seen[g.GameID] {
			errs = append(errs, fmt.Errorf("duplicate gameId %q", g.GameID))
		}
		seen[g.GameID] = true
	}
	return errors.Join(errs...)
}
