// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file looked up in the working
// directory when no explicit path is given.
const DefaultConfigFile = "catalog.yaml"

// Environment variables that override configuration file values.
const (
	EnvRoot           = "CATALOG_ROOT"
	EnvIncludeContent = "CATALOG_INCLUDE_CONTENT"
	EnvOutput         = "CATALOG_OUTPUT"
	EnvWorkers        = "CATALOG_WORKERS"
)

// Config holds all catalog settings. Callers either construct a Config in
// Go code, or place a catalog.yaml next to the corpus and call LoadConfig.
type Config struct {
	Corpus   CorpusConfig   `yaml:"corpus"`
	Siblings SiblingConfig  `yaml:"siblings"`
	Identity IdentityConfig `yaml:"identity"`
	Output   OutputConfig   `yaml:"output"`
	Build    BuildConfig    `yaml:"build"`
	Store    StoreConfig    `yaml:"store"`
	Publish  PublishConfig  `yaml:"publish"`
}

// CorpusConfig describes where content files live and how they are named.
type CorpusConfig struct {
	// Root is the directory walked for content files (default ".").
	Root string `yaml:"root"`

	// RootMarker is the path segment after which the first component names
	// the owning repo (default "games").
	RootMarker string `yaml:"root_marker"`

	// ContentPrefix is the file-name marker content files start with,
	// followed by at least one digit (default "config").
	ContentPrefix string `yaml:"content_prefix"`

	// ContentExt is the content file extension (default ".json").
	ContentExt string `yaml:"content_ext"`

	// ExcludeDirs lists directory names never descended into. Hidden
	// directories are always skipped.
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// ExcludeGlobs are doublestar patterns matched against forward-slash
	// relative paths (e.g. "**/drafts/**").
	ExcludeGlobs []string `yaml:"exclude_globs"`
}

// SiblingConfig controls companion file resolution.
type SiblingConfig struct {
	MarkupExt     string `yaml:"markup_ext"`      // default ".html"
	ScriptExt     string `yaml:"script_ext"`      // default ".js"
	RolePrefix    string `yaml:"role_prefix"`     // default "game"
	AltRolePrefix string `yaml:"alt_role_prefix"` // default "index"
}

// IdentityConfig controls identifier derivation.
type IdentityConfig struct {
	// IDField is the document field holding an explicit identifier
	// (default "id").
	IDField string `yaml:"id_field"`
}

// OutputConfig controls where and how results are written.
type OutputConfig struct {
	// CatalogPath is the catalog destination (default "catalog.json").
	CatalogPath string `yaml:"catalog_path"`

	// IncludeContent embeds full document payloads (default true).
	IncludeContent *bool `yaml:"include_content"`

	// ReportPath, when set, receives the report as a separate file.
	ReportPath string `yaml:"report_path"`

	// ReportFormat is "json" or "yaml"; derived from ReportPath when empty.
	ReportFormat string `yaml:"report_format"`
}

// BuildConfig tunes the pipeline.
type BuildConfig struct {
	// Workers bounds concurrent file loads (default runtime.NumCPU()).
	Workers int `yaml:"workers"`

	// CacheSize is the number of parsed documents kept between builds
	// run by the same Builder (default 4096).
	CacheSize int `yaml:"cache_size"`
}

// StoreConfig configures the SQLite index export.
type StoreConfig struct {
	SQLitePath string `yaml:"sqlite_path"`
}

// PublishConfig configures uploading the catalog to S3-compatible storage.
type PublishConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Bucket       string `yaml:"bucket"`
	Object       string `yaml:"object"` // default: base name of output.catalog_path
	Region       string `yaml:"region"` // default "us-east-1"
	UseSSL       bool   `yaml:"use_ssl"`
	AccessKeyEnv string `yaml:"access_key_env"` // default "CATALOG_S3_ACCESS_KEY"
	SecretKeyEnv string `yaml:"secret_key_env"` // default "CATALOG_S3_SECRET_KEY"
}

// defaultExcludeDirs are tooling directories that never hold content.
var defaultExcludeDirs = []string{
	"node_modules", "vendor", "dist", "build", "coverage", "tools", "scripts",
}

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() Config {
	var c Config
	c.applyDefaults()
	return c
}

// IncludeContent reports whether full document payloads are embedded.
// Handles the nil-pointer case for the default (true).
func (c *Config) IncludeContent() bool {
	if c.Output.IncludeContent == nil {
		return true
	}
	return *c.Output.IncludeContent
}

// PublishObject returns the object key the catalog is uploaded under,
// falling back to the catalog file's base name.
func (c *Config) PublishObject() string {
	if c.Publish.Object != "" {
		return c.Publish.Object
	}
	return filepath.Base(c.Output.CatalogPath)
}

// SetIncludeContent sets the content toggle.
func (c *Config) SetIncludeContent(v bool) {
	c.Output.IncludeContent = &v
}

func (c *Config) applyDefaults() {
	if c.Corpus.Root == "" {
		c.Corpus.Root = "."
	}
	if c.Corpus.RootMarker == "" {
		c.Corpus.RootMarker = "games"
	}
	if c.Corpus.ContentPrefix == "" {
		c.Corpus.ContentPrefix = "config"
	}
	if c.Corpus.ContentExt == "" {
		c.Corpus.ContentExt = ".json"
	}
	if !strings.HasPrefix(c.Corpus.ContentExt, ".") {
		c.Corpus.ContentExt = "." + c.Corpus.ContentExt
	}
	if c.Corpus.ExcludeDirs == nil {
		c.Corpus.ExcludeDirs = append([]string(nil), defaultExcludeDirs...)
	}
	if c.Siblings.MarkupExt == "" {
		c.Siblings.MarkupExt = ".html"
	}
	if c.Siblings.ScriptExt == "" {
		c.Siblings.ScriptExt = ".js"
	}
	if c.Siblings.RolePrefix == "" {
		c.Siblings.RolePrefix = "game"
	}
	if c.Siblings.AltRolePrefix == "" {
		c.Siblings.AltRolePrefix = "index"
	}
	if c.Identity.IDField == "" {
		c.Identity.IDField = "id"
	}
	if c.Output.CatalogPath == "" {
		c.Output.CatalogPath = "catalog.json"
	}
	if c.Build.Workers <= 0 {
		c.Build.Workers = runtime.NumCPU()
	}
	if c.Build.CacheSize <= 0 {
		c.Build.CacheSize = 4096
	}
	if c.Publish.Region == "" {
		c.Publish.Region = "us-east-1"
	}
	if c.Publish.AccessKeyEnv == "" {
		c.Publish.AccessKeyEnv = "CATALOG_S3_ACCESS_KEY"
	}
	if c.Publish.SecretKeyEnv == "" {
		c.Publish.SecretKeyEnv = "CATALOG_S3_SECRET_KEY"
	}
}

// LoadConfig reads a configuration YAML file and returns a Config with
// defaults applied. A missing file is not an error: the defaults are
// returned so a bare corpus can be indexed without any setup.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logf("config: %s not found, using defaults", path)
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// ApplyEnv loads a .env file from the working directory (if present) and
// overrides config values from CATALOG_* environment variables.
func (c *Config) ApplyEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	if v := os.Getenv(EnvRoot); v != "" {
		c.Corpus.Root = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output.CatalogPath = v
	}
	if v := os.Getenv(EnvIncludeContent); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %s=%q: %w", EnvIncludeContent, v, err)
		}
		c.SetIncludeContent(b)
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s=%q: %w", EnvWorkers, v, err)
		}
		c.Build.Workers = n
	}
	c.applyDefaults()
	return nil
}
