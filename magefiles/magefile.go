//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"

	"github.com/mesh-intelligence/content-catalog/pkg/catalog"
)

const (
	binaryDir   = "bin"
	binaryName  = "content-catalog"
	mainPackage = "./cmd/content-catalog"
	binGo       = "go"
	binLint     = "golangci-lint"
)

// Default target.
var Default = Build

func logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

func run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Build compiles the content-catalog binary into bin/.
func Build() error {
	outPath := filepath.Join(binaryDir, binaryName)
	logf("build: go build -o %s %s", outPath, mainPackage)
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := run(binGo, "build", "-o", outPath, mainPackage); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	logf("build: done")
	return nil
}

// Test runs unit tests on all packages.
func Test() error {
	logf("test: running go test ./...")
	if err := run(binGo, "test", "./..."); err != nil {
		return fmt.Errorf("go test: %w", err)
	}
	return nil
}

// TestProperty runs the property-based tests.
func TestProperty() error {
	logf("test:property: running go test -tags property ./pkg/...")
	if err := run(binGo, "test", "-tags", "property", "./pkg/..."); err != nil {
		return fmt.Errorf("go test property: %w", err)
	}
	return nil
}

// TestUsecase runs the release use-case tests in tests/rel01.0/.
func TestUsecase() error {
	if _, err := os.Stat("tests/rel01.0"); os.IsNotExist(err) {
		fmt.Println("No use-case test directory found (tests/rel01.0/)")
		return nil
	}
	logf("test:usecase: running go test -tags usecase -count=1 ./tests/rel01.0/...")
	if err := run(binGo, "test", "-tags", "usecase", "-count=1", "./tests/rel01.0/..."); err != nil {
		return fmt.Errorf("go test usecase: %w", err)
	}
	return nil
}

// TestAll runs unit, property and use-case tests.
func TestAll() {
	mg.SerialDeps(Test, TestProperty, TestUsecase)
}

// Lint runs golangci-lint on the project.
func Lint() error {
	logf("lint: running golangci-lint")
	if err := run(binLint, "run", "./..."); err != nil {
		return fmt.Errorf("golangci-lint: %w", err)
	}
	return nil
}

// Catalog builds catalog.json from the corpus configured in catalog.yaml
// (or CATALOG_ROOT) without going through the binary.
func Catalog(ctx context.Context) error {
	cfg, err := catalog.LoadConfig(catalog.DefaultConfigFile)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	res, err := catalog.Build(ctx, cfg)
	if err != nil {
		return err
	}
	if err := catalog.WriteCatalogFile(cfg.Output.CatalogPath, res.Catalog); err != nil {
		return err
	}
	if cfg.Output.ReportPath != "" {
		if err := catalog.WriteReportFile(cfg.Output.ReportPath, cfg.Output.ReportFormat, res.Report); err != nil {
			return err
		}
	}
	catalog.PrintReport(os.Stdout, res.Report)
	return nil
}

// Clean removes build artifacts and the generated catalog.
func Clean() error {
	logf("clean: removing %s", binaryDir)
	if err := os.RemoveAll(binaryDir); err != nil {
		return fmt.Errorf("removing %s: %w", binaryDir, err)
	}
	cfg, err := catalog.LoadConfig(catalog.DefaultConfigFile)
	if err != nil {
		return err
	}
	if err := os.Remove(cfg.Output.CatalogPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", cfg.Output.CatalogPath, err)
	}
	logf("clean: done")
	return nil
}
