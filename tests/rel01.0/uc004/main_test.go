//go:build usecase

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package uc004_test

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/mesh-intelligence/content-catalog/pkg/catalog"
	"github.com/mesh-intelligence/content-catalog/tests/rel01.0/internal/testutil"
)

var snapshotDir string

func TestMain(m *testing.M) {
	catalog.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	snapshot, cleanup, err := testutil.PrepareSnapshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "usecase: preparing snapshot: %v\n", err)
		os.Exit(1)
	}
	snapshotDir = snapshot
	exitCode := m.Run()
	cleanup()
	os.Exit(exitCode)
}
