// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
}

// SetLogger replaces the logger used for progress messages. Passing nil
// discards all output.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger.Store(l)
}

// Logger returns the current progress logger.
func Logger() *slog.Logger {
	return logger.Load()
}

// logf writes a progress line at info level.
func logf(format string, args ...any) {
	logger.Load().Info(fmt.Sprintf(format, args...))
}

// debugf writes a progress line at debug level.
func debugf(format string, args ...any) {
	l := logger.Load()
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	l.Debug(fmt.Sprintf(format, args...))
}
