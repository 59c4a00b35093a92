// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package log is a thin layer over the log/slog package for the core
// and adapter layers. Its Debug, Info, Warn, and Error functions take
// a context (so a ContextHandler may add the request identifier) and
// statically typed slog.Attr values which avoid the allocations of the
// interleaved key/value "any" arguments. Attribute constructors for
// the frequently logged library values are provided too.
package log

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// Debug logs msg and attrs with the given context at the debug level.
func Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelDebug, msg, attrs)
}

// Info logs msg and attrs with the given context at the info level.
func Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelInfo, msg, attrs)
}

// Warn logs msg and attrs with the given context at the warning level.
func Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelWarn, msg, attrs)
}

// Error logs msg and attrs with the given context at the error level.
func Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelError, msg, attrs)
}

// emit must be called directly by the above exported functions, so
// the record source points to their caller.
func emit(
	ctx context.Context, lvl slog.Level, msg string, attrs []slog.Attr,
) {
	h := slog.Default().Handler()
	if !h.Enabled(ctx, lvl) {
		return
	}
	var pc [1]uintptr
	runtime.Callers(3, pc[:]) // runtime.Callers, emit, and Debug/...
	r := slog.NewRecord(time.Now(), lvl, msg, pc[0])
	r.AddAttrs(attrs...)
	_ = h.Handle(ctx, r)
}
