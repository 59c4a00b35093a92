// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/momeni/libweb/pkg/core/log"
)

// Logging contains the structured logging settings.
type Logging struct {
	// Level is one of debug, info (the default value), warn, or error.
	Level string `yaml:",omitempty"`
	// Format is either text (the default value) or json.
	Format string `yaml:",omitempty"`

	level slog.Level `yaml:"-"`
}

// ValidateAndNormalize parses the logging level and checks the format.
func (l *Logging) ValidateAndNormalize() error {
	if l.Level == "" {
		l.Level = "info"
	}
	if err := l.level.UnmarshalText([]byte(l.Level)); err != nil {
		return fmt.Errorf("level: %w", err)
	}
	switch l.Format {
	case "":
		l.Format = "text"
	case "text", "json":
	default:
		return fmt.Errorf("unsupported format: %q", l.Format)
	}
	return nil
}

// NewHandler creates a slog handler which writes to w with the
// configured format and level. It is decorated by log.ContextHandler,
// so the request identifiers are logged too.
func (l Logging) NewHandler(w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: l.level}
	var h slog.Handler
	if l.Format == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return log.NewContextHandler(h)
}

// Setup replaces the default slog logger with a logger which writes
// to the standard error stream using the l settings.
func (l Logging) Setup() {
	slog.SetDefault(slog.New(l.NewHandler(os.Stderr)))
}
