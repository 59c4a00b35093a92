// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gormdb_test

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momeni/libweb/pkg/adapter/db/sqlite"
	"github.com/momeni/libweb/pkg/core/log"
	"github.com/momeni/libweb/pkg/core/repo"
)

func captureLogs(t *testing.T, level slog.Level) *bytes.Buffer {
	buf := &bytes.Buffer{}
	h := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: level})
	prev := slog.Default()
	slog.SetDefault(slog.New(log.NewContextHandler(h)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return buf
}

func TestStatementsAreLoggedWithSlog(t *testing.T) {
	buf := captureLogs(t, slog.LevelDebug)
	ctx := context.Background()
	p, err := sqlite.NewPool(ctx, filepath.Join(t.TempDir(), "t.db"), 0)
	require.NoError(t, err)
	defer p.Close()

	ctx = log.WithRequestID(ctx, "req-7")
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		_, err := c.Exec(ctx, "SELECT ?", "s3cret")
		require.NoError(t, err)
		_, err = c.Exec(ctx, "SELECT v FROM missing_table")
		assert.Error(t, err)
		return nil
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `level=DEBUG msg=statement sql="SELECT ?"`)
	assert.Contains(t, out, "level=WARN msg=\"statement failed\"")
	assert.Contains(t, out, "missing_table")
	assert.Contains(t, out, "request-id=req-7")
	assert.NotContains(t, out, "s3cret")
}

func TestStatementLoggingFollowsSlogLevel(t *testing.T) {
	buf := captureLogs(t, slog.LevelInfo)
	ctx := context.Background()
	p, err := sqlite.NewPool(ctx, filepath.Join(t.TempDir(), "t.db"), 0)
	require.NoError(t, err)
	defer p.Close()

	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		_, err := c.Exec(ctx, "SELECT 1")
		return err
	})
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}
