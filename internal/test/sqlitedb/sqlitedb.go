// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package sqlitedb is an internal helper for the test packages.
// It opens a *gormdb.Pool on a fresh SQLite file (in a temporary
// directory which is removed by the testing package) and creates the
// library tables in it, so tests may run without a PostgreSQL server.
package sqlitedb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/momeni/libweb/pkg/adapter/db/gormdb"
	"github.com/momeni/libweb/pkg/adapter/db/gormdb/schemarp"
	"github.com/momeni/libweb/pkg/adapter/db/sqlite"
	"github.com/momeni/libweb/pkg/core/repo"
)

// BusyTimeout is long enough for the concurrency tests which queue
// dozens of writers behind each other.
const BusyTimeout = 30 * time.Second

// New returns a pool on an empty library database. The pool is closed
// when t and its subtests complete.
func New(ctx context.Context, t testing.TB) *gormdb.Pool {
	t.Helper()
	path := filepath.Join(t.TempDir(), "libweb.db")
	pool, err := sqlite.NewPool(ctx, path, BusyTimeout)
	require.NoError(t, err, "cannot open the test database")
	t.Cleanup(func() {
		require.NoError(t, pool.Close())
	})
	err = pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return schemarp.New("", nil).Tx(tx).CreateTables(ctx)
		})
	})
	require.NoError(t, err, "cannot create the library tables")
	return pool
}
