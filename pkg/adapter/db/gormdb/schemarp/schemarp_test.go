// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schemarp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momeni/libweb/internal/test/sqlitedb"
	"github.com/momeni/libweb/pkg/adapter/db/gormdb"
	"github.com/momeni/libweb/pkg/adapter/db/gormdb/schemarp"
	"github.com/momeni/libweb/pkg/adapter/hash/scram"
	"github.com/momeni/libweb/pkg/core/repo"
)

func TestSchemaOnSQLite(t *testing.T) {
	ctx := context.Background()
	pool := sqlitedb.New(ctx, t)
	schema := schemarp.New("_test", scram.SHA256())

	err := pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			sq := schema.Tx(tx)
			require.NoError(t, sq.CreateTables(ctx), "must be idempotent")
			assert.False(t, sq.SupportsRoles())
			err := sq.CreateRoleIfNotExists(ctx, repo.NormalRole)
			assert.ErrorIs(t, err, schemarp.ErrRolesUnsupported)
			err = sq.GrantPrivileges(ctx, repo.NormalRole)
			assert.ErrorIs(t, err, schemarp.ErrRolesUnsupported)
			err = sq.ChangePasswords(
				ctx, []repo.Role{repo.NormalRole}, []string{"pass"},
			)
			assert.ErrorIs(t, err, schemarp.ErrRolesUnsupported)
			return nil
		})
	})
	require.NoError(t, err)

	err = pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		var names []string
		err := c.(*gormdb.Conn).GORM(ctx).Raw(
			"SELECT name FROM sqlite_master WHERE type = ? ORDER BY name",
			"index",
		).Scan(&names).Error
		require.NoError(t, err)
		assert.Subset(t, names, []string{
			"books_isbn_idx",
			"borrowers_email_key",
			"borrowers_name_key",
			"borrows_active_book_key",
			"borrows_book_id_idx",
		})
		return nil
	})
	require.NoError(t, err)
}
