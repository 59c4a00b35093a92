// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schemauc_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momeni/libweb/pkg/adapter/db/gormdb/booksrp"
	"github.com/momeni/libweb/pkg/adapter/db/gormdb/borrowersrp"
	"github.com/momeni/libweb/pkg/adapter/db/gormdb/schemarp"
	"github.com/momeni/libweb/pkg/adapter/db/sqlite"
	"github.com/momeni/libweb/pkg/core/model"
	"github.com/momeni/libweb/pkg/core/repo"
	"github.com/momeni/libweb/pkg/core/usecase/schemauc"
)

type sqliteSettings struct {
	path  string
	roles []repo.Role
}

func (s *sqliteSettings) ConnectionPool(
	ctx context.Context, r repo.Role,
) (repo.Pool, error) {
	s.roles = append(s.roles, r)
	return sqlite.NewPool(ctx, s.path, 0)
}

func (s *sqliteSettings) NewSchemaRepo() repo.Schema {
	return schemarp.New("", nil)
}

func (s *sqliteSettings) RenewPasswords(
	context.Context,
	func(context.Context, []repo.Role, []string) error,
	...repo.Role,
) (func() error, error) {
	return nil, errors.New("sqlite has no roles")
}

func TestInitDevIsRepeatable(t *testing.T) {
	ctx := context.Background()
	s := &sqliteSettings{path: filepath.Join(t.TempDir(), "lib.db")}
	uc := schemauc.New(s, booksrp.New(), borrowersrp.New())
	require.NoError(t, uc.InitDev(ctx))
	require.NoError(t, uc.InitDev(ctx))
	assert.Equal(t, []repo.Role{
		repo.AdminRole, repo.NormalRole, repo.AdminRole, repo.NormalRole,
	}, s.roles)

	p, err := s.ConnectionPool(ctx, repo.NormalRole)
	require.NoError(t, err)
	defer p.Close()
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		books, err := booksrp.New().Conn(c).List(ctx)
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, schemauc.SampleBook.Title, books[0].Title)
		assert.Equal(t, model.Available, books[0].Availability)
		ok, err := borrowersrp.New().Conn(c).ExistsByName(
			ctx, schemauc.SampleBorrower.Name,
		)
		require.NoError(t, err)
		assert.True(t, ok)
		return nil
	})
	require.NoError(t, err)
}

func TestInitProdCreatesEmptyTables(t *testing.T) {
	ctx := context.Background()
	s := &sqliteSettings{path: filepath.Join(t.TempDir(), "lib.db")}
	uc := schemauc.New(s, booksrp.New(), borrowersrp.New())
	require.NoError(t, uc.InitProd(ctx))

	p, err := s.ConnectionPool(ctx, repo.NormalRole)
	require.NoError(t, err)
	defer p.Close()
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		books, err := booksrp.New().Conn(c).List(ctx)
		require.NoError(t, err)
		assert.Empty(t, books)
		return nil
	})
	require.NoError(t, err)
}
