// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package borrowersuc_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momeni/libweb/internal/test/sqlitedb"
	"github.com/momeni/libweb/pkg/adapter/db/gormdb/borrowersrp"
	"github.com/momeni/libweb/pkg/core/cerr"
	"github.com/momeni/libweb/pkg/core/model"
	"github.com/momeni/libweb/pkg/core/repo"
	"github.com/momeni/libweb/pkg/core/usecase/borrowersuc"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	uc := borrowersuc.New(sqlitedb.New(ctx, t), borrowersrp.New())

	john, err := uc.Register(ctx, &model.Borrower{
		Name: "John Doe", Email: "john@example.com",
	})
	require.NoError(t, err)
	assert.NotZero(t, john.ID)
	assert.Equal(t, "John Doe", john.Name)

	_, err = uc.Register(ctx, &model.Borrower{
		Name: "John Doe", Email: "john@example.com",
	})
	assert.True(t, cerr.Is(err, cerr.KindDuplicateName), err)
	assert.EqualError(t, err,
		"[400] duplicate-name: borrower with name 'John Doe' already exists",
	)

	_, err = uc.Register(ctx, &model.Borrower{
		Name: "Jane Doe", Email: "john@example.com",
	})
	assert.True(t, cerr.Is(err, cerr.KindDuplicateEmail), err)
	assert.ErrorContains(t, err,
		"borrower with email 'john@example.com' already exists",
	)

	jane, err := uc.Register(ctx, &model.Borrower{
		Name: "Jane Doe", Email: "jane@example.com",
	})
	require.NoError(t, err)
	assert.NotEqual(t, john.ID, jane.ID)
}

// staleBorrowers reports every name and email as free, like a check
// which ran before a concurrent registration was committed.
type staleBorrowers struct {
	repo.Borrowers
}

func (sb staleBorrowers) Conn(c repo.Conn) repo.BorrowersConnQueryer {
	return staleQueryer{sb.Borrowers.Conn(c)}
}

type staleQueryer struct {
	repo.BorrowersConnQueryer
}

func (staleQueryer) ExistsByName(context.Context, string) (bool, error) {
	return false, nil
}

func (staleQueryer) ExistsByEmail(context.Context, string) (bool, error) {
	return false, nil
}

func TestRegisterLosingTheInsertRace(t *testing.T) {
	ctx := context.Background()
	pool := sqlitedb.New(ctx, t)
	uc := borrowersuc.New(pool, borrowersrp.New())
	_, err := uc.Register(ctx, &model.Borrower{
		Name: "John Doe", Email: "john@example.com",
	})
	require.NoError(t, err)

	stale := borrowersuc.New(pool, staleBorrowers{borrowersrp.New()})
	b, err := stale.Register(ctx, &model.Borrower{
		Name: "John Doe", Email: "other@example.com",
	})
	assert.Nil(t, b)
	assert.True(t, cerr.Is(err, cerr.KindConstraintViolation), err)
	assert.ErrorContains(t, err, "borrowers.name")

	_, err = stale.Register(ctx, &model.Borrower{
		Name: "Jane Doe", Email: "john@example.com",
	})
	assert.True(t, cerr.Is(err, cerr.KindConstraintViolation), err)
	assert.ErrorContains(t, err, "borrowers.email")

	jane, err := stale.Register(ctx, &model.Borrower{
		Name: "Jane Doe", Email: "jane@example.com",
	})
	require.NoError(t, err)
	assert.NotZero(t, jane.ID)
}
