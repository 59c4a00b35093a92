// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package booksuc_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momeni/libweb/internal/test/sqlitedb"
	"github.com/momeni/libweb/pkg/adapter/db/gormdb/booksrp"
	"github.com/momeni/libweb/pkg/core/cerr"
	"github.com/momeni/libweb/pkg/core/model"
	"github.com/momeni/libweb/pkg/core/usecase/booksuc"
)

func TestRegisterCopies(t *testing.T) {
	ctx := context.Background()
	uc := booksuc.New(sqlitedb.New(ctx, t), booksrp.New())

	guide := model.Book{
		ISBN: "1234567890", Title: "Spring Boot Guide", Author: "Jane Smith",
	}
	first, err := uc.Register(ctx, &guide)
	require.NoError(t, err)
	second, err := uc.Register(ctx, &guide)
	require.NoError(t, err, "a further copy with same metadata is valid")
	assert.NotEqual(t, first.ID, second.ID)

	other := guide
	other.Author = "John Smith"
	_, err = uc.Register(ctx, &other)
	assert.True(t, cerr.Is(err, cerr.KindConflictingMetadata), err)
	assert.ErrorContains(t, err,
		"a book with ISBN '1234567890' already exists "+
			"with a different title or author",
	)

	other = guide
	other.Title = "Spring Boot Guide 2"
	_, err = uc.Register(ctx, &other)
	assert.True(t, cerr.Is(err, cerr.KindConflictingMetadata), err)

	other.ISBN = "0987654321"
	third, err := uc.Register(ctx, &other)
	require.NoError(t, err)

	all, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Book{*first, *second, *third}, all)
}

func TestRegisterRejectsBadAvailability(t *testing.T) {
	ctx := context.Background()
	uc := booksuc.New(sqlitedb.New(ctx, t), booksrp.New())
	_, err := uc.Register(ctx, &model.Book{
		ISBN: "1", Title: "T", Author: "A", Availability: 2,
	})
	assert.True(t, cerr.Is(err, cerr.KindBadRequest), err)
}

func TestListHasNoSideEffects(t *testing.T) {
	ctx := context.Background()
	uc := booksuc.New(sqlitedb.New(ctx, t), booksrp.New())
	empty, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = uc.Register(ctx, &model.Book{
		ISBN: "1", Title: "T", Author: "A", Availability: model.Borrowed,
	})
	require.NoError(t, err)
	l1, err := uc.List(ctx)
	require.NoError(t, err)
	l2, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, l1, l2)
	require.Len(t, l1, 1)
	assert.Equal(t, model.Borrowed, l1[0].Availability)
}
