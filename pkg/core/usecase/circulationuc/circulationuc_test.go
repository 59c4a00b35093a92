// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package circulationuc_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momeni/libweb/internal/test/sqlitedb"
	"github.com/momeni/libweb/pkg/adapter/db/gormdb"
	"github.com/momeni/libweb/pkg/adapter/db/gormdb/booksrp"
	"github.com/momeni/libweb/pkg/adapter/db/gormdb/borrowersrp"
	"github.com/momeni/libweb/pkg/adapter/db/gormdb/borrowsrp"
	"github.com/momeni/libweb/pkg/core/cerr"
	"github.com/momeni/libweb/pkg/core/model"
	"github.com/momeni/libweb/pkg/core/repo"
	"github.com/momeni/libweb/pkg/core/usecase/circulationuc"
)

type fixture struct {
	pool     *gormdb.Pool
	uc       *circulationuc.UseCase
	book     *model.Book
	borrower *model.Borrower
}

func newFixture(
	t *testing.T, a model.Availability, opts ...circulationuc.Option,
) *fixture {
	ctx := context.Background()
	f := &fixture{pool: sqlitedb.New(ctx, t)}
	err := f.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		var err error
		f.book, err = booksrp.New().Conn(c).Create(ctx, &model.Book{
			ISBN:         "1234567890",
			Title:        "Spring Boot Guide",
			Author:       "Jane Smith",
			Availability: a,
		})
		if err != nil {
			return err
		}
		f.borrower, err = borrowersrp.New().Conn(c).Create(
			ctx, &model.Borrower{Name: "John Doe", Email: "john@example.com"},
		)
		return err
	})
	require.NoError(t, err)
	f.uc, err = circulationuc.New(
		f.pool, booksrp.New(), borrowersrp.New(), borrowsrp.New(), opts...,
	)
	require.NoError(t, err)
	return f
}

func (f *fixture) availability(t *testing.T) model.Availability {
	var b *model.Book
	err := f.pool.Conn(context.Background(), func(ctx context.Context, c repo.Conn) (err error) {
		b, err = booksrp.New().Conn(c).Get(ctx, f.book.ID)
		return err
	})
	require.NoError(t, err)
	return b.Availability
}

func TestBorrowTwice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, model.Available)
	require.NoError(t, f.uc.Borrow(ctx, f.book.ID, f.borrower.ID))
	assert.Equal(t, model.Borrowed, f.availability(t))

	err := f.uc.Borrow(ctx, f.book.ID, f.borrower.ID)
	assert.True(t, cerr.Is(err, cerr.KindAlreadyBorrowed), err)
	assert.ErrorIs(t, err, model.ErrAlreadyBorrowed)

	hist, err := f.uc.History(ctx, f.book.ID)
	require.NoError(t, err)
	assert.Len(t, hist, 1, "failed borrow must not add records")
}

func TestReturnWithoutBorrow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, model.Available)
	err := f.uc.Return(ctx, f.book.ID)
	assert.True(t, cerr.Is(err, cerr.KindNotBorrowed), err)
	assert.Equal(t, model.Available, f.availability(t))
}

func TestMissingEntities(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, model.Available)

	err := f.uc.Borrow(ctx, f.book.ID+1, f.borrower.ID+1)
	assert.True(t, cerr.Is(err, cerr.KindNotFound))
	assert.ErrorIs(t, err, circulationuc.ErrBookNotFound,
		"book must be checked before the borrower")

	err = f.uc.Borrow(ctx, f.book.ID, f.borrower.ID+1)
	assert.True(t, cerr.Is(err, cerr.KindNotFound))
	assert.ErrorIs(t, err, circulationuc.ErrBorrowerNotFound)
	assert.Equal(t, model.Available, f.availability(t))

	err = f.uc.Return(ctx, f.book.ID+1)
	assert.ErrorIs(t, err, circulationuc.ErrBookNotFound)

	_, err = f.uc.History(ctx, f.book.ID+1)
	assert.ErrorIs(t, err, circulationuc.ErrBookNotFound)
}

func TestBorrowReturnCycle(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	f := newFixture(t, model.Available, circulationuc.WithClock(
		func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		},
	))
	for i := 0; i < 3; i++ {
		require.NoError(t, f.uc.Borrow(ctx, f.book.ID, f.borrower.ID))
		require.NoError(t, f.uc.Return(ctx, f.book.ID))
	}
	require.NoError(t, f.uc.Borrow(ctx, f.book.ID, f.borrower.ID))

	hist, err := f.uc.History(ctx, f.book.ID)
	require.NoError(t, err)
	require.Len(t, hist, 4)
	active := 0
	for i, r := range hist {
		assert.Equal(t, f.book.ID, r.BookID)
		assert.Equal(t, f.borrower.ID, r.BorrowerID)
		if r.Active() {
			active++
			continue
		}
		assert.True(t, r.ReturnTime.After(r.BorrowTime))
		if i+1 < len(hist) {
			assert.False(t, hist[i+1].BorrowTime.Before(*r.ReturnTime))
		}
	}
	assert.Equal(t, 1, active)
	assert.True(t, hist[3].Active())
	assert.Equal(t, model.Borrowed, f.availability(t))
}

func TestConcurrentBorrowsAreLinearized(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, model.Available)
	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = f.uc.Borrow(ctx, f.book.ID, f.borrower.ID)
		}(i)
	}
	wg.Wait()
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, cerr.Is(err, cerr.KindAlreadyBorrowed), err)
	}
	assert.Equal(t, 1, succeeded)
	hist, err := f.uc.History(ctx, f.book.ID)
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}

// TestFlaggedWithoutRecord covers a book registered as borrowed.
func TestFlaggedWithoutRecord(t *testing.T) {
	ctx := context.Background()
	strict := newFixture(t, model.Borrowed)
	err := strict.uc.Return(ctx, strict.book.ID)
	assert.True(t, cerr.Is(err, cerr.KindInconsistentState), err)
	err = strict.uc.Borrow(ctx, strict.book.ID, strict.borrower.ID)
	assert.True(t, cerr.Is(err, cerr.KindAlreadyBorrowed), err)

	lenient := newFixture(t, model.Borrowed, circulationuc.WithConsistencyPolicy(
		model.ConsistencyPolicyLenient,
	))
	err = lenient.uc.Return(ctx, lenient.book.ID)
	assert.True(t, cerr.Is(err, cerr.KindNotBorrowed), err)
	assert.Equal(t, model.Borrowed, lenient.availability(t))
}

func recordedButAvailable(
	t *testing.T, opts ...circulationuc.Option,
) *fixture {
	ctx := context.Background()
	f := newFixture(t, model.Available, opts...)
	require.NoError(t, f.uc.Borrow(ctx, f.book.ID, f.borrower.ID))
	err := f.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return booksrp.New().Tx(tx).SetAvailability(
				ctx, f.book.ID, model.Available,
			)
		})
	})
	require.NoError(t, err)
	return f
}

func TestRecordedButAvailable(t *testing.T) {
	ctx := context.Background()
	strict := recordedButAvailable(t)
	err := strict.uc.Borrow(ctx, strict.book.ID, strict.borrower.ID)
	assert.True(t, cerr.Is(err, cerr.KindInconsistentState), err)
	err = strict.uc.Return(ctx, strict.book.ID)
	assert.True(t, cerr.Is(err, cerr.KindInconsistentState), err)

	lenient := recordedButAvailable(t, circulationuc.WithConsistencyPolicy(
		model.ConsistencyPolicyLenient,
	))
	err = lenient.uc.Borrow(ctx, lenient.book.ID, lenient.borrower.ID)
	assert.True(t, cerr.Is(err, cerr.KindConstraintViolation), err)
	assert.Equal(t, model.Available, lenient.availability(t),
		"failed borrow must be rolled back")
	err = lenient.uc.Return(ctx, lenient.book.ID)
	assert.True(t, cerr.Is(err, cerr.KindNotBorrowed), err)
}

func TestOptions(t *testing.T) {
	_, err := circulationuc.New(nil, nil, nil, nil,
		circulationuc.WithConsistencyPolicy(model.ConsistencyPolicyInvalid),
	)
	assert.Error(t, err)
	_, err = circulationuc.New(nil, nil, nil, nil,
		circulationuc.WithConsistencyPolicy(model.ConsistencyPolicyStrict),
		circulationuc.WithConsistencyPolicy(model.ConsistencyPolicyLenient),
	)
	assert.Error(t, err)
	_, err = circulationuc.New(nil, nil, nil, nil,
		circulationuc.WithClock(nil),
	)
	assert.Error(t, err)
}
