// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package booksrp

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/momeni/libweb/pkg/adapter/db/gormdb"
	"github.com/momeni/libweb/pkg/adapter/db/gormdb/tables"
	"github.com/momeni/libweb/pkg/core/model"
	"github.com/momeni/libweb/pkg/core/repo"
)

// Create inserts b and returns the stored book with its new ID.
func Create[Q gormdb.Queryer](ctx context.Context, q Q, b *model.Book) (*model.Book, error) {
	gb := tables.FromBook(b)
	err := q.GORM(ctx).Create(gb).Error
	if err != nil {
		return nil, gormdb.Translate(q.Dialect(), "insert book", err)
	}
	return gb.Model(), nil
}

// Get finds the id book, wrapping repo.ErrNotFound if it is missing.
func Get[Q gormdb.Queryer](ctx context.Context, q Q, id int64) (*model.Book, error) {
	var gb tables.Book
	err := q.GORM(ctx).Where("id = ?", id).Take(&gb).Error
	if err != nil {
		return nil, gormdb.Translate(q.Dialect(), "select book", err)
	}
	return gb.Model(), nil
}

// List returns all books ordered by their IDs.
func List[Q gormdb.Queryer](ctx context.Context, q Q) ([]model.Book, error) {
	var gbs []tables.Book
	err := q.GORM(ctx).Order("id").Find(&gbs).Error
	if err != nil {
		return nil, gormdb.Translate(q.Dialect(), "select books", err)
	}
	return models(gbs), nil
}

// ListByISBN returns all copies of the isbn book ordered by their IDs.
// If lock is true, the rows are locked for update.
func ListByISBN[Q gormdb.Queryer](
	ctx context.Context, q Q, isbn string, lock bool,
) ([]model.Book, error) {
	gdb := q.GORM(ctx)
	if lock {
		gdb = gdb.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var gbs []tables.Book
	err := gdb.Where("isbn = ?", isbn).Order("id").Find(&gbs).Error
	if err != nil {
		return nil, gormdb.Translate(
			q.Dialect(), fmt.Sprintf("select books by isbn %q", isbn), err,
		)
	}
	return models(gbs), nil
}

// LockForUpdate selects the id book with a FOR UPDATE clause, so its
// row remains locked until the q transaction ends. The SQLite dialect
// drops the locking clause as its transactions hold the database
// write lock already.
func LockForUpdate(ctx context.Context, q *gormdb.Tx, id int64) (*model.Book, error) {
	var gb tables.Book
	err := q.GORM(ctx).Clauses(
		clause.Locking{Strength: "UPDATE"},
	).Where("id = ?", id).Take(&gb).Error
	if err != nil {
		return nil, gormdb.Translate(q.Dialect(), "lock book", err)
	}
	return gb.Model(), nil
}

// SetAvailability updates the availability flag of the id book.
func SetAvailability(
	ctx context.Context, q *gormdb.Tx, id int64, a model.Availability,
) error {
	if err := a.Validate(); err != nil {
		return err
	}
	tt := q.GORM(ctx).Model(&tables.Book{}).Where(
		"id = ?", id,
	).Update("availability", int(a))
	if err := tt.Error; err != nil {
		return gormdb.Translate(q.Dialect(), "update availability", err)
	}
	if tt.RowsAffected != 1 {
		return fmt.Errorf(
			"update availability of book %d: %w", id, repo.ErrNotFound,
		)
	}
	return nil
}

func models(gbs []tables.Book) []model.Book {
	bs := make([]model.Book, 0, len(gbs))
	for i := range gbs {
		bs = append(bs, *gbs[i].Model())
	}
	return bs
}
