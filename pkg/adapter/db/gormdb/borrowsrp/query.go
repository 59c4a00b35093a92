// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package borrowsrp

import (
	"context"
	"fmt"
	"time"

	"github.com/momeni/libweb/pkg/adapter/db/gormdb"
	"github.com/momeni/libweb/pkg/adapter/db/gormdb/tables"
	"github.com/momeni/libweb/pkg/core/model"
	"github.com/momeni/libweb/pkg/core/repo"
)

// FindActive returns the record of bookID with a NULL return time.
// A nil record and nil error are returned if bookID is not lent.
func FindActive[Q gormdb.Queryer](
	ctx context.Context, q Q, bookID int64,
) (*model.BorrowRecord, error) {
	var gbs []tables.Borrow
	err := q.GORM(ctx).Where(
		"book_id = ? AND return_time IS NULL", bookID,
	).Limit(1).Find(&gbs).Error
	if err != nil {
		return nil, gormdb.Translate(q.Dialect(), "select active borrow", err)
	}
	if len(gbs) == 0 {
		return nil, nil
	}
	return gbs[0].Model(), nil
}

// ListByBook returns all records of bookID, oldest first.
func ListByBook[Q gormdb.Queryer](
	ctx context.Context, q Q, bookID int64,
) ([]model.BorrowRecord, error) {
	var gbs []tables.Borrow
	err := q.GORM(ctx).Where(
		"book_id = ?", bookID,
	).Order("borrow_time").Order("id").Find(&gbs).Error
	if err != nil {
		return nil, gormdb.Translate(q.Dialect(), "select borrows", err)
	}
	rs := make([]model.BorrowRecord, 0, len(gbs))
	for i := range gbs {
		rs = append(rs, *gbs[i].Model())
	}
	return rs, nil
}

// Create inserts r. A second active record for the same book violates
// the borrows_active_book_key index and gives a ConstraintViolation.
func Create(
	ctx context.Context, q *gormdb.Tx, r *model.BorrowRecord,
) (*model.BorrowRecord, error) {
	gb := tables.FromBorrowRecord(r)
	err := q.GORM(ctx).Omit("Book", "Borrower").Create(gb).Error
	if err != nil {
		return nil, gormdb.Translate(q.Dialect(), "insert borrow", err)
	}
	return gb.Model(), nil
}

// MarkReturned sets the return time of the id active record.
func MarkReturned(
	ctx context.Context, q *gormdb.Tx, id int64, at time.Time,
) error {
	tt := q.GORM(ctx).Model(&tables.Borrow{}).Where(
		"id = ? AND return_time IS NULL", id,
	).Update("return_time", at)
	if err := tt.Error; err != nil {
		return gormdb.Translate(q.Dialect(), "update return time", err)
	}
	if tt.RowsAffected != 1 {
		return fmt.Errorf(
			"no active borrow record %d: %w", id, repo.ErrNotFound,
		)
	}
	return nil
}
