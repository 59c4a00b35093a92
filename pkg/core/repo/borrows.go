// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"
	"time"

	"github.com/momeni/libweb/pkg/core/model"
)

type BorrowsConnQueryer interface {
	BorrowsQueryer
}

type BorrowsTxQueryer interface {
	BorrowsQueryer

	// Create inserts r as a new borrow record.
	Create(ctx context.Context, r *model.BorrowRecord) (*model.BorrowRecord, error)

	// MarkReturned sets the return time of the id record. It fails if
	// the record is missing or was returned before.
	MarkReturned(ctx context.Context, id int64, at time.Time) error
}

type BorrowsQueryer interface {
	// FindActive returns the active record of the bookID book. If the
	// book is not lent, a nil record and nil error will be returned.
	FindActive(ctx context.Context, bookID int64) (*model.BorrowRecord, error)

	// ListByBook returns all records of the bookID book, ordered by
	// their borrow time (and id for equal times).
	ListByBook(ctx context.Context, bookID int64) ([]model.BorrowRecord, error)
}

type Borrows interface {
	Conn(Conn) BorrowsConnQueryer
	Tx(Tx) BorrowsTxQueryer
}
