// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/libweb/pkg/core/model"
)

type BooksConnQueryer interface {
	BooksQueryer
}

type BooksTxQueryer interface {
	BooksQueryer

	// LockForUpdate fetches the id book and holds an exclusive lock on
	// its row until the enclosing transaction ends. Concurrent lockers
	// of the same row are blocked meanwhile. A missing book is reported
	// by wrapping ErrNotFound.
	LockForUpdate(ctx context.Context, id int64) (*model.Book, error)

	// LockByISBN is similar to ListByISBN, but also locks all returned
	// rows until the enclosing transaction ends.
	LockByISBN(ctx context.Context, isbn string) ([]model.Book, error)

	// SetAvailability stores the availability flag of the id book.
	SetAvailability(ctx context.Context, id int64, a model.Availability) error
}

type BooksQueryer interface {
	// Create inserts b as a new row (ignoring its ID field) and returns
	// the stored book with its assigned ID.
	Create(ctx context.Context, b *model.Book) (*model.Book, error)
	Get(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	ListByISBN(ctx context.Context, isbn string) ([]model.Book, error)
}

type Books interface {
	Conn(Conn) BooksConnQueryer
	Tx(Tx) BooksTxQueryer
}
