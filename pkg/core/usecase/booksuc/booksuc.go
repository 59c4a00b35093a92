// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package booksuc contains the books UseCase which supports the
// registration of book copies and listing all of them.
package booksuc

import (
	"context"
	"fmt"

	"github.com/momeni/libweb/pkg/core/cerr"
	"github.com/momeni/libweb/pkg/core/log"
	"github.com/momeni/libweb/pkg/core/model"
	"github.com/momeni/libweb/pkg/core/repo"
)

// UseCase represents a books use case. It holds a database connection
// pool and the books repository instance (to be guided with the pool).
type UseCase struct {
	pool    repo.Pool
	booksrp repo.Books
}

// New instantiates a books use case.
func New(p repo.Pool, b repo.Books) *UseCase {
	return &UseCase{pool: p, booksrp: b}
}

// Register stores b as a new book copy and returns it with its ID.
//
// All copies of an ISBN must have the same title and author, so the
// existing copies are locked and compared with b before the insertion
// and a ConflictingMetadata error is returned for a mismatch. Locking
// makes concurrent registrations of further copies to be serialized.
func (books *UseCase) Register(
	ctx context.Context, b *model.Book,
) (book *model.Book, err error) {
	if err = b.Availability.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	err = books.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := books.booksrp.Tx(tx)
			copies, err := q.LockByISBN(ctx, b.ISBN)
			if err != nil {
				return err
			}
			for i := range copies {
				if !copies[i].SameMetadata(b) {
					return cerr.ConflictingMetadata(fmt.Errorf(
						"a book with ISBN '%s' already exists "+
							"with a different title or author",
						b.ISBN,
					))
				}
			}
			book, err = q.Create(ctx, b)
			return err
		})
	})
	if err != nil {
		log.Warn(ctx, "book registration failed", log.Err("err", err))
		return nil, cerr.Ensure(err)
	}
	log.Info(ctx, "book is registered", log.BookID(book.ID))
	return book, nil
}

// List returns all books, including the lent copies.
func (books *UseCase) List(ctx context.Context) (bs []model.Book, err error) {
	err = books.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		bs, err = books.booksrp.Conn(c).List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}
	return bs, nil
}
