// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package booksrp provides a reification of the repo.Books interface.
package booksrp

import (
	"context"

	"github.com/momeni/libweb/pkg/adapter/db/gormdb"
	"github.com/momeni/libweb/pkg/core/model"
	"github.com/momeni/libweb/pkg/core/repo"
)

// Repo represents the books repository.
type Repo struct {
}

// New instantiates a books Repo struct.
func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*gormdb.Conn
}

// Conn unwraps c, expecting to find a *gormdb.Conn instance (and
// panics otherwise), and wraps it as a repo.BooksConnQueryer.
func (books *Repo) Conn(c repo.Conn) repo.BooksConnQueryer {
	cc := c.(*gormdb.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	return Create(ctx, cq.Conn, b)
}

func (cq connQueryer) Get(ctx context.Context, id int64) (*model.Book, error) {
	return Get(ctx, cq.Conn, id)
}

func (cq connQueryer) List(ctx context.Context) ([]model.Book, error) {
	return List(ctx, cq.Conn)
}

func (cq connQueryer) ListByISBN(ctx context.Context, isbn string) ([]model.Book, error) {
	return ListByISBN(ctx, cq.Conn, isbn, false)
}

type txQueryer struct {
	*gormdb.Tx
}

// Tx unwraps tx, expecting to find a *gormdb.Tx instance (and panics
// otherwise), and wraps it as a repo.BooksTxQueryer. Its locking
// methods hold the row locks until tx is committed or rolled back.
func (books *Repo) Tx(tx repo.Tx) repo.BooksTxQueryer {
	tt := tx.(*gormdb.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	return Create(ctx, tq.Tx, b)
}

func (tq txQueryer) Get(ctx context.Context, id int64) (*model.Book, error) {
	return Get(ctx, tq.Tx, id)
}

func (tq txQueryer) List(ctx context.Context) ([]model.Book, error) {
	return List(ctx, tq.Tx)
}

func (tq txQueryer) ListByISBN(ctx context.Context, isbn string) ([]model.Book, error) {
	return ListByISBN(ctx, tq.Tx, isbn, false)
}

func (tq txQueryer) LockForUpdate(ctx context.Context, id int64) (*model.Book, error) {
	return LockForUpdate(ctx, tq.Tx, id)
}

func (tq txQueryer) LockByISBN(ctx context.Context, isbn string) ([]model.Book, error) {
	return ListByISBN(ctx, tq.Tx, isbn, true)
}

func (tq txQueryer) SetAvailability(ctx context.Context, id int64, a model.Availability) error {
	return SetAvailability(ctx, tq.Tx, id, a)
}
