// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package borrowsrp provides a reification of the repo.Borrows
// interface, storing the borrow records of books.
package borrowsrp

import (
	"context"
	"time"

	"github.com/momeni/libweb/pkg/adapter/db/gormdb"
	"github.com/momeni/libweb/pkg/core/model"
	"github.com/momeni/libweb/pkg/core/repo"
)

// Repo represents the borrow records repository.
type Repo struct {
}

// New instantiates a borrow records Repo struct.
func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*gormdb.Conn
}

// Conn unwraps c as a *gormdb.Conn (panicking for other types) and
// wraps it as a repo.BorrowsConnQueryer.
func (borrows *Repo) Conn(c repo.Conn) repo.BorrowsConnQueryer {
	return connQueryer{Conn: c.(*gormdb.Conn)}
}

func (cq connQueryer) FindActive(ctx context.Context, bookID int64) (*model.BorrowRecord, error) {
	return FindActive(ctx, cq.Conn, bookID)
}

func (cq connQueryer) ListByBook(ctx context.Context, bookID int64) ([]model.BorrowRecord, error) {
	return ListByBook(ctx, cq.Conn, bookID)
}

type txQueryer struct {
	*gormdb.Tx
}

// Tx unwraps tx as a *gormdb.Tx (panicking for other types) and
// wraps it as a repo.BorrowsTxQueryer.
func (borrows *Repo) Tx(tx repo.Tx) repo.BorrowsTxQueryer {
	return txQueryer{Tx: tx.(*gormdb.Tx)}
}

func (tq txQueryer) FindActive(ctx context.Context, bookID int64) (*model.BorrowRecord, error) {
	return FindActive(ctx, tq.Tx, bookID)
}

func (tq txQueryer) ListByBook(ctx context.Context, bookID int64) ([]model.BorrowRecord, error) {
	return ListByBook(ctx, tq.Tx, bookID)
}

func (tq txQueryer) Create(ctx context.Context, r *model.BorrowRecord) (*model.BorrowRecord, error) {
	return Create(ctx, tq.Tx, r)
}

func (tq txQueryer) MarkReturned(ctx context.Context, id int64, at time.Time) error {
	return MarkReturned(ctx, tq.Tx, id, at)
}
