// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package borrowersrp provides a reification of the repo.Borrowers
// interface.
package borrowersrp

import (
	"context"

	"github.com/momeni/libweb/pkg/adapter/db/gormdb"
	"github.com/momeni/libweb/pkg/core/model"
	"github.com/momeni/libweb/pkg/core/repo"
)

// Repo represents the borrowers repository.
type Repo struct {
}

// New instantiates a borrowers Repo struct.
func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*gormdb.Conn
}

// Conn unwraps c as a *gormdb.Conn (panicking for other types) and
// wraps it as a repo.BorrowersConnQueryer.
func (borrowers *Repo) Conn(c repo.Conn) repo.BorrowersConnQueryer {
	return connQueryer{Conn: c.(*gormdb.Conn)}
}

func (cq connQueryer) Create(ctx context.Context, b *model.Borrower) (*model.Borrower, error) {
	return Create(ctx, cq.Conn, b)
}

func (cq connQueryer) Get(ctx context.Context, id int64) (*model.Borrower, error) {
	return Get(ctx, cq.Conn, id)
}

func (cq connQueryer) ExistsByName(ctx context.Context, name string) (bool, error) {
	return exists(ctx, cq.Conn, "name", name)
}

func (cq connQueryer) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return exists(ctx, cq.Conn, "email", email)
}

type txQueryer struct {
	*gormdb.Tx
}

// Tx unwraps tx as a *gormdb.Tx (panicking for other types) and
// wraps it as a repo.BorrowersTxQueryer.
func (borrowers *Repo) Tx(tx repo.Tx) repo.BorrowersTxQueryer {
	return txQueryer{Tx: tx.(*gormdb.Tx)}
}

func (tq txQueryer) Create(ctx context.Context, b *model.Borrower) (*model.Borrower, error) {
	return Create(ctx, tq.Tx, b)
}

func (tq txQueryer) Get(ctx context.Context, id int64) (*model.Borrower, error) {
	return Get(ctx, tq.Tx, id)
}

func (tq txQueryer) ExistsByName(ctx context.Context, name string) (bool, error) {
	return exists(ctx, tq.Tx, "name", name)
}

func (tq txQueryer) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return exists(ctx, tq.Tx, "email", email)
}
