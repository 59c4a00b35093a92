// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/libweb/pkg/core/model"
)

type BorrowersConnQueryer interface {
	BorrowersQueryer
}

type BorrowersTxQueryer interface {
	BorrowersQueryer
}

type BorrowersQueryer interface {
	// Create inserts b as a new borrower. A collision with the unique
	// name or email constraints is reported as a constraint violation
	// core error.
	Create(ctx context.Context, b *model.Borrower) (*model.Borrower, error)
	Get(ctx context.Context, id int64) (*model.Borrower, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type Borrowers interface {
	Conn(Conn) BorrowersConnQueryer
	Tx(Tx) BorrowersTxQueryer
}
