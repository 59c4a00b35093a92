// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package borrowersuc contains the borrowers UseCase which supports
// the registration of borrowers with unique names and emails.
package borrowersuc

import (
	"context"
	"fmt"

	"github.com/momeni/libweb/pkg/core/cerr"
	"github.com/momeni/libweb/pkg/core/log"
	"github.com/momeni/libweb/pkg/core/model"
	"github.com/momeni/libweb/pkg/core/repo"
)

// UseCase represents a borrowers use case.
type UseCase struct {
	pool        repo.Pool
	borrowersrp repo.Borrowers
}

// New instantiates a borrowers use case.
func New(p repo.Pool, b repo.Borrowers) *UseCase {
	return &UseCase{pool: p, borrowersrp: b}
}

// Register stores b as a new borrower. A taken name or email gives a
// DuplicateName or DuplicateEmail error respectively. These checks are
// advisory and two concurrent registrations may pass them both, then
// the unique indices let one of them to be inserted and the other one
// fails with a ConstraintViolation error.
func (borrowers *UseCase) Register(
	ctx context.Context, b *model.Borrower,
) (borrower *model.Borrower, err error) {
	err = borrowers.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := borrowers.borrowersrp.Conn(c)
		switch exists, err := q.ExistsByName(ctx, b.Name); {
		case err != nil:
			return err
		case exists:
			return cerr.DuplicateName(fmt.Errorf(
				"borrower with name '%s' already exists", b.Name,
			))
		}
		switch exists, err := q.ExistsByEmail(ctx, b.Email); {
		case err != nil:
			return err
		case exists:
			return cerr.DuplicateEmail(fmt.Errorf(
				"borrower with email '%s' already exists", b.Email,
			))
		}
		borrower, err = q.Create(ctx, b)
		return err
	})
	if err != nil {
		log.Warn(ctx, "borrower registration failed", log.Err("err", err))
		return nil, cerr.Ensure(err)
	}
	log.Info(ctx, "borrower is registered", log.BorrowerID(borrower.ID))
	return borrower, nil
}
