// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package borrowersrp

import (
	"context"

	"github.com/momeni/libweb/pkg/adapter/db/gormdb"
	"github.com/momeni/libweb/pkg/adapter/db/gormdb/tables"
	"github.com/momeni/libweb/pkg/core/model"
)

// Create inserts b. Colliding with the borrowers_name_key or the
// borrowers_email_key unique indices gives a cerr.ConstraintViolation.
func Create[Q gormdb.Queryer](
	ctx context.Context, q Q, b *model.Borrower,
) (*model.Borrower, error) {
	gb := tables.FromBorrower(b)
	err := q.GORM(ctx).Create(gb).Error
	if err != nil {
		return nil, gormdb.Translate(q.Dialect(), "insert borrower", err)
	}
	return gb.Model(), nil
}

// Get finds the id borrower, wrapping repo.ErrNotFound if missing.
func Get[Q gormdb.Queryer](
	ctx context.Context, q Q, id int64,
) (*model.Borrower, error) {
	var gb tables.Borrower
	err := q.GORM(ctx).Where("id = ?", id).Take(&gb).Error
	if err != nil {
		return nil, gormdb.Translate(q.Dialect(), "select borrower", err)
	}
	return gb.Model(), nil
}

// column is one of the trusted name or email column names.
func exists[Q gormdb.Queryer](
	ctx context.Context, q Q, column, value string,
) (bool, error) {
	var n int64
	err := q.GORM(ctx).Model(&tables.Borrower{}).Where(
		column+" = ?", value,
	).Count(&n).Error
	if err != nil {
		return false, gormdb.Translate(
			q.Dialect(), "count borrowers by "+column, err,
		)
	}
	return n > 0, nil
}
