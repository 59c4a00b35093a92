// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gormdb

import (
	"context"

	"gorm.io/gorm"
)

// Tx represents a database transaction.
// It is unsafe to be used concurrently. All statements which are run
// in a single transaction observe the ACID properties. The PostgreSQL
// transactions are READ-COMMITTED by default, hence, rows which must
// not change between a read and a later write should be locked
// explicitly. The SQLite transactions are started in the IMMEDIATE
// mode and so are serialized altogether.
type Tx struct {
	*gorm.DB
	dialect Dialect
}

// Exec runs the sql statement with args, returning the number of
// affected rows. Placeholders follow the GORM conventions (? or @name).
func (tx *Tx) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	return execute(tx.DB.WithContext(ctx), sql, args...)
}

// IsTx method prevents a non-Tx object (such as a Conn) to
// mistakenly implement the Tx interface.
func (tx *Tx) IsTx() {
}

// GORM returns the embedded *gorm.DB instance, configuring it
// to operate on the given ctx context (in a gorm.Session).
func (tx *Tx) GORM(ctx context.Context) *gorm.DB {
	return tx.DB.WithContext(ctx)
}

// Dialect returns the dialect of the pool which created tx.
func (tx *Tx) Dialect() Dialect {
	return tx.dialect
}
