// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gormdb

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/momeni/libweb/pkg/core/repo"
)

// Conn represents a dedicated database connection which can run
// statements in the auto-commit mode or start transactions.
// It is unsafe to be used concurrently.
type Conn struct {
	*gorm.DB
	dialect Dialect
}

// TxHandler is an alias for the repo.TxHandler.
type TxHandler = repo.TxHandler

// Tx begins a transaction on c connection and passes it to f.
// If f returns an error or panics, the transaction is rolled back.
// Otherwise, it is committed. A panic is recovered and returned as
// an error, so callers may serve further requests.
func (c *Conn) Tx(ctx context.Context, f TxHandler) (err error) {
	tx := c.DB.WithContext(ctx).Begin()
	if err = tx.Error; err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			err = tx.Rollback().Error
			if err == nil {
				err = fmt.Errorf("panicked: %v", r)
				return
			}
			err = fmt.Errorf("panicked: %v, rollback: %w", r, err)
			return
		}
		if err != nil {
			if err2 := tx.Rollback().Error; err2 != nil {
				err = fmt.Errorf("handler: %w, rollback: %w", err, err2)
				return
			}
			return
		}
		err = tx.Commit().Error
		if err != nil {
			err = fmt.Errorf("commit: %w", err)
		}
	}()
	tt := &Tx{DB: tx, dialect: c.dialect}
	return f(ctx, tt)
}

// Exec runs the sql statement with args, returning the number of
// affected rows. Placeholders follow the GORM conventions (? or @name).
func (c *Conn) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	return execute(c.DB.WithContext(ctx), sql, args...)
}

// IsConn method prevents a non-Conn object (such as a Tx) to
// mistakenly implement the Conn interface.
func (c *Conn) IsConn() {
}

// GORM returns the embedded *gorm.DB instance, configuring it
// to operate on the given ctx context (in a gorm.Session).
func (c *Conn) GORM(ctx context.Context) *gorm.DB {
	return c.DB.WithContext(ctx)
}

// Dialect returns the dialect of the pool which created c.
func (c *Conn) Dialect() Dialect {
	return c.dialect
}

func execute(gdb *gorm.DB, sql string, args ...any) (int64, error) {
	tt := gdb.Exec(sql, args...)
	if err := tt.Error; err != nil {
		return 0, err
	}
	return tt.RowsAffected, nil
}
