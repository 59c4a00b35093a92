// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package sqlite opens gormdb connection pools on an embedded SQLite
// database file using the github.com/mattn/go-sqlite3 driver.
//
// SQLite has no row level locks. Every transaction is started with
// BEGIN IMMEDIATE, taking the database write lock at its beginning,
// so transactions which lock a book are serialized as well. Waiting
// writers retry up to the busy timeout before failing.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"

	"github.com/momeni/libweb/pkg/adapter/db/gormdb"
)

// DefaultBusyTimeout is used when a non-positive busy timeout is given.
const DefaultBusyTimeout = 5 * time.Second

// DSN returns the go-sqlite3 data source name for the path database
// file, enabling the foreign keys, WAL journaling, and IMMEDIATE
// transactions.
func DSN(path string, busyTimeout time.Duration) string {
	if busyTimeout <= 0 {
		busyTimeout = DefaultBusyTimeout
	}
	q := url.Values{}
	q.Set("_busy_timeout", fmt.Sprint(busyTimeout.Milliseconds()))
	q.Set("_foreign_keys", "1")
	q.Set("_journal_mode", "WAL")
	q.Set("_txlock", "immediate")
	return "file:" + path + "?" + q.Encode()
}

// NewPool opens (or creates) the path database file.
func NewPool(
	ctx context.Context, path string, busyTimeout time.Duration,
) (*gormdb.Pool, error) {
	return gormdb.New(ctx, sqlite.Open(DSN(path, busyTimeout)), Dialect{})
}

// Dialect implements the gormdb.Dialect interface for SQLite.
type Dialect struct{}

// Name returns "sqlite".
func (Dialect) Name() string {
	return "sqlite"
}

const uniqueFailedPrefix = "UNIQUE constraint failed: "

// UniqueViolation finds a sqlite3.Error in the err chain with the
// unique or primary key extended codes. SQLite does not report the
// index name, so the violated table.column list is returned instead.
func (Dialect) UniqueViolation(err error) (string, bool) {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return "", false
	}
	switch se.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
	default:
		return "", false
	}
	return strings.TrimPrefix(se.Error(), uniqueFailedPrefix), true
}

// SupportsRoles returns false.
func (Dialect) SupportsRoles() bool {
	return false
}
