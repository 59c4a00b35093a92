// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres opens gormdb connection pools on a PostgreSQL
// server using the pgx driver (through gorm.io/driver/postgres) and
// recognizes the pgx specific errors.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"

	"github.com/momeni/libweb/pkg/adapter/db/gormdb"
)

// UniqueViolationCode is the SQLSTATE of the unique_violation errors.
const UniqueViolationCode = "23505"

// NewPool connects to the url PostgreSQL database. The url may be in
// the URL or the key=value DSN formats, as accepted by pgx. Unknown
// URL query parameters (such as lock_timeout) are sent as run-time
// parameters of each new connection.
func NewPool(ctx context.Context, url string) (*gormdb.Pool, error) {
	return gormdb.New(ctx, postgres.Open(url), Dialect{})
}

// Dialect implements the gormdb.Dialect interface for PostgreSQL.
type Dialect struct{}

// Name returns "postgres".
func (Dialect) Name() string {
	return "postgres"
}

// UniqueViolation finds a *pgconn.PgError in the err chain and checks
// its SQLSTATE code.
func (Dialect) UniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != UniqueViolationCode {
		return "", false
	}
	return pgErr.ConstraintName, true
}

// SupportsRoles returns true.
func (Dialect) SupportsRoles() bool {
	return true
}
