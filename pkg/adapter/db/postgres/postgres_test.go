// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/momeni/libweb/pkg/adapter/db/postgres"
)

func TestUniqueViolation(t *testing.T) {
	d := postgres.Dialect{}
	err := fmt.Errorf("insert: %w", &pgconn.PgError{
		Code:           postgres.UniqueViolationCode,
		ConstraintName: "borrowers_name_key",
	})
	c, ok := d.UniqueViolation(err)
	assert.True(t, ok)
	assert.Equal(t, "borrowers_name_key", c)

	_, ok = d.UniqueViolation(&pgconn.PgError{Code: "23503"})
	assert.False(t, ok, "foreign key violation is not a unique one")
	_, ok = d.UniqueViolation(errors.New("23505"))
	assert.False(t, ok)
	assert.True(t, d.SupportsRoles())
}
