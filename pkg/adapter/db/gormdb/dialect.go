// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gormdb

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/momeni/libweb/pkg/core/cerr"
	"github.com/momeni/libweb/pkg/core/repo"
)

// Dialect describes the DBMS specific behaviors which are not covered
// by the gorm.Dialector.
type Dialect interface {
	// Name returns the DBMS name, e.g., postgres or sqlite.
	Name() string

	// UniqueViolation reports if err (or any error which is wrapped
	// by it) indicates that a unique constraint or unique index was
	// violated. The name of that constraint is returned as well.
	UniqueViolation(err error) (constraint string, ok bool)

	// SupportsRoles reports if the DBMS manages login roles.
	SupportsRoles() bool
}

// Translate converts the gorm and driver errors to the errors which
// are expected by the use cases layer. A missing record is reported
// by wrapping repo.ErrNotFound and a violated unique constraint is
// returned as a cerr.ConstraintViolation error. Other errors are
// wrapped with the op description. A nil err gives a nil error.
func Translate(d Dialect, op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, repo.ErrNotFound)
	}
	if c, ok := d.UniqueViolation(err); ok {
		return cerr.ConstraintViolation(fmt.Errorf(
			"unique constraint %q was violated: %w", c, err,
		))
	}
	return fmt.Errorf("%s: %w", op, err)
}
