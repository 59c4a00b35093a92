// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gormdb

import (
	"context"

	"gorm.io/gorm"

	"github.com/momeni/libweb/pkg/core/repo"
)

// Queryer is the type constraint of the generic repository functions
// which may run both on a connection and in a transaction.
type Queryer interface {
	*Conn | *Tx
	repo.Queryer
	GORM(ctx context.Context) *gorm.DB
	Dialect() Dialect
}
