// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo declares the repository interfaces which are used by
// the use cases layer. Implementations live in the adapters layer and
// are free to depend on any database framework.
package repo

import (
	"context"
	"errors"
)

// ErrNotFound is wrapped by repositories when an asked row is missing.
var ErrNotFound = errors.New("record not found")

// ConnHandler is called with a reserved connection, which is released
// when the handler returns.
type ConnHandler func(context.Context, Conn) error

// Pool manages a set of database connections.
type Pool interface {
	Conn(ctx context.Context, handler ConnHandler) error
	Close() error
}
