// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// TxHandler is called with an open transaction. Returning a nil error
// commits the transaction, while a non-nil error (or a panic) rolls it
// back, so no partial changes may survive a failed handler.
type TxHandler func(context.Context, Tx) error

// Conn is a database connection which is reserved for the caller.
type Conn interface {
	Queryer
	Tx(ctx context.Context, handler TxHandler) error
	IsConn()
}
