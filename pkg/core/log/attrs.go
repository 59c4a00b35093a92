// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log

import (
	"fmt"
	"log/slog"
)

// Valuer returns an Attr for the given slog.LogValuer value.
func Valuer(key string, value slog.LogValuer) slog.Attr {
	return slog.Any(key, value)
}

// Err returns an Attr for the given error value.
// The error value is resolved as a string by its Error() method.
// If error value is nil, the constant "no-error" value will be used.
func Err(key string, value error) slog.Attr {
	if value == nil {
		return slog.String(key, "no-error")
	}
	return slog.String(key, value.Error())
}

// BookID returns an Attr for the given book identifier.
func BookID(id int64) slog.Attr {
	return slog.Int64("book-id", id)
}

// BorrowerID returns an Attr for the given borrower identifier.
func BorrowerID(id int64) slog.Attr {
	return slog.Int64("borrower-id", id)
}

// Kind returns an Attr for the given failure kind (or any other value
// which implements fmt.Stringer, such as an enum).
func Kind(key string, value fmt.Stringer) slog.Attr {
	return slog.String(key, value.String())
}
