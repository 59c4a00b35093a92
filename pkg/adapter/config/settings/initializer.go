// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

// Nil2Zero replaces a nil *t pointer with a pointer to the zero value
// of T, so optional settings may be dereferenced after normalization.
func Nil2Zero[T any](t **T) {
	Default(t, *new(T))
}

// Default replaces a nil *t pointer with a pointer to a copy of def.
// A non-nil *t is kept as is.
func Default[T any](t **T, def T) {
	if (*t) != nil {
		return
	}
	(*t) = &def
}
