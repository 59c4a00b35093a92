// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"cmp"
	"fmt"
)

// OutOfRangeError reports a setting Value which was clamped into its
// [min, max] range, or a range which was empty itself.
type OutOfRangeError[T cmp.Ordered] struct {
	Value        *T   // the given value, before being clamped
	LessThanMin  bool // if the min boundary was violated (not max)
	InvalidRange bool // if min was greater than max
}

// Error implements the error interface.
func (e *OutOfRangeError[T]) Error() string {
	if e.InvalidRange {
		return "min is greater than max"
	}
	bound := "max"
	if e.LessThanMin {
		bound = "min"
	}
	return fmt.Sprintf("value %v violates the %s boundary", *e.Value, bound)
}

// VerifyRange checks that *value is nil or within the [minb, maxb]
// range. A nil minb or maxb leaves that side unbounded. An out of range
// *value is replaced by the violated boundary and the original value
// is reported by the returned error.
func VerifyRange[T cmp.Ordered](
	value **T, minb, maxb *T,
) *OutOfRangeError[T] {
	if minb != nil && maxb != nil && *minb > *maxb {
		return &OutOfRangeError[T]{InvalidRange: true}
	}
	if *value == nil {
		return nil
	}
	v := **value
	if minb != nil && v < *minb {
		**value = *minb
		return &OutOfRangeError[T]{Value: &v, LessThanMin: true}
	}
	if maxb != nil && v > *maxb {
		**value = *maxb
		return &OutOfRangeError[T]{Value: &v}
	}
	return nil
}
