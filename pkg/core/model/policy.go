// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
)

// ConsistencyPolicy specifies how the circulation use cases react when
// the availability flag of a book and its active borrow record do not
// agree with each other. Although this enum is numeric, it is
// (de)serialized as a string in the configuration files.
type ConsistencyPolicy int

// Valid values for the ConsistencyPolicy enum.
const (
	ConsistencyPolicyInvalid ConsistencyPolicy = iota // zero is invalid

	// ConsistencyPolicyStrict rejects a borrow or return with an
	// inconsistent state error whenever the two signals disagree.
	ConsistencyPolicyStrict
	// ConsistencyPolicyLenient trusts the first signal which says the
	// book is not borrowed and reports it as such.
	ConsistencyPolicyLenient
)

// ErrUnknownConsistencyPolicy indicates that a string may not be parsed
// as a known consistency policy. The caller of ParseConsistencyPolicy
// already knows the rejected string, so it is not included here.
var ErrUnknownConsistencyPolicy = errors.New("unknown consistency policy")

// ConsistencyPolicyError indicates an invalid numeric policy value.
type ConsistencyPolicyError int

// Error implements the error interface.
func (e ConsistencyPolicyError) Error() string {
	return fmt.Sprintf("invalid consistency policy: %d", e)
}

// Validate returns nil if p is a known policy, otherwise, an instance
// of ConsistencyPolicyError will be returned.
func (p ConsistencyPolicy) Validate() error {
	switch p {
	case ConsistencyPolicyStrict, ConsistencyPolicyLenient:
		return nil
	default:
		return ConsistencyPolicyError(p)
	}
}

// String converts p to its configuration file representation.
// Invalid policies cause a panic.
func (p ConsistencyPolicy) String() string {
	switch p {
	case ConsistencyPolicyStrict:
		return "strict"
	case ConsistencyPolicyLenient:
		return "lenient"
	default:
		panic(ConsistencyPolicyError(p))
	}
}

// ParseConsistencyPolicy parses the given string. For unknown strings,
// ConsistencyPolicyInvalid and ErrUnknownConsistencyPolicy are returned.
func ParseConsistencyPolicy(p string) (ConsistencyPolicy, error) {
	switch p {
	case "strict":
		return ConsistencyPolicyStrict, nil
	case "lenient":
		return ConsistencyPolicyLenient, nil
	default:
		return ConsistencyPolicyInvalid, ErrUnknownConsistencyPolicy
	}
}
