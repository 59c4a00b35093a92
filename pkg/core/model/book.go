// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// By the way, it is acceptable to annotate structs in this package with
// multiple frameworks dependent tags (e.g., json tags which are used by
// the REST adapters) since adding more tags does not complicate the
// definition of a struct, but can prevent unnecessary duplication.
package model

import (
	"errors"
	"fmt"
)

// Availability is the stored availability flag of a physical book copy.
// Its numeric values are part of the external API and the database
// contents, so they may not be renumbered.
type Availability int

// Valid values for the Availability enum.
const (
	Available Availability = 0 // the copy is on the shelf
	Borrowed  Availability = 1 // the copy is lent to a borrower
)

// ErrAlreadyBorrowed is returned by Book.Borrow when the copy is lent.
var ErrAlreadyBorrowed = errors.New("book is already borrowed")

// ErrNotBorrowed is returned by Book.Return when the copy is available.
var ErrNotBorrowed = errors.New("book is not borrowed")

// AvailabilityError indicates an availability flag which is neither
// Available nor Borrowed.
type AvailabilityError int

// Error implements the error interface.
func (e AvailabilityError) Error() string {
	return fmt.Sprintf("invalid availability: %d", e)
}

// Validate returns nil if a is a known availability value, otherwise,
// an AvailabilityError will be returned.
func (a Availability) Validate() error {
	switch a {
	case Available, Borrowed:
		return nil
	default:
		return AvailabilityError(a)
	}
}

// String returns a human-readable name of the availability flag.
func (a Availability) String() string {
	switch a {
	case Available:
		return "available"
	case Borrowed:
		return "borrowed"
	default:
		return fmt.Sprintf("availability(%d)", int(a))
	}
}

// Book models one physical copy of a book. Multiple copies may share
// the same ISBN, but they must agree on their Title and Author fields.
type Book struct {
	ID           int64        `json:"id"`
	ISBN         string       `json:"isbn"`
	Title        string       `json:"title"`
	Author       string       `json:"author"`
	Availability Availability `json:"availability"`
}

// SameMetadata reports if b and other describe the same title, so they
// may be registered as copies of one ISBN.
func (b *Book) SameMetadata(other *Book) bool {
	return b.Title == other.Title && b.Author == other.Author
}

// Borrow moves the copy from Available to Borrowed. No other state
// transition is accepted and ErrAlreadyBorrowed will be returned
// (without modifying b) if the copy is already lent.
func (b *Book) Borrow() error {
	if b.Availability == Borrowed {
		return ErrAlreadyBorrowed
	}
	b.Availability = Borrowed
	return nil
}

// Return moves the copy from Borrowed to Available. If the copy is
// available already, ErrNotBorrowed will be returned and b is kept.
func (b *Book) Return() error {
	if b.Availability == Available {
		return ErrNotBorrowed
	}
	b.Availability = Available
	return nil
}
