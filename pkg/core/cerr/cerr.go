// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cerr contains the core errors which may be returned by the
// use cases layer. Each Error carries a Kind, so callers may react to
// the failure category without parsing messages, and the HTTP status
// code which the REST adapters should report for it.
package cerr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind enumerates the failure categories of the library use cases.
type Kind int

// Known failure kinds. The zero value is KindUnknown, so an Error which
// is created without a kind is treated as an unanticipated failure.
const (
	KindUnknown Kind = iota
	KindBadRequest
	KindNotFound
	KindAlreadyBorrowed
	KindNotBorrowed
	KindInconsistentState
	KindConflictingMetadata
	KindDuplicateName
	KindDuplicateEmail
	KindConstraintViolation
)

var kindNames = [...]string{
	KindUnknown:             "unknown",
	KindBadRequest:          "bad-request",
	KindNotFound:            "not-found",
	KindAlreadyBorrowed:     "already-borrowed",
	KindNotBorrowed:         "not-borrowed",
	KindInconsistentState:   "inconsistent-state",
	KindConflictingMetadata: "conflicting-metadata",
	KindDuplicateName:       "duplicate-name",
	KindDuplicateEmail:      "duplicate-email",
	KindConstraintViolation: "constraint-violation",
}

// String returns the kebab-case name of k as reported to REST clients.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Error wraps an error with its Kind and HTTP status code.
type Error struct {
	Kind           Kind
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s: %s", e.HTTPStatusCode, e.Kind, e.Err)
}

// All library failures are reported as bad requests, so clients may
// distinguish them by their kind.
func newError(k Kind, err error) *Error {
	return &Error{Kind: k, Err: err, HTTPStatusCode: http.StatusBadRequest}
}

func BadRequest(err error) *Error {
	return newError(KindBadRequest, err)
}

func NotFound(err error) *Error {
	return newError(KindNotFound, err)
}

func AlreadyBorrowed(err error) *Error {
	return newError(KindAlreadyBorrowed, err)
}

func NotBorrowed(err error) *Error {
	return newError(KindNotBorrowed, err)
}

func InconsistentState(err error) *Error {
	return newError(KindInconsistentState, err)
}

func ConflictingMetadata(err error) *Error {
	return newError(KindConflictingMetadata, err)
}

func DuplicateName(err error) *Error {
	return newError(KindDuplicateName, err)
}

func DuplicateEmail(err error) *Error {
	return newError(KindDuplicateEmail, err)
}

func ConstraintViolation(err error) *Error {
	return newError(KindConstraintViolation, err)
}

// Unknown wraps an unanticipated err. The reason is still reported to
// the client, prefixed like "unknown exception: ...".
func Unknown(err error) *Error {
	return newError(KindUnknown, fmt.Errorf("unknown exception: %w", err))
}

// KindOf returns the Kind of the first *Error in the err chain.
// If err is nil or contains no *Error, KindUnknown is returned.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

// Is reports if the err chain contains an *Error with the k kind.
func Is(err error, k Kind) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == k
}

// Ensure wraps err as an Unknown error if it does not carry a Kind
// already. A nil err is returned as is.
func Ensure(err error) error {
	var ce *Error
	if err == nil || errors.As(err, &ce) {
		return err
	}
	return Unknown(err)
}
