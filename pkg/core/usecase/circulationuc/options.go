// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package circulationuc

import (
	"errors"
	"time"

	"github.com/momeni/libweb/pkg/core/model"
)

// Option is a functional option for the circulation use case.
type Option func(uc *UseCase) error

// WithConsistencyPolicy option configures how a circulation UseCase
// instance treats a book whose flag disagrees with its borrow records.
// The strict policy is used if this option is not passed.
func WithConsistencyPolicy(p model.ConsistencyPolicy) Option {
	return func(uc *UseCase) error {
		if err := p.Validate(); err != nil {
			return err
		}
		if uc.consistency != model.ConsistencyPolicyInvalid {
			return errors.New("consistency policy is already configured")
		}
		uc.consistency = p
		return nil
	}
}

// WithClock option replaces the time.Now function which provides the
// borrow and return times. It is useful for tests.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) error {
		if now == nil {
			return errors.New("clock function is nil")
		}
		if uc.now != nil {
			return errors.New("clock is already configured")
		}
		uc.now = now
		return nil
	}
}
