// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settings provides the generic helpers of the config package
// for dealing with optional settings (which are kept as pointers, so a
// missing item can be told apart from its zero value), checking their
// acceptable ranges, and decoding the duration settings.
package settings

import (
	"errors"
	"log/slog"
	"strings"
	"time"
)

// Duration is a time.Duration which can be decoded from (and encoded
// to) strings like "1m30s" in the YAML configuration files.
type Duration time.Duration

// UnmarshalText parses data with the time.ParseDuration format.
// The d receiver is updated only if no error is returned.
func (d *Duration) UnmarshalText(data []byte) error {
	dd, err := time.ParseDuration(string(data))
	if err != nil {
		return err
	}
	*d = Duration(dd)
	return nil
}

// String formats d like time.Duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// Marshal returns the textual form of d, omitting the redundant zero
// minutes or seconds suffixes (e.g., 2m instead of 2m0s). A nil d
// gives a nil string.
func (d *Duration) Marshal() *string {
	if d == nil {
		return nil
	}
	s := (*time.Duration)(d).String()
	if strings.HasSuffix(s, "m0s") {
		s = s[:len(s)-2]
	}
	if strings.HasSuffix(s, "h0m") {
		s = s[:len(s)-2]
	}
	return &s
}

// MarshalText implements the encoding.TextMarshaler interface.
func (d *Duration) MarshalText() ([]byte, error) {
	if s := d.Marshal(); s != nil {
		return []byte(*s), nil
	}
	return nil, errors.New("nil duration")
}

// LogValue implements the slog.LogValuer interface.
func (d *Duration) LogValue() slog.Value {
	if d == nil {
		return slog.StringValue("nil-duration")
	}
	return slog.DurationValue(time.Duration(*d))
}
