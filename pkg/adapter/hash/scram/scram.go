// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram implements the SCRAM-SHA-256 and SCRAM-SHA-1 password
// hashing, as accepted by the PostgreSQL ALTER ROLE statements, on top
// of the github.com/xdg-go/scram module. The database initialization
// commands use it for setting the password of the library role.
package scram

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/xdg-go/scram"
)

// MinIterations is the least accepted iterations count (RFC 7677
// recommends 15000 while PostgreSQL uses 4096 by default).
const MinIterations = 4096

// Mechanism is a SCRAM hasher with a fixed underlying hash algorithm.
// It implements the github.com/momeni/libweb/pkg/core/scram.Hasher
// interface.
type Mechanism struct {
	gen     scram.HashGeneratorFcn
	saltLen int // bytes, same as the hash output length
	prefix  string
}

// SHA1 returns a Mechanism which uses the SHA1 hash algorithm.
func SHA1() *Mechanism {
	return &Mechanism{gen: scram.SHA1, saltLen: sha1.Size, prefix: "SCRAM-SHA-1"}
}

// SHA256 returns a Mechanism which uses the SHA256 hash algorithm.
// It is the PostgreSQL default method.
func SHA256() *Mechanism {
	return &Mechanism{gen: scram.SHA256, saltLen: sha256.Size, prefix: "SCRAM-SHA-256"}
}

var byName = map[string]func() *Mechanism{
	"scram-sha-256": SHA256,
	"scram-sha-1":   SHA1,
}

// ByName returns the Mechanism which is named by method, e.g., as it
// is written in the auth-method database configuration setting.
// Names are matched case-insensitively.
func ByName(method string) (*Mechanism, error) {
	newMechanism, ok := byName[strings.ToLower(method)]
	if !ok {
		return nil, fmt.Errorf("unsupported auth method: %q", method)
	}
	return newMechanism(), nil
}

// Hash computes the stored credentials of pass in the format which
// is kept by PostgreSQL in the pg_authid catalog:
//
//	SCRAM-SHA-X$<iters>:<b64 salt>$<b64 stored key>:<b64 server key>
//
// The salt must be base64 encoded and an empty salt is replaced by
// random bytes. The password is normalized with SASLprep (RFC 4013).
func (m *Mechanism) Hash(pass, salt string, iters int) (string, error) {
	if pass == "" {
		return "", errors.New("password must be non-empty")
	}
	if iters < MinIterations {
		return "", fmt.Errorf(
			"iters (%d) is less than %d", iters, MinIterations,
		)
	}
	if salt == "" {
		var err error
		if salt, err = m.randomSalt(); err != nil {
			return "", err
		}
	}
	raw, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("decoding base64 salt: %w", err)
	}
	c, err := m.gen.NewClient("libweb", pass, "")
	if err != nil {
		return "", fmt.Errorf("preparing password: %w", err)
	}
	sc := c.GetStoredCredentials(scram.KeyFactors{
		Salt:  string(raw),
		Iters: iters,
	})
	enc := base64.StdEncoding.EncodeToString
	return fmt.Sprintf(
		"%s$%d:%s$%s:%s", m.prefix, iters, salt,
		enc(sc.StoredKey), enc(sc.ServerKey),
	), nil
}

func (m *Mechanism) randomSalt() (string, error) {
	b := make([]byte, m.saltLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("creating random salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
