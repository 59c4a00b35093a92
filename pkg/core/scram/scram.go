// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram exports the Hasher interface for the Salted Challenge
// Response Authentication Mechanism (SCRAM). The implementation lives
// in the pkg/adapter/hash/scram package.
//
// The library only needs to produce the stored form of a database role
// password, so it may be passed to an ALTER ROLE statement without
// sending the plaintext password (which could be logged by the DBMS).
// The client and server conversations of SCRAM are handled by the
// PostgreSQL server and its driver and are not modeled here.
package scram

// Hasher computes SCRAM stored credentials for a fixed underlying hash
// function (e.g., SHA1 or SHA256).
type Hasher interface {
	// Hash computes a hash string following the standard scram hash
	// format, so it can be stored and used later for authentication.
	//
	// The pass argument must be non-empty. The salt must contain a
	// base64 encoding of the desired salt bytes, otherwise, if it is
	// empty, a random salt will be generated. The iters must be at
	// least 4096. Returned string has the following format.
	//
	//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
	Hash(pass, salt string, iters int) (string, error)
}
