// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

type Role string

const (
	// AdminRole is an administrator (super user) role which is used
	// by the database initialization commands in order to create the
	// tables, create the NormalRole, and grant it the table privileges.
	AdminRole Role = "admin"

	// NormalRole is the unprivileged role which is used by the web
	// server for all library use cases.
	NormalRole Role = "libweb"
)
