// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

type Schema interface {
	// Tx takes a Tx interface instance, unwraps it as required, and
	// returns a SchemaTxQueryer interface which can create the tables
	// and manage the database roles in that transaction.
	Tx(Tx) SchemaTxQueryer
}

type SchemaTxQueryer interface {
	// CreateTables creates the books, borrowers, and borrows tables
	// with their unique constraints and indices, if they are missing.
	// Existing tables are kept and missing columns are added.
	CreateTables(ctx context.Context) error

	// SupportsRoles reports if the DBMS manages its own login roles.
	// An embedded database has no roles and so the role management
	// methods may not be called for it.
	SupportsRoles() bool

	// CreateRoleIfNotExists creates the `role` role if it does not
	// exist right now. Although the login option is enabled for the
	// created role, but no specific password will be set for it.
	//
	// The `role` role name may be suffixed automatically based on
	// this schema queryer settings.
	CreateRoleIfNotExists(ctx context.Context, role Role) error

	// GrantPrivileges grants the data manipulation privileges on the
	// library tables (and their sequences) to the `role` role.
	//
	// The `role` role name may be suffixed automatically based on
	// this schema queryer settings.
	GrantPrivileges(ctx context.Context, role Role) error

	// ChangePasswords updates the passwords of the given roles
	// in the current transaction. The roles and passwords slices must
	// have the same number of entries, so they can be used in pair.
	// Passwords are hashed before being sent to the DBMS.
	ChangePasswords(
		ctx context.Context, roles []Role, passwords []string,
	) error
}
