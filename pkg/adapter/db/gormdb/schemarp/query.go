// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schemarp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/momeni/libweb/pkg/adapter/db/gormdb"
	"github.com/momeni/libweb/pkg/adapter/db/gormdb/tables"
	"github.com/momeni/libweb/pkg/core/repo"
	"github.com/momeni/libweb/pkg/core/scram"
)

// ErrRolesUnsupported indicates that role management was requested on
// a DBMS without login roles, such as SQLite.
var ErrRolesUnsupported = errors.New("database roles are not supported")

// scramIterations is the PostgreSQL default scram_iterations value.
const scramIterations = 4096

// CreateTables creates the books, borrowers, and borrows tables, their
// indices, and their foreign keys if they are missing.
func CreateTables[Q gormdb.Queryer](ctx context.Context, q Q) error {
	if err := q.GORM(ctx).AutoMigrate(tables.All()...); err != nil {
		return fmt.Errorf("migrating library tables: %w", err)
	}
	return nil
}

func roleIdent(roleSuffix, role repo.Role) string {
	return pgx.Identifier{string(role + roleSuffix)}.Sanitize()
}

// CreateRoleIfNotExists creates the `role` role if it does not
// exist right now. Although the login option is enabled for the
// created role, but no specific password will be set for it.
// The ChangePasswords may be used for setting a password afterwards.
//
// The `role` role name is suffixed by `roleSuffix` if it is not empty.
func CreateRoleIfNotExists[Q gormdb.Queryer](
	ctx context.Context, q Q, roleSuffix repo.Role, role repo.Role,
) error {
	if !q.Dialect().SupportsRoles() {
		return ErrRolesUnsupported
	}
	var n int64
	err := q.GORM(ctx).Raw(
		"SELECT COUNT(*) FROM pg_roles WHERE rolname = ?",
		string(role+roleSuffix),
	).Scan(&n).Error
	if err != nil {
		return fmt.Errorf("checking role existence: %w", err)
	}
	if n > 0 {
		return nil
	}
	sql := "CREATE ROLE " + roleIdent(roleSuffix, role) + " LOGIN"
	if _, err = q.Exec(ctx, sql); err != nil {
		return fmt.Errorf("creating role: %w", err)
	}
	return nil
}

// GrantPrivileges grants the data manipulation privileges on the
// library tables and the usage of their ID sequences to `role`.
// No privilege for deletion or schema changes is granted.
//
// The `role` role name is suffixed by `roleSuffix` if it is not empty.
func GrantPrivileges[Q gormdb.Queryer](
	ctx context.Context, q Q, roleSuffix repo.Role, role repo.Role,
) error {
	if !q.Dialect().SupportsRoles() {
		return ErrRolesUnsupported
	}
	r := roleIdent(roleSuffix, role)
	var tbls, seqs []string
	for _, m := range tables.All() {
		t := m.(interface{ TableName() string }).TableName()
		tbls = append(tbls, pgx.Identifier{t}.Sanitize())
		seqs = append(seqs, pgx.Identifier{t + "_id_seq"}.Sanitize())
	}
	stmts := []string{
		fmt.Sprintf(
			"GRANT SELECT, INSERT, UPDATE ON TABLE %s TO %s",
			strings.Join(tbls, ", "), r,
		),
		fmt.Sprintf(
			"GRANT USAGE, SELECT ON SEQUENCE %s TO %s",
			strings.Join(seqs, ", "), r,
		),
	}
	for _, s := range stmts {
		if _, err := q.Exec(ctx, s); err != nil {
			return fmt.Errorf("granting privileges to %s: %w", r, err)
		}
	}
	return nil
}

// ChangePasswords updates the passwords of the given roles in the
// current transaction. The roles and passwords slices must have the
// same number of entries, so they can be used in pair.
// These fields are not combined as a struct with two role and
// password fields because passing items separately ensures that
// all items are initialized explicitly.
//
// The `roles` role names are suffixed by `roleSuffix` if it is not
// empty. The `hasher` is used for hashing of the `passwords` before
// sending them to the DBMS (so they may not leak in plaintext).
func ChangePasswords(
	ctx context.Context,
	tx *gormdb.Tx,
	roleSuffix repo.Role,
	hasher scram.Hasher,
	roles []repo.Role,
	passwords []string,
) error {
	if !tx.Dialect().SupportsRoles() {
		return ErrRolesUnsupported
	}
	if len(roles) != len(passwords) {
		return fmt.Errorf(
			"got %d roles but %d passwords", len(roles), len(passwords),
		)
	}
	if hasher == nil {
		return errors.New("no password hasher is configured")
	}
	for i, role := range roles {
		h, err := hasher.Hash(passwords[i], "", scramIterations)
		if err != nil {
			return fmt.Errorf("hashing password of %q: %w", role, err)
		}
		// ALTER ROLE is a utility statement and takes no parameters.
		// The hash is made of base64 letters and the $: separators.
		sql := fmt.Sprintf(
			"ALTER ROLE %s WITH PASSWORD '%s'",
			roleIdent(roleSuffix, role),
			strings.ReplaceAll(h, "'", "''"),
		)
		if _, err := tx.Exec(ctx, sql); err != nil {
			return fmt.Errorf("altering role %q: %w", role, err)
		}
	}
	return nil
}
