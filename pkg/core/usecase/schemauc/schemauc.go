// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schemauc provides the database initialization use case.
// It creates the library tables and (for a DBMS with login roles) the
// normal role which is used by the web server, granting it the data
// manipulation privileges and renewing the role passwords. The
// development initialization also fills the tables with sample rows.
package schemauc

import (
	"context"
	"fmt"

	"github.com/momeni/libweb/pkg/core/log"
	"github.com/momeni/libweb/pkg/core/model"
	"github.com/momeni/libweb/pkg/core/repo"
)

// Settings represents the expectations of the schemauc use case from
// the configuration settings.
type Settings interface {
	// ConnectionPool creates a database connection pool for the r
	// role. Password values are kept in a passwords file, like
	//
	//	host:port:dbname:role:password
	//
	// and a temporary passwords file may be used if a former call of
	// RenewPasswords was interrupted before its finalization. A DBMS
	// without login roles ignores r.
	ConnectionPool(ctx context.Context, r repo.Role) (repo.Pool, error)

	// NewSchemaRepo instantiates a fresh Schema repository, using the
	// same role name suffix which is used by ConnectionPool.
	NewSchemaRepo() repo.Schema

	// RenewPasswords generates new secure passwords for the given roles
	// and after recording them in a temporary file, will use the change
	// function in order to update the passwords of those roles in the
	// database too. The change function should perform the update in a
	// transaction. Once it is committed, the returned finalizer must be
	// called in order to move the temporary passwords file over the
	// main passwords file.
	RenewPasswords(
		ctx context.Context,
		change func(
			ctx context.Context, roles []repo.Role, passwords []string,
		) error,
		roles ...repo.Role,
	) (finalizer func() error, err error)
}

// UseCase represents the database initialization use case.
type UseCase struct {
	settings    Settings
	schemaRepo  repo.Schema
	booksrp     repo.Books
	borrowersrp repo.Borrowers
}

// New creates a UseCase instance. The books and borrowers repositories
// are used for seeding the development sample rows.
func New(s Settings, books repo.Books, borrowers repo.Borrowers) *UseCase {
	return &UseCase{
		settings:    s,
		schemaRepo:  s.NewSchemaRepo(),
		booksrp:     books,
		borrowersrp: borrowers,
	}
}

// InitProd creates the tables and prepares the normal role using the
// admin role. It keeps existing tables and rows, so it may be repeated.
func (uc *UseCase) InitProd(ctx context.Context) error {
	return uc.prepare(ctx)
}

// InitDev does the same as InitProd and then connects with the normal
// role in order to insert the sample borrower and book, unless rows
// with the same name or ISBN exist already.
func (uc *UseCase) InitDev(ctx context.Context) error {
	if err := uc.prepare(ctx); err != nil {
		return err
	}
	p, err := uc.settings.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool for normal role: %w", err)
	}
	defer p.Close()
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return uc.seed(ctx, tx)
		})
	})
	if err != nil {
		return fmt.Errorf("normal connection: %w", err)
	}
	return nil
}

// SampleBorrower and SampleBook are inserted by InitDev.
var (
	SampleBorrower = model.Borrower{
		Name:  "John Doe",
		Email: "john@example.com",
	}
	SampleBook = model.Book{
		ISBN:   "1234567890",
		Title:  "Spring Boot Guide",
		Author: "Jane Smith",
	}
)

func (uc *UseCase) seed(ctx context.Context, tx repo.Tx) error {
	borrowers := uc.borrowersrp.Tx(tx)
	exists, err := borrowers.ExistsByName(ctx, SampleBorrower.Name)
	if err != nil {
		return fmt.Errorf("checking sample borrower: %w", err)
	}
	if !exists {
		b, err := borrowers.Create(ctx, &SampleBorrower)
		if err != nil {
			return fmt.Errorf("creating sample borrower: %w", err)
		}
		log.Info(ctx, "sample borrower is created", log.BorrowerID(b.ID))
	}
	books := uc.booksrp.Tx(tx)
	copies, err := books.LockByISBN(ctx, SampleBook.ISBN)
	if err != nil {
		return fmt.Errorf("checking sample book: %w", err)
	}
	if len(copies) == 0 {
		b, err := books.Create(ctx, &SampleBook)
		if err != nil {
			return fmt.Errorf("creating sample book: %w", err)
		}
		log.Info(ctx, "sample book is created", log.BookID(b.ID))
	}
	return nil
}

func (uc *UseCase) prepare(ctx context.Context) error {
	p, err := uc.settings.ConnectionPool(ctx, repo.AdminRole)
	if err != nil {
		return fmt.Errorf("creating DB pool for admin: %w", err)
	}
	defer p.Close()
	var finalizer func() error
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := uc.schemaRepo.Tx(tx)
			if err := q.CreateTables(ctx); err != nil {
				return fmt.Errorf("creating tables: %w", err)
			}
			if !q.SupportsRoles() {
				return nil
			}
			if err := q.CreateRoleIfNotExists(
				ctx, repo.NormalRole,
			); err != nil {
				return fmt.Errorf("creating normal role: %w", err)
			}
			if err := q.GrantPrivileges(
				ctx, repo.NormalRole,
			); err != nil {
				return fmt.Errorf("granting normal role privs: %w", err)
			}
			finalizer, err = uc.settings.RenewPasswords(
				ctx, q.ChangePasswords, repo.AdminRole, repo.NormalRole,
			)
			if err != nil {
				return fmt.Errorf("RenewPasswords: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("admin connection: %w", err)
	}
	if finalizer != nil {
		if err := finalizer(); err != nil {
			return fmt.Errorf("finalizing passwords renewal: %w", err)
		}
	}
	log.Info(ctx, "database is initialized")
	return nil
}
