// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the libweb to instantiate different
// components, from the adapter or use cases layers, using those loaded
// configuration settings.
// The parsed and validated configurations are passed to their ultimate
// components as a series of individual params (for the mandatory items)
// and a series of functional options (for the optional items), so they
// may be validated again by the relevant end-component.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/momeni/libweb/pkg/adapter/db/gormdb/booksrp"
	"github.com/momeni/libweb/pkg/adapter/db/gormdb/borrowersrp"
	"github.com/momeni/libweb/pkg/adapter/db/gormdb/borrowsrp"
	"github.com/momeni/libweb/pkg/core/model"
	"github.com/momeni/libweb/pkg/core/repo"
	"github.com/momeni/libweb/pkg/core/usecase/booksuc"
	"github.com/momeni/libweb/pkg/core/usecase/borrowersuc"
	"github.com/momeni/libweb/pkg/core/usecase/circulationuc"
	"github.com/momeni/libweb/pkg/core/usecase/schemauc"
)

// Config contains all configuration settings of the libweb.
type Config struct {
	Database Database // database connection information
	Gin      Gin      // Gin-Gonic instantiation settings
	Logging  Logging  // structured logging settings
	Usecases Usecases // use cases related settings
}

var _ schemauc.Settings = (*Config)(nil)

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Circulation Circulation // borrow and return use cases settings
}

// Circulation contains the configuration settings for the circulation
// use cases.
type Circulation struct {
	// Consistency is the name of a model.ConsistencyPolicy, namely
	// strict (the default value) or lenient.
	Consistency string `yaml:",omitempty"`

	policy model.ConsistencyPolicy `yaml:"-"`
}

// ValidateAndNormalize parses the consistency policy name.
func (c *Circulation) ValidateAndNormalize() error {
	if c.Consistency == "" {
		c.Consistency = model.ConsistencyPolicyStrict.String()
	}
	p, err := model.ParseConsistencyPolicy(c.Consistency)
	if err != nil {
		return fmt.Errorf("consistency %q: %w", c.Consistency, err)
	}
	c.policy = p
	return nil
}

// Load function loads, validates, and normalizes the configuration
// file and returns its settings as an instance of the Config struct.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	return c, nil
}

// Parse decodes the yaml formatted data, rejecting the unknown keys,
// and then validates and normalizes the decoded settings.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates all settings, replacing the missing
// ones with their default values.
func (c *Config) ValidateAndNormalize() error {
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	c.Gin.normalize()
	if err := c.Logging.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Usecases.Circulation.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("usecases.circulation: %w", err)
	}
	return nil
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the c settings.
func (c *Config) ConnectionPool(
	ctx context.Context, r repo.Role,
) (repo.Pool, error) {
	p, err := c.Database.ConnectionPool(ctx, r)
	if err != nil {
		return nil, fmt.Errorf(
			"%s database pool for %q: %w", c.Database.Driver, r, err,
		)
	}
	return p, nil
}

// NewSchemaRepo instantiates a Schema repository which hashes the role
// passwords with the configured authentication method.
func (c *Config) NewSchemaRepo() repo.Schema {
	return c.Database.NewSchemaRepo()
}

// RenewPasswords delegates to the Database.RenewPasswords method.
func (c *Config) RenewPasswords(
	ctx context.Context,
	change func(
		ctx context.Context, roles []repo.Role, passwords []string,
	) error,
	roles ...repo.Role,
) (finalizer func() error, err error) {
	return c.Database.RenewPasswords(ctx, change, roles...)
}

// NewBooksUseCase instantiates a books use case on the p pool.
func (c *Config) NewBooksUseCase(p repo.Pool) *booksuc.UseCase {
	return booksuc.New(p, booksrp.New())
}

// NewBorrowersUseCase instantiates a borrowers use case on the p pool.
func (c *Config) NewBorrowersUseCase(p repo.Pool) *borrowersuc.UseCase {
	return borrowersuc.New(p, borrowersrp.New())
}

// NewCirculationUseCase instantiates a circulation use case on the p
// pool with the configured consistency policy.
func (c *Config) NewCirculationUseCase(
	p repo.Pool,
) (*circulationuc.UseCase, error) {
	return circulationuc.New(
		p, booksrp.New(), borrowersrp.New(), borrowsrp.New(),
		circulationuc.WithConsistencyPolicy(c.Usecases.Circulation.policy),
	)
}

// NewSchemaUseCase instantiates the database initialization use case.
func (c *Config) NewSchemaUseCase() *schemauc.UseCase {
	return schemauc.New(c, booksrp.New(), borrowersrp.New())
}
