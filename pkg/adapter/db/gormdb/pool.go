// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gormdb implements the repo.Pool, repo.Conn, and repo.Tx
// interfaces on top of the GORM framework, so the repositories may be
// shared by all supported DBMS drivers. A driver package (such as the
// postgres or sqlite packages) chooses the gorm.Dialector and provides
// a Dialect for the translation of its native errors.
package gormdb

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/momeni/libweb/pkg/core/repo"
)

// Pool represents a database connection pool.
// It may be used concurrently from different goroutines.
type Pool struct {
	db      *gorm.DB
	dialect Dialect
}

// New opens a connection pool using the d dialector and checks that
// a connection can be acquired. The dialect is kept by the pool and
// its connections and transactions in order to recognize the driver
// specific errors.
func New(ctx context.Context, d gorm.Dialector, dialect Dialect) (*Pool, error) {
	gdb, err := gorm.Open(d, &gorm.Config{
		Logger: newStatementLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open: %w", err)
	}
	pool := &Pool{db: gdb, dialect: dialect}
	err = pool.Conn(ctx, NoOpConnHandler)
	if err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("testing connection: %w", err)
	}
	return pool, nil
}

// ConnHandler is an alias for the repo.ConnHandler.
type ConnHandler = repo.ConnHandler

// NoOpConnHandler accepts a connection and returns immediately.
func NoOpConnHandler(context.Context, repo.Conn) error {
	return nil
}

// Conn acquires a dedicated connection from the pool and passes it
// to the f handler. The connection is released when f returns and
// the f returned error is returned without being wrapped.
func (p *Pool) Conn(ctx context.Context, f ConnHandler) error {
	return p.db.WithContext(ctx).Connection(func(c *gorm.DB) error {
		cc := &Conn{DB: c, dialect: p.dialect}
		return f(ctx, cc)
	})
}

// Dialect returns the dialect which was given to the New function.
func (p *Pool) Dialect() Dialect {
	return p.dialect
}

// Close closes all idle connections and waits for the busy ones.
func (p *Pool) Close() error {
	db, err := p.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
