// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/momeni/libweb/pkg/adapter/config"
	"github.com/momeni/libweb/pkg/adapter/restful/gin/booksrs"
	"github.com/momeni/libweb/pkg/adapter/restful/gin/borrowersrs"
	"github.com/momeni/libweb/pkg/adapter/restful/gin/circulationrs"
	"github.com/momeni/libweb/pkg/core/repo"
)

// Register instantiates relevant repositories and use cases based on
// the c configuration settings. The p connections pool is passed to
// the use case instances, so they may acquire/release connections
// and transactions on demand. These connections/transactions will be
// passed to the repositories later in order to run relevant queries on
// them and accomplish those use cases. Each use case package is named
// like booksuc and each repository package is named like booksrp.
// Register instantiates a series of "resource" structs, from packages
// which are named like booksrs, in order to adapt the use cases
// interfaces with the REST APIs. These resources are registered as
// request handlers under the /api group of the e gin-gonic engine.
func Register(e *gin.Engine, p repo.Pool, c *config.Config) error {
	books := c.NewBooksUseCase(p)
	borrowers := c.NewBorrowersUseCase(p)
	circulation, err := c.NewCirculationUseCase(p)
	if err != nil {
		return fmt.Errorf("creating circulation use case: %w", err)
	}
	r := e.Group("/api")
	booksrs.Register(r, books, circulation)
	borrowersrs.Register(r, borrowers)
	circulationrs.Register(r, circulation)
	return nil
}
