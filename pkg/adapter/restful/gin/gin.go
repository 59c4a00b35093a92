// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gin wraps the gin-gonic web framework, so the libweb engine
// is created with the same middlewares in the main command and tests.
// Every engine tags the requests with an identifier which is logged by
// the access logger and the use cases.
package gin

import (
	"log/slog"

	"github.com/FabienMht/ginslog/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/momeni/libweb/pkg/core/log"
)

type (
	HandlerFunc = gin.HandlerFunc
	Engine      = gin.Engine
	H           = gin.H
)

// RequestIDHeader is the request and response header which carries
// the request identifier.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLen = 128

// New creates an engine with the RequestID middleware followed by
// the given middlewares. The gin.Context instances which are passed
// to the use cases fall back to their request contexts, so values such
// as the request identifier reach the logs.
func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.ContextWithFallback = true
	e.Use(RequestID())
	e.Use(middlewares...)
	return e
}

// Logger returns an access logger middleware which writes into the
// default slog logger.
func Logger() HandlerFunc {
	return logger.New(slog.Default())
}

// Recovery returns a middleware which converts panics to 500 responses.
func Recovery() HandlerFunc {
	return gin.Recovery()
}

// RequestID returns a middleware which takes the request identifier
// from the X-Request-ID header (or generates a random UUID if it was
// missing or too long) and stores it in the request context and the
// response headers.
func RequestID() HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		ctx := log.WithRequestID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
