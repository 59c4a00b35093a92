// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package circulationrs realizes the borrow and return REST APIs.
// Both APIs take the book identifier as a path param. The bookId query
// param is accepted for compatibility with the older clients and must
// match the path param if it is given.
package circulationrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/momeni/libweb/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/libweb/pkg/core/usecase/circulationuc"
)

// Messages of the successful borrow and return responses.
const (
	BorrowedMsg = "Book borrowed successfully."
	ReturnedMsg = "Book returned successfully."
)

type resource struct {
	circulation *circulationuc.UseCase
}

// Register adapts the circulation use case with these REST APIs:
//  1. POST request to /borrow/:bookId?borrowerId=...
//     in order to lend a book copy to a borrower,
//  2. POST request to /return/:bookId
//     in order to take back a lent book copy.
func Register(r *gin.RouterGroup, circulation *circulationuc.UseCase) {
	rs := &resource{circulation: circulation}
	r.POST("borrow/:bookId", rs.Borrow)
	r.POST("return/:bookId", rs.Return)
}

type bookURI struct {
	BookID int64 `uri:"bookId" binding:"required,gt=0"`
}

type returnQuery struct {
	BookID *int64 `form:"bookId" binding:"omitempty,gt=0"`
}

type borrowQuery struct {
	BookID     *int64 `form:"bookId" binding:"omitempty,gt=0"`
	BorrowerID int64  `form:"borrowerId" binding:"required,gt=0"`
}

// dserBookID binds the path param and the req query params, returning
// the book identifier and true on success. The qBookID must point to
// the bookId field of req.
func dserBookID(c *gin.Context, req any, qBookID **int64) (int64, bool) {
	uri := &bookURI{}
	if !serdser.BindURI(c, uri) || !serdser.Bind(c, req, binding.Query) {
		return 0, false
	}
	var errs map[string][]string
	if !serdser.Assert(
		&errs, *qBookID == nil || **qBookID == uri.BookID, "bookId",
		"Query param bookId does not match the path param.",
	) {
		c.JSON(http.StatusBadRequest, errs)
		return 0, false
	}
	return uri.BookID, true
}

func (rs *resource) Borrow(c *gin.Context) {
	q := &borrowQuery{}
	bookID, ok := dserBookID(c, q, &q.BookID)
	if !ok {
		return
	}
	if err := rs.circulation.Borrow(c, bookID, q.BorrowerID); err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Detail(c, BorrowedMsg)
}

func (rs *resource) Return(c *gin.Context) {
	q := &returnQuery{}
	bookID, ok := dserBookID(c, q, &q.BookID)
	if !ok {
		return
	}
	if err := rs.circulation.Return(c, bookID); err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Detail(c, ReturnedMsg)
}
