// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package booksrs realizes the books resource, allowing the books
// registration and listing REST APIs to be accepted and delegated to
// the books use cases. It also serves the borrow history of a book.
package booksrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/momeni/libweb/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/libweb/pkg/core/model"
	"github.com/momeni/libweb/pkg/core/usecase/booksuc"
	"github.com/momeni/libweb/pkg/core/usecase/circulationuc"
)

type resource struct {
	books       *booksuc.UseCase
	circulation *circulationuc.UseCase
}

// Register instantiates a resource adapting the books and circulation
// use case instances with the relevant REST APIs including:
//  1. POST request to /books in order to register a book copy,
//  2. GET request to /books in order to list all book copies,
//  3. GET request to /books/:bookId/borrows in order to fetch the
//     borrow records of a book copy.
func Register(
	r *gin.RouterGroup,
	books *booksuc.UseCase,
	circulation *circulationuc.UseCase,
) {
	rs := &resource{books: books, circulation: circulation}
	r.POST("books", rs.RegisterBook)
	r.GET("books", rs.ListBooks)
	r.GET("books/:bookId/borrows", rs.ListBorrows)
}

type registerBookReq struct {
	ISBN         string `json:"isbn" binding:"required,max=32"`
	Title        string `json:"title" binding:"required,max=255"`
	Author       string `json:"author" binding:"required,max=255"`
	Availability *int   `json:"availability" binding:"omitempty,oneof=0 1"`
}

func (rs *resource) RegisterBook(c *gin.Context) {
	req := &registerBookReq{}
	if !serdser.Bind(c, req, binding.JSON) {
		return
	}
	b := &model.Book{ISBN: req.ISBN, Title: req.Title, Author: req.Author}
	if req.Availability != nil {
		b.Availability = model.Availability(*req.Availability)
	}
	book, err := rs.books.Register(c, b)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (rs *resource) ListBooks(c *gin.Context) {
	books, err := rs.books.List(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	if books == nil {
		books = []model.Book{}
	}
	c.JSON(http.StatusOK, books)
}

type bookURI struct {
	BookID int64 `uri:"bookId" binding:"required,gt=0"`
}

func (rs *resource) ListBorrows(c *gin.Context) {
	uri := &bookURI{}
	if !serdser.BindURI(c, uri) {
		return
	}
	records, err := rs.circulation.History(c, uri.BookID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	if records == nil {
		records = []model.BorrowRecord{}
	}
	c.JSON(http.StatusOK, records)
}
