// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package tables contains the GORM models of the library tables.
// They are shared by the repositories (for queries) and the schemarp
// package (for the tables creation) and are converted from/to the
// pkg/core/model types at the repositories boundary.
package tables

import (
	"time"

	"github.com/momeni/libweb/pkg/core/model"
)

// Index and constraint names, as reported by the unique violations.
const (
	BorrowersNameKey     = "borrowers_name_key"
	BorrowersEmailKey    = "borrowers_email_key"
	BorrowsActiveBookKey = "borrows_active_book_key"
)

// Book is a row of the books table. Copies of a book share the ISBN.
type Book struct {
	ID           int64  `gorm:"primaryKey;autoIncrement;column:id"`
	ISBN         string `gorm:"not null;index:books_isbn_idx;column:isbn"`
	Title        string `gorm:"not null;column:title"`
	Author       string `gorm:"not null;column:author"`
	Availability int    `gorm:"not null;default:0;column:availability"`
}

func (*Book) TableName() string {
	return "books"
}

func (b *Book) Model() *model.Book {
	return &model.Book{
		ID:           b.ID,
		ISBN:         b.ISBN,
		Title:        b.Title,
		Author:       b.Author,
		Availability: model.Availability(b.Availability),
	}
}

// FromBook converts b to a row, ignoring its ID.
func FromBook(b *model.Book) *Book {
	return &Book{
		ISBN:         b.ISBN,
		Title:        b.Title,
		Author:       b.Author,
		Availability: int(b.Availability),
	}
}

// Borrower is a row of the borrowers table.
type Borrower struct {
	ID    int64  `gorm:"primaryKey;autoIncrement;column:id"`
	Name  string `gorm:"not null;uniqueIndex:borrowers_name_key;column:name"`
	Email string `gorm:"not null;uniqueIndex:borrowers_email_key;column:email"`
}

func (*Borrower) TableName() string {
	return "borrowers"
}

func (b *Borrower) Model() *model.Borrower {
	return &model.Borrower{ID: b.ID, Name: b.Name, Email: b.Email}
}

// FromBorrower converts b to a row, ignoring its ID.
func FromBorrower(b *model.Borrower) *Borrower {
	return &Borrower{Name: b.Name, Email: b.Email}
}

// Borrow is a row of the borrows table. At most one row per book may
// have a NULL return_time, as enforced by the borrows_active_book_key
// partial unique index.
type Borrow struct {
	ID         int64      `gorm:"primaryKey;autoIncrement;column:id"`
	BookID     int64      `gorm:"not null;index:borrows_book_id_idx;index:borrows_active_book_key,unique,where:return_time IS NULL;column:book_id"`
	BorrowerID int64      `gorm:"not null;index:borrows_borrower_id_idx;column:borrower_id"`
	BorrowTime time.Time  `gorm:"not null;column:borrow_time"`
	ReturnTime *time.Time `gorm:"column:return_time"`

	Book     *Book     `gorm:"foreignKey:BookID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Borrower *Borrower `gorm:"foreignKey:BorrowerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (*Borrow) TableName() string {
	return "borrows"
}

func (b *Borrow) Model() *model.BorrowRecord {
	return &model.BorrowRecord{
		ID:         b.ID,
		BookID:     b.BookID,
		BorrowerID: b.BorrowerID,
		BorrowTime: b.BorrowTime,
		ReturnTime: b.ReturnTime,
	}
}

// FromBorrowRecord converts r to a row, ignoring its ID.
func FromBorrowRecord(r *model.BorrowRecord) *Borrow {
	return &Borrow{
		BookID:     r.BookID,
		BorrowerID: r.BorrowerID,
		BorrowTime: r.BorrowTime,
		ReturnTime: r.ReturnTime,
	}
}

// All lists the models in their creation order.
func All() []any {
	return []any{&Book{}, &Borrower{}, &Borrow{}}
}
