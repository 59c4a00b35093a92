// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "time"

// Borrower is a registered library member. Both of the Name and Email
// fields are unique among all borrowers. Borrowers are immutable after
// their registration.
type Borrower struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// BorrowRecord keeps one lending event of a book copy. A nil ReturnTime
// indicates an active record, i.e., the copy is still lent.
// At most one active record may exist per book at any time.
type BorrowRecord struct {
	ID         int64      `json:"id"`
	BookID     int64      `json:"bookId"`
	BorrowerID int64      `json:"borrowerId"`
	BorrowTime time.Time  `json:"borrowTime"`
	ReturnTime *time.Time `json:"returnTime"`
}

// Active reports if the record is still outstanding.
func (r *BorrowRecord) Active() bool {
	return r.ReturnTime == nil
}
