// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package circulationuc contains the circulation UseCase which lends
// book copies to borrowers and takes them back.
//
// A book is either AVAILABLE or BORROWED. Borrowing moves it from the
// AVAILABLE state to the BORROWED state and inserts an active borrow
// record (with no return time), while returning does the reverse and
// sets the return time of that record. Each transition runs in one
// transaction which locks the book row before reading its state, so
// concurrent transitions of a book are serialized and exactly one of
// two concurrent borrow requests may succeed.
package circulationuc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/momeni/libweb/pkg/core/cerr"
	"github.com/momeni/libweb/pkg/core/log"
	"github.com/momeni/libweb/pkg/core/model"
	"github.com/momeni/libweb/pkg/core/repo"
)

// Failure messages which are reported to the clients.
var (
	ErrBookNotFound     = errors.New("book does not exist")
	ErrBorrowerNotFound = errors.New("borrower does not exist")
)

// UseCase represents a circulation use case. It holds a database
// connection pool, the books, borrowers, and borrow records
// repositories, and the circulation use case specific settings.
type UseCase struct {
	pool        repo.Pool
	booksrp     repo.Books
	borrowersrp repo.Borrowers
	borrowsrp   repo.Borrows

	consistency model.ConsistencyPolicy
	now         func() time.Time
}

// New instantiates a circulation use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(
	p repo.Pool,
	books repo.Books,
	borrowers repo.Borrowers,
	borrows repo.Borrows,
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{
		pool:        p,
		booksrp:     books,
		borrowersrp: borrowers,
		borrowsrp:   borrows,
	}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.consistency == model.ConsistencyPolicyInvalid {
		uc.consistency = model.ConsistencyPolicyStrict
	}
	if uc.now == nil {
		uc.now = func() time.Time {
			return time.Now().UTC()
		}
	}
	return uc, nil
}

// Borrow lends the bookID book to the borrowerID borrower.
//
// It fails with a NotFound error if the book or the borrower do not
// exist (the book is checked first) and with an AlreadyBorrowed error
// if the book is lent already. With the strict consistency policy, an
// AVAILABLE book which has an active borrow record is refused with an
// InconsistentState error. No change is persisted on failures.
func (circ *UseCase) Borrow(
	ctx context.Context, bookID, borrowerID int64,
) error {
	attrs := []slog.Attr{log.BookID(bookID), log.BorrowerID(borrowerID)}
	err := circ.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			books := circ.booksrp.Tx(tx)
			book, err := optional(books.LockForUpdate(ctx, bookID))
			if err != nil {
				return fmt.Errorf("locking book: %w", err)
			}
			borrower, err := optional(
				circ.borrowersrp.Tx(tx).Get(ctx, borrowerID),
			)
			if err != nil {
				return fmt.Errorf("finding borrower: %w", err)
			}
			switch {
			case book == nil:
				return cerr.NotFound(ErrBookNotFound)
			case borrower == nil:
				return cerr.NotFound(ErrBorrowerNotFound)
			}
			borrows := circ.borrowsrp.Tx(tx)
			if circ.consistency == model.ConsistencyPolicyStrict &&
				book.Availability == model.Available {
				active, err := borrows.FindActive(ctx, bookID)
				if err != nil {
					return fmt.Errorf("finding active borrow: %w", err)
				}
				if active != nil {
					return cerr.InconsistentState(fmt.Errorf(
						"book %d is available but has the active "+
							"borrow record %d", bookID, active.ID,
					))
				}
			}
			if err := book.Borrow(); err != nil {
				return cerr.AlreadyBorrowed(err)
			}
			err = books.SetAvailability(ctx, bookID, book.Availability)
			if err != nil {
				return fmt.Errorf("marking book as borrowed: %w", err)
			}
			_, err = borrows.Create(ctx, &model.BorrowRecord{
				BookID:     bookID,
				BorrowerID: borrowerID,
				BorrowTime: circ.now(),
			})
			if err != nil {
				return fmt.Errorf("recording the borrow: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		logFailure(ctx, "borrow failed", err, attrs...)
		return cerr.Ensure(err)
	}
	log.Info(ctx, "book is borrowed", attrs...)
	return nil
}

// Return takes the bookID book back from its borrower.
//
// It fails with a NotFound error if the book does not exist. The book
// flag and the presence of an active borrow record are two signals of
// a lent book. With the lenient consistency policy, a NotBorrowed
// error is returned if either signal says that the book is not lent.
// With the strict policy, disagreeing signals give an InconsistentState
// error and a NotBorrowed error is returned only if both signals agree
// that the book is not lent. No change is persisted on failures.
func (circ *UseCase) Return(ctx context.Context, bookID int64) error {
	err := circ.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			books := circ.booksrp.Tx(tx)
			book, err := optional(books.LockForUpdate(ctx, bookID))
			if err != nil {
				return fmt.Errorf("locking book: %w", err)
			}
			if book == nil {
				return cerr.NotFound(ErrBookNotFound)
			}
			borrows := circ.borrowsrp.Tx(tx)
			active, err := borrows.FindActive(ctx, bookID)
			if err != nil {
				return fmt.Errorf("finding active borrow: %w", err)
			}
			if err := circ.checkLent(book, active); err != nil {
				return err
			}
			if err := book.Return(); err != nil {
				return cerr.NotBorrowed(err)
			}
			err = books.SetAvailability(ctx, bookID, book.Availability)
			if err != nil {
				return fmt.Errorf("marking book as available: %w", err)
			}
			err = borrows.MarkReturned(ctx, active.ID, circ.now())
			if err != nil {
				return fmt.Errorf("recording the return: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		logFailure(ctx, "return failed", err, log.BookID(bookID))
		return cerr.Ensure(err)
	}
	log.Info(ctx, "book is returned", log.BookID(bookID))
	return nil
}

func (circ *UseCase) checkLent(
	book *model.Book, active *model.BorrowRecord,
) error {
	flagged := book.Availability == model.Borrowed
	recorded := active != nil
	if circ.consistency == model.ConsistencyPolicyStrict &&
		flagged != recorded {
		return cerr.InconsistentState(fmt.Errorf(
			"book %d is %s but its active borrow record is %s",
			book.ID, book.Availability, presence(recorded),
		))
	}
	if !flagged || !recorded {
		return cerr.NotBorrowed(model.ErrNotBorrowed)
	}
	return nil
}

func presence(ok bool) string {
	if ok {
		return "present"
	}
	return "missing"
}

// History returns the borrow records of the bookID book, oldest first.
// A missing book gives a NotFound error.
func (circ *UseCase) History(
	ctx context.Context, bookID int64,
) (rs []model.BorrowRecord, err error) {
	err = circ.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		_, err := circ.booksrp.Conn(c).Get(ctx, bookID)
		if errors.Is(err, repo.ErrNotFound) {
			return cerr.NotFound(ErrBookNotFound)
		} else if err != nil {
			return fmt.Errorf("finding book: %w", err)
		}
		rs, err = circ.borrowsrp.Conn(c).ListByBook(ctx, bookID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// optional converts a not found error to a nil value and nil error.
func optional[T any](v *T, err error) (*T, error) {
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	return v, err
}
