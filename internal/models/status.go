package models

import "github.com/bookmarket/backend/internal/apperr"

type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "ACTIVE"
	CustomerInactive CustomerStatus = "INACTIVE"
)

type BookStatus string

const (
	BookActive    BookStatus = "ACTIVE"
	BookCancelled BookStatus = "CANCELLED"
	BookDeleted   BookStatus = "DELETED"
)

// Terminal reports whether no further status writes are permitted.
func (s BookStatus) Terminal() bool {
	return s == BookCancelled || s == BookDeleted
}

// TransitionBookStatus guards every status write on a book. CANCELLED and
// DELETED are terminal: any assignment out of them fails, even a re-assignment
// of the same value.
func TransitionBookStatus(current, next BookStatus) (BookStatus, error) {
	if current.Terminal() {
		return current, apperr.BookStatusLocked(string(current))
	}
	return next, nil
}

// SetStatus applies TransitionBookStatus to the book in place. Every mutation
// path goes through here, not only explicit status changes.
func (b *Book) SetStatus(next BookStatus) error {
	s, err := TransitionBookStatus(b.Status, next)
	if err != nil {
		return err
	}
	b.Status = s
	return nil
}
