package apperr

import (
	"fmt"
	"net/http"
)

// Error is a domain error with a stable internal code. It marshals directly
// into the wire shape handlers return.
type Error struct {
	HTTPCode     int    `json:"httpCode"`
	Message      string `json:"message"`
	InternalCode string `json:"internalCode"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.InternalCode, e.Message)
}

const (
	CodeInternal         = "ML-000"
	CodeValidation       = "ML-001"
	CodeBookNotFound     = "ML-101"
	CodeBookStatusLocked = "ML-102"
	CodeCustomerNotFound = "ML-201"
)

func Internal() *Error {
	return &Error{
		HTTPCode:     http.StatusInternalServerError,
		Message:      "Internal server error",
		InternalCode: CodeInternal,
	}
}

func Validation(msg string) *Error {
	return &Error{
		HTTPCode:     http.StatusUnprocessableEntity,
		Message:      msg,
		InternalCode: CodeValidation,
	}
}

func BookNotFound(id int) *Error {
	return &Error{
		HTTPCode:     http.StatusNotFound,
		Message:      fmt.Sprintf("Book [%d] not exists.", id),
		InternalCode: CodeBookNotFound,
	}
}

// BookStatusLocked reports a rejected status write; the message carries the
// book's current status.
func BookStatusLocked(status string) *Error {
	return &Error{
		HTTPCode:     http.StatusBadRequest,
		Message:      fmt.Sprintf("You cannot update a book with status [%s].", status),
		InternalCode: CodeBookStatusLocked,
	}
}

func CustomerNotFound(id int) *Error {
	return &Error{
		HTTPCode:     http.StatusNotFound,
		Message:      fmt.Sprintf("Customer [%d] not exists.", id),
		InternalCode: CodeCustomerNotFound,
	}
}
