package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeBookNotFound   = "BOOK001"
	ErrCodeDuplicateTitle = "BOOK002"
	ErrCodeInvalidTitle   = "BOOK003"
	ErrCodeStoreFailure   = "BOOK004"
)

// Errors
var (
	ErrBookNotFound = errors.New("book not found")

	// ErrDuplicateTitle is the repository's translation of the unique
	// index firing. The resolver converts it into the found branch; it
	// never reaches a caller.
	ErrDuplicateTitle = errors.New("book with same normalized title already exists")
)

// BookError carries an error code for the HTTP boundary.
type BookError struct {
	Code    string
	Message string
	Err     error
}

func (e *BookError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BookError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewBookNotFoundError() *BookError {
	return &BookError{
		Code:    ErrCodeBookNotFound,
		Message: "Book not found",
		Err:     ErrBookNotFound,
	}
}

func NewInvalidTitleError(reason string) *BookError {
	return &BookError{
		Code:    ErrCodeInvalidTitle,
		Message: fmt.Sprintf("Invalid title: %s", reason),
	}
}

func NewStoreFailureError(err error) *BookError {
	return &BookError{
		Code:    ErrCodeStoreFailure,
		Message: "Catalog store unavailable",
		Err:     err,
	}
}
