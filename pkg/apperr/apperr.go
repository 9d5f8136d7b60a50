package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error so the HTTP layer can pick a status code
// without string matching.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindNotFound
	KindConflict
	KindAlreadyRedeemed
	KindVoided
	KindPaymentIncomplete
	KindInvalidState
)

// Error carries a kind, an operator-facing message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func InvalidInput(message string) *Error {
	return New(KindInvalidInput, message)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func Conflict(message string) *Error {
	return New(KindConflict, message)
}

func AlreadyRedeemed(message string) *Error {
	return New(KindAlreadyRedeemed, message)
}

func Voided(message string) *Error {
	return New(KindVoided, message)
}

func PaymentIncomplete(message string) *Error {
	return New(KindPaymentIncomplete, message)
}

func InvalidState(message string) *Error {
	return New(KindInvalidState, message)
}

func Internal(message string, err error) *Error {
	return Wrap(KindInternal, message, err)
}

// KindOf extracts the kind from anywhere in the error chain. Unclassified
// errors are internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf returns the operator-facing message of a classified error, or
// the empty string for unclassified ones.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return ""
}
