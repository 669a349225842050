package httperr

import (
	"errors"
	"fmt"
)

// ===============================
// Error taxonomy
// ===============================

const (
	CodeFetchFailed      = "fetch_failed"
	CodeMalformedEvent   = "malformed_event"
	CodePermissionDenied = "permission_denied"
	CodeNotFound         = "not_found"
	CodeTransient        = "transient_error"
	CodeValidation       = "validation_error"
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e BusinessError) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Code + ": " + e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Code + ": " + e.Message
	case e.Err != nil:
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Err
}

func New(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func Newf(code, format string, args ...any) error {
	return BusinessError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(code string, err error) error {
	return BusinessError{Code: code, Err: err}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// CodeOf returns the taxonomy code of err, or transient_error for anything
// that was never classified.
func CodeOf(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return CodeTransient
}

// MessageOf returns the user-facing part of err.
func MessageOf(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		if be.Message != "" {
			return be.Message
		}
		if be.Err != nil {
			return be.Err.Error()
		}
		return be.Code
	}
	return err.Error()
}

// Classify leaves business errors untouched and wraps anything else under
// fallback.
func Classify(err error, fallback string) error {
	if err == nil {
		return nil
	}
	var be BusinessError
	if errors.As(err, &be) {
		return err
	}
	return Wrap(fallback, err)
}
