package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/httperr"
)

const (
	sqlStateInsufficientPrivilege = "42501"
	sqlStateClassDataException    = "22"
	sqlStateCheckViolation        = "23514"
	sqlStateNotNullViolation      = "23502"
)

const msgPermissionDenied = "Permission denied. Please make sure you are logged in."

// classify maps driver errors onto the error taxonomy.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.Wrap(httperr.CodeNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == sqlStateInsufficientPrivilege || mentionsPolicy(pgErr.Message):
			return httperr.BusinessError{Code: httperr.CodePermissionDenied, Message: msgPermissionDenied, Err: err}
		case pgErr.Code == sqlStateCheckViolation,
			pgErr.Code == sqlStateNotNullViolation,
			strings.HasPrefix(pgErr.Code, sqlStateClassDataException):
			return httperr.BusinessError{Code: httperr.CodeValidation, Message: pgErr.Message, Err: err}
		}
		return httperr.Wrap(httperr.CodeTransient, err)
	}

	if mentionsPolicy(err.Error()) {
		return httperr.BusinessError{Code: httperr.CodePermissionDenied, Message: msgPermissionDenied, Err: err}
	}
	return httperr.Wrap(httperr.CodeTransient, err)
}

func mentionsPolicy(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "policy")
}
