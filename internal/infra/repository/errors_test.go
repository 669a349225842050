package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/httperr"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code string
	}{
		{"insufficient privilege", &pgconn.PgError{Code: "42501", Message: "permission denied for table appointments"}, httperr.CodePermissionDenied},
		{"row level security", &pgconn.PgError{Code: "P0001", Message: `new row violates row-level security policy for table "appointments"`}, httperr.CodePermissionDenied},
		{"wrapped pg error", fmt.Errorf("update: %w", &pgconn.PgError{Code: "42501"}), httperr.CodePermissionDenied},
		{"policy text only", errors.New("blocked by policy"), httperr.CodePermissionDenied},
		{"check violation", &pgconn.PgError{Code: "23514", Message: "violates check constraint"}, httperr.CodeValidation},
		{"bad date", &pgconn.PgError{Code: "22007", Message: "invalid input syntax for type date"}, httperr.CodeValidation},
		{"record not found", gorm.ErrRecordNotFound, httperr.CodeNotFound},
		{"deadline", context.DeadlineExceeded, httperr.CodeTransient},
		{"serialization", &pgconn.PgError{Code: "40001"}, httperr.CodeTransient},
		{"unknown", errors.New("connection reset by peer"), httperr.CodeTransient},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.err)
			if code := httperr.CodeOf(got); code != tc.code {
				t.Fatalf("code = %s, want %s", code, tc.code)
			}
			if !errors.Is(got, tc.err) {
				t.Fatalf("cause lost")
			}
		})
	}
}

func TestClassifyNil(t *testing.T) {
	if classify(nil) != nil {
		t.Fatalf("nil should stay nil")
	}
}
