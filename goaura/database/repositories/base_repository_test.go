package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("connection reset"), false},
		{"duplicate key text", errors.New(`ERROR: duplicate key value violates unique constraint "idx_check_ins_wallet_day" (SQLSTATE=23505)`), true},
		{"wrapped duplicate key text", fmt.Errorf("insert check-in: %w", errors.New("duplicate key value violates unique constraint")), true},
		{"no rows", sql.ErrNoRows, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUniqueViolation(tt.err); got != tt.want {
				t.Errorf("IsUniqueViolation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestHandleError(t *testing.T) {
	br := &BaseRepository{defaultTimeout: defaultQueryTimeout}

	t.Run("nil passes through", func(t *testing.T) {
		if err := br.HandleError("GetByWallet", "account", nil); err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
	})

	t.Run("no rows becomes not found", func(t *testing.T) {
		err := br.HandleError("GetByWallet", "account", sql.ErrNoRows)
		if !IsNotFound(err) {
			t.Fatalf("expected NotFoundError, got %T: %v", err, err)
		}
	})

	t.Run("other errors are wrapped and unwrappable", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := br.HandleError("GetByWallet", "account", cause)

		var repoErr *RepositoryError
		if !errors.As(err, &repoErr) {
			t.Fatalf("expected RepositoryError, got %T: %v", err, err)
		}
		if repoErr.Operation != "GetByWallet" || repoErr.Entity != "account" {
			t.Errorf("unexpected error context: %+v", repoErr)
		}
		if !errors.Is(err, cause) {
			t.Error("wrapped error should unwrap to the original cause")
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(&NotFoundError{Entity: "account", ID: "0xabc"}) {
		t.Error("expected NotFoundError to match")
	}
	if !IsNotFound(fmt.Errorf("lookup: %w", &NotFoundError{Entity: "account", ID: "0xabc"})) {
		t.Error("expected wrapped NotFoundError to match")
	}
	if IsNotFound(errors.New("not found")) {
		t.Error("plain text error should not match")
	}
	if IsNotFound(nil) {
		t.Error("nil should not match")
	}
}
