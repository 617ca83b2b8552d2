package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"gorm.io/gorm"
)

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("load card: %w", ErrNotFound), http.StatusNotFound},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"duplicate", ErrDuplicate, http.StatusBadRequest},
		{"credentials", ErrInvalidCredentials, http.StatusBadRequest},
		{"rate limit", ErrRateLimitExceeded, http.StatusTooManyRequests},
		{"app error code wins", New(http.StatusNotFound, "Student not found", ErrBadRequest), http.StatusNotFound},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MapErrorToStatus(tc.err); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestFromStorage(t *testing.T) {
	if !errors.Is(FromStorage(gorm.ErrRecordNotFound), ErrNotFound) {
		t.Fatalf("expected record not found to map to ErrNotFound")
	}
	if !errors.Is(FromStorage(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)), ErrDuplicate) {
		t.Fatalf("expected duplicated key to map to ErrDuplicate")
	}
	if FromStorage(nil) != nil {
		t.Fatalf("expected nil to stay nil")
	}
	other := errors.New("boom")
	if FromStorage(other) != other {
		t.Fatalf("expected unknown errors to pass through")
	}
}

func TestAppErrorMessage(t *testing.T) {
	err := New(http.StatusBadRequest, "Admin already exists", ErrDuplicate)
	if err.Error() != "Admin already exists" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected AppError to unwrap to its sentinel")
	}
}
