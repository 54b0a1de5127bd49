package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestToDomainError(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", NewIllegalTransition("completed", "cancelled", nil))
	got := ToDomainError(wrapped)
	if got.Code != CodeIllegalTransition || got.HTTPStatus != http.StatusConflict {
		t.Errorf("ToDomainError() = %+v", got)
	}
	if got.Details["from"] != "completed" || got.Details["to"] != "cancelled" {
		t.Errorf("Details = %v", got.Details)
	}

	plain := ToDomainError(errors.New("boom"))
	if plain.Code != CodeInternal || plain.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("ToDomainError(plain) = %+v", plain)
	}
	if ToDomainError(nil) != nil {
		t.Error("ToDomainError(nil) should be nil")
	}
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		code   string
		status int
	}{
		{NewDuplicateEmail("a@b.com"), CodeDuplicateEmail, http.StatusConflict},
		{NewDuplicateDeveloperName("Alice Dev"), CodeDuplicateName, http.StatusConflict},
		{NewInvalidCredentials(), CodeInvalidCredentials, http.StatusUnauthorized},
		{NewInvalidSecret(), CodeInvalidSecret, http.StatusForbidden},
		{NewNotFound("idea", nil), CodeNotFound, http.StatusNotFound},
		{NewValidationError("bad", nil), CodeValidation, http.StatusBadRequest},
		{NewPersistenceError(errors.New("down")), CodePersistence, http.StatusServiceUnavailable},
		{NewRateLimited("slow down"), CodeRateLimited, http.StatusTooManyRequests},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if !HasCode(tt.err, tt.code) {
				t.Errorf("HasCode(%v, %s) = false", tt.err, tt.code)
			}
			if got := ToDomainError(tt.err).HTTPStatus; got != tt.status {
				t.Errorf("HTTPStatus = %d, want %d", got, tt.status)
			}
		})
	}
}

func TestCodeForStatus(t *testing.T) {
	if got := CodeForStatus(http.StatusNotFound); got != CodeNotFound {
		t.Errorf("CodeForStatus(404) = %s", got)
	}
	if got := CodeForStatus(http.StatusTeapot); got != CodeInternal {
		t.Errorf("CodeForStatus(418) = %s", got)
	}
}
