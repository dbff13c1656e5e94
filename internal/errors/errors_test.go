package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jrsteele09/go-crm-connector/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		kind   error
		status int
		detail string
	}{
		{"invalid request", errors.InvalidRequest("access_denied"), errors.ErrInvalidRequest, http.StatusBadRequest, "access_denied"},
		{"state mismatch", errors.StateMismatch(), errors.ErrStateMismatch, http.StatusBadRequest, "State does not match."},
		{"not found", errors.NotFound("No credentials found."), errors.ErrNotFound, http.StatusBadRequest, "No credentials found."},
		{"upstream", errors.Upstream(http.StatusForbidden, "companies"), errors.ErrUpstream, http.StatusForbidden, "companies"},
		{"unexpected", errors.Unexpected(stderrors.New("boom")), errors.ErrUnexpected, http.StatusInternalServerError, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, errors.Is(tt.err, tt.kind))
			require.Equal(t, tt.status, errors.StatusCode(tt.err))
			require.Equal(t, tt.detail, errors.Detail(tt.err))
		})
	}
}

func TestUnexpectedKeepsClassifiedErrors(t *testing.T) {
	upstream := errors.Upstream(http.StatusUnauthorized, "expired token")
	wrapped := fmt.Errorf("list items: %w", upstream)

	err := errors.Unexpected(wrapped)
	require.Equal(t, http.StatusUnauthorized, errors.StatusCode(err))
	require.True(t, errors.Is(err, errors.ErrUpstream))
	require.Nil(t, errors.Unexpected(nil))
}

func TestUnexpectedUnwrapsCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := errors.Unexpected(cause)
	require.True(t, errors.Is(err, cause))
	require.Equal(t, "unexpected error: connection refused", err.Error())
}

func TestStatusCodeDefaults(t *testing.T) {
	require.Equal(t, http.StatusInternalServerError, errors.StatusCode(stderrors.New("plain")))
	require.Equal(t, "plain", errors.Detail(stderrors.New("plain")))
}

func TestWrapf(t *testing.T) {
	require.Nil(t, errors.Wrapf(nil, "context"))
	err := errors.Wrapf(errors.ErrNotFound, "credentials %s", "org:user")
	require.EqualError(t, err, "credentials org:user: not found")
	require.True(t, errors.Is(err, errors.ErrNotFound))
}
