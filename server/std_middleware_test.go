package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChainMiddlewareOrder(t *testing.T) {
	var calls []string
	tag := func(name string) func(http.HandlerFunc) http.HandlerFunc {
		return func(next http.HandlerFunc) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				calls = append(calls, name)
				next(w, r)
			}
		}
	}

	h := ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, "handler")
	}, tag("first"), tag("second"))
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"first", "second", "handler"}, calls)
}

func TestRecoverMiddleware(t *testing.T) {
	s := &Server{}
	h := ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}, s.LoggingMiddleware, s.RecoverMiddleware)

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "internal server error", body.Detail)
}

func TestLoggingMiddlewareKeepsRequestID(t *testing.T) {
	s := &Server{}
	h := ChainMiddleware(noContent, s.LoggingMiddleware)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	h(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "req-123", rec.Header().Get(requestIDHeader))
}
