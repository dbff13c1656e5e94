package server

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/jrsteele09/go-crm-connector/internal/errors"
	"github.com/rs/zerolog/log"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

// errorResponse is the body of every failed API call
type errorResponse struct {
	Detail string `json:"detail"`
}

// IndexHandler answers liveness probes
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"Ping": "Pong"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("path", r.URL.Path).Msg("request rejected")
	}
	writeJSON(w, status, errorResponse{Detail: apperrors.Detail(err)})
}

// requiredFormValues reads the named form fields, failing with InvalidRequest
// when any of them is blank.
func requiredFormValues(r *http.Request, names ...string) ([]string, error) {
	if err := r.ParseForm(); err != nil {
		return nil, apperrors.InvalidRequest("invalid form data")
	}
	values := make([]string, len(names))
	for i, name := range names {
		values[i] = r.FormValue(name)
		if values[i] == "" {
			return nil, apperrors.InvalidRequest(name + " is required")
		}
	}
	return values, nil
}
