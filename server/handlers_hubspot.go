package server

import (
	"net/http"
)

// HubSpotAuthorizeHandler returns the authorization URL the frontend opens in a popup
func (s *Server) HubSpotAuthorizeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values, err := requiredFormValues(r, "user_id", "org_id")
		if err != nil {
			writeError(w, r, err)
			return
		}

		authURL, err := s.hubspot.AuthorizeURL(r.Context(), values[0], values[1])
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, authURL)
	}
}

// HubSpotCallbackHandler is the OAuth redirect target
func (s *Server) HubSpotCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := s.hubspot.HandleCallback(r.Context(), r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", contentTypeHTML)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(page))
	}
}

// HubSpotCredentialsHandler hands out, once, the credentials stored by the callback
func (s *Server) HubSpotCredentialsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values, err := requiredFormValues(r, "user_id", "org_id")
		if err != nil {
			writeError(w, r, err)
			return
		}

		creds, err := s.hubspot.GetCredentials(r.Context(), values[0], values[1])
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, creds)
	}
}

// HubSpotLoadHandler lists the contacts and companies visible to the given credentials
func (s *Server) HubSpotLoadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values, err := requiredFormValues(r, "credentials")
		if err != nil {
			writeError(w, r, err)
			return
		}

		items, err := s.hubspot.ListItems(r.Context(), values[0])
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}
