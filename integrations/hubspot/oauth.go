package hubspot

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/jrsteele09/go-crm-connector/internal/errors"
	"github.com/jrsteele09/go-crm-connector/kvstore"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"
)

// CloseWindowPage is served once the callback succeeds; it closes the popup the
// authorization was opened in.
const CloseWindowPage = `<html>
	<script>
		window.close();
	</script>
</html>
`

// AuthState travels through the provider as the OAuth state parameter and is
// kept in the store until the callback comes back.
type AuthState struct {
	State  string `json:"state"`
	UserID string `json:"user_id"`
	OrgID  string `json:"org_id"`
}

// AuthorizeURL starts a flow for the given user and returns the HubSpot
// authorization URL to send them to.
func (i *Integration) AuthorizeURL(ctx context.Context, userID, orgID string) (string, error) {
	if userID == "" || orgID == "" {
		return "", apperrors.InvalidRequest("user_id and org_id are required")
	}

	nonce, err := i.newNonce()
	if err != nil {
		return "", apperrors.Unexpected(err)
	}

	encoded, err := json.Marshal(AuthState{State: nonce, UserID: userID, OrgID: orgID})
	if err != nil {
		return "", apperrors.Unexpected(apperrors.Wrapf(err, "encode state"))
	}

	if err := i.store.Set(ctx, stateKey(orgID, userID), encoded, i.cfg.StateTTL); err != nil {
		return "", apperrors.Unexpected(err)
	}

	log.Debug().Str("org_id", orgID).Str("user_id", userID).Msg("hubspot authorization started")
	return i.oauth.AuthCodeURL(string(encoded)), nil
}

// HandleCallback validates the provider redirect, exchanges the code and
// stores the token response as HubSpot sent it. It returns the page to render.
func (i *Integration) HandleCallback(ctx context.Context, r *http.Request) (string, error) {
	if errParam := r.FormValue("error"); errParam != "" {
		return "", apperrors.InvalidRequest(errParam)
	}

	var state AuthState
	if err := json.Unmarshal([]byte(r.FormValue("state")), &state); err != nil {
		return "", apperrors.InvalidRequest("malformed state parameter")
	}

	key := stateKey(state.OrgID, state.UserID)
	if err := i.verifyState(ctx, key, state.State); err != nil {
		return "", err
	}

	code := r.FormValue("code")
	if code == "" {
		return "", apperrors.InvalidRequest("missing code parameter")
	}

	var tokenResponse []byte
	var g errgroup.Group
	g.Go(func() error {
		var err error
		tokenResponse, err = i.exchange(ctx, code)
		return err
	})
	g.Go(func() error {
		return i.store.Delete(ctx, key)
	})
	if err := g.Wait(); err != nil {
		return "", apperrors.Unexpected(err)
	}

	if err := i.store.Set(ctx, credentialsKey(state.OrgID, state.UserID), tokenResponse, i.cfg.CredentialsTTL); err != nil {
		return "", apperrors.Unexpected(err)
	}

	log.Info().Str("org_id", state.OrgID).Str("user_id", state.UserID).Msg("hubspot credentials stored")
	return CloseWindowPage, nil
}

func (i *Integration) verifyState(ctx context.Context, key, nonce string) error {
	saved, err := i.store.Get(ctx, key)
	if apperrors.Is(err, kvstore.ErrNotFound) {
		return apperrors.StateMismatch()
	}
	if err != nil {
		return apperrors.Unexpected(err)
	}

	var stored AuthState
	if err := json.Unmarshal(saved, &stored); err != nil {
		return apperrors.Unexpected(apperrors.Wrapf(err, "decode stored state"))
	}
	if nonce == "" || subtle.ConstantTimeCompare([]byte(stored.State), []byte(nonce)) != 1 {
		return apperrors.StateMismatch()
	}
	return nil
}

// exchange swaps the code for a token and returns the raw token endpoint body.
// Client credentials go both in the Basic auth header and in the form body.
func (i *Integration) exchange(ctx context.Context, code string) ([]byte, error) {
	recorder := &responseRecorder{base: i.cfg.HTTPClient.Transport}
	if recorder.base == nil {
		recorder.base = http.DefaultTransport
	}
	client := *i.cfg.HTTPClient
	client.Transport = recorder

	ctx = context.WithValue(ctx, oauth2.HTTPClient, &client)
	_, err := i.oauth.Exchange(ctx, code,
		oauth2.SetAuthURLParam("client_id", i.cfg.ClientID),
		oauth2.SetAuthURLParam("client_secret", i.cfg.ClientSecret),
	)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if apperrors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			return nil, apperrors.Upstream(retrieveErr.Response.StatusCode, fmt.Sprintf("token exchange failed: %s", retrieveErr.Body))
		}
		return nil, apperrors.Wrapf(err, "token exchange")
	}

	if !json.Valid(recorder.body) {
		return nil, fmt.Errorf("token exchange: response is not JSON")
	}
	return recorder.body, nil
}

// responseRecorder keeps a copy of the last response body it carried.
type responseRecorder struct {
	base http.RoundTripper
	body []byte
}

func (t *responseRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	_ = resp.Body.Close()
	if err != nil {
		return nil, apperrors.Wrapf(err, "read %s", req.URL.Path)
	}
	t.body = body
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}
