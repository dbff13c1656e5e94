package hubspot

import (
	"context"
	"encoding/json"

	apperrors "github.com/jrsteele09/go-crm-connector/internal/errors"
	"github.com/jrsteele09/go-crm-connector/kvstore"
	"github.com/rs/zerolog/log"
)

const noCredentialsDetail = "No credentials found."

// GetCredentials returns the token response stored for the user, byte for
// byte, and removes it; a second call fails with NotFound until the flow runs
// again.
func (i *Integration) GetCredentials(ctx context.Context, userID, orgID string) (json.RawMessage, error) {
	if userID == "" || orgID == "" {
		return nil, apperrors.InvalidRequest("user_id and org_id are required")
	}

	key := credentialsKey(orgID, userID)
	raw, err := i.store.Get(ctx, key)
	if apperrors.Is(err, kvstore.ErrNotFound) || (err == nil && len(raw) == 0) {
		return nil, apperrors.NotFound(noCredentialsDetail)
	}
	if err != nil {
		return nil, apperrors.Unexpected(err)
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, apperrors.Unexpected(apperrors.Wrapf(err, "decode credentials"))
	}
	if len(fields) == 0 {
		return nil, apperrors.NotFound(noCredentialsDetail)
	}

	if err := i.store.Delete(ctx, key); err != nil {
		return nil, apperrors.Unexpected(err)
	}

	log.Debug().Str("org_id", orgID).Str("user_id", userID).Msg("hubspot credentials consumed")
	return json.RawMessage(raw), nil
}

// accessToken reads the bearer token out of a credentials object. Every other
// field is left alone.
func accessToken(credentials string) (string, error) {
	var creds struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal([]byte(credentials), &creds); err != nil {
		return "", apperrors.Wrapf(err, "decode credentials")
	}
	return creds.AccessToken, nil
}
