// Package hubspot connects a user's HubSpot account through the OAuth2
// authorization-code flow and lists the contacts and companies it can see.
package hubspot

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/go-crm-connector/kvstore"
	"golang.org/x/oauth2"
)

const (
	DefaultAuthURL    = "https://app.hubspot.com/oauth/authorize"
	DefaultTokenURL   = "https://api.hubapi.com/oauth/v1/token"
	DefaultAPIBaseURL = "https://api.hubapi.com"

	// Scope is requested on every authorization.
	Scope = "crm.objects.users.read crm.objects.contacts.write crm.objects.users.write oauth crm.objects.companies.write crm.objects.companies.read crm.objects.contacts.read"

	defaultStoreTTL = 600 * time.Second
	nonceLength     = 32
)

// Config is built once at startup and handed to New.
type Config struct {
	ClientID       string
	ClientSecret   string
	RedirectURI    string
	AuthURL        string
	TokenURL       string
	APIBaseURL     string
	StateTTL       time.Duration
	CredentialsTTL time.Duration
	HTTPClient     *http.Client
}

func DefaultConfig() Config {
	return Config{
		AuthURL:        DefaultAuthURL,
		TokenURL:       DefaultTokenURL,
		APIBaseURL:     DefaultAPIBaseURL,
		StateTTL:       defaultStoreTTL,
		CredentialsTTL: defaultStoreTTL,
		HTTPClient:     http.DefaultClient,
	}
}

// Integration runs the OAuth flow and the item listing for one HubSpot app.
type Integration struct {
	cfg      Config
	oauth    *oauth2.Config
	store    kvstore.Store
	newNonce func() (string, error)
}

func New(cfg Config, store kvstore.Store) (*Integration, error) {
	defaults := DefaultConfig()
	if strings.TrimSpace(cfg.AuthURL) == "" {
		cfg.AuthURL = defaults.AuthURL
	}
	if strings.TrimSpace(cfg.TokenURL) == "" {
		cfg.TokenURL = defaults.TokenURL
	}
	if strings.TrimSpace(cfg.APIBaseURL) == "" {
		cfg.APIBaseURL = defaults.APIBaseURL
	}
	if cfg.StateTTL <= 0 {
		cfg.StateTTL = defaults.StateTTL
	}
	if cfg.CredentialsTTL <= 0 {
		cfg.CredentialsTTL = defaults.CredentialsTTL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = defaults.HTTPClient
	}
	if strings.TrimSpace(cfg.ClientID) == "" {
		return nil, fmt.Errorf("hubspot: client id is required")
	}
	if strings.TrimSpace(cfg.ClientSecret) == "" {
		return nil, fmt.Errorf("hubspot: client secret is required")
	}
	if strings.TrimSpace(cfg.RedirectURI) == "" {
		return nil, fmt.Errorf("hubspot: redirect uri is required")
	}
	if store == nil {
		return nil, fmt.Errorf("hubspot: store is required")
	}

	return &Integration{
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       strings.Fields(Scope),
			Endpoint: oauth2.Endpoint{
				// AuthStyleInHeader query-escapes id and secret before base64 encoding them.
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		store:    store,
		newNonce: generateNonce,
	}, nil
}

func stateKey(orgID, userID string) string {
	return fmt.Sprintf("state:%s:%s", orgID, userID)
}

func credentialsKey(orgID, userID string) string {
	return fmt.Sprintf("credentials:%s:%s", orgID, userID)
}

// generateNonce returns 32 random bytes as unpadded base64url.
func generateNonce() (string, error) {
	b := make([]byte, nonceLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("hubspot: generate nonce: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
