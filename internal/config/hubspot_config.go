package config

import "time"

type HubSpotConfig interface {
	GetHubSpotClientID() string
	GetHubSpotClientSecret() string
	GetHubSpotRedirectURI() string
	GetHubSpotAuthURL() string
	GetHubSpotTokenURL() string
	GetHubSpotAPIBaseURL() string
	GetStateTTL() time.Duration
	GetCredentialsTTL() time.Duration
}

type HubSpot struct {
	ClientID     string `env:"HUBSPOT_CLIENT_ID,required,notEmpty"`
	ClientSecret string `env:"HUBSPOT_CLIENT_SECRET,required,notEmpty"`
	RedirectURI  string `env:"HUBSPOT_REDIRECT_URI,required,notEmpty"`
	AuthURL      string `env:"HUBSPOT_AUTH_URL" envDefault:"https://app.hubspot.com/oauth/authorize"`
	TokenURL     string `env:"HUBSPOT_TOKEN_URL" envDefault:"https://api.hubapi.com/oauth/v1/token"`
	APIBaseURL   string `env:"HUBSPOT_API_BASE_URL" envDefault:"https://api.hubapi.com"`
}

var _ HubSpotConfig = HubSpot{}

func (h HubSpot) GetHubSpotClientID() string {
	return h.ClientID
}

func (h HubSpot) GetHubSpotClientSecret() string {
	return h.ClientSecret
}

func (h HubSpot) GetHubSpotRedirectURI() string {
	return h.RedirectURI
}

func (h HubSpot) GetHubSpotAuthURL() string {
	return h.AuthURL
}

func (h HubSpot) GetHubSpotTokenURL() string {
	return h.TokenURL
}

func (h HubSpot) GetHubSpotAPIBaseURL() string {
	return h.APIBaseURL
}

func (HubSpot) GetStateTTL() time.Duration {
	return 600 * time.Second
}

func (HubSpot) GetCredentialsTTL() time.Duration {
	return 600 * time.Second
}
