package main

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jrsteele09/go-crm-connector/internal/config"
	"github.com/jrsteele09/go-crm-connector/kvstore"
	"github.com/stretchr/testify/require"
)

func TestHubSpotConfigFromEnv(t *testing.T) {
	c := config.HubSpot{
		ClientID:     "client-1",
		ClientSecret: "secret-1",
		RedirectURI:  "http://localhost:8000/integrations/hubspot/oauth2callback",
		AuthURL:      "https://app.hubspot.com/oauth/authorize",
		TokenURL:     "https://api.hubapi.com/oauth/v1/token",
		APIBaseURL:   "https://api.hubapi.com",
	}

	hc := hubspotConfig(c)
	require.Equal(t, "client-1", hc.ClientID)
	require.Equal(t, "secret-1", hc.ClientSecret)
	require.Equal(t, c.RedirectURI, hc.RedirectURI)
	require.Equal(t, c.TokenURL, hc.TokenURL)
	require.Equal(t, 600*time.Second, hc.StateTTL)
	require.Equal(t, 600*time.Second, hc.CredentialsTTL)
}

func TestNewStoreInMemory(t *testing.T) {
	store, closeStore, err := newStore(context.Background(), config.Redis{})
	require.NoError(t, err)
	defer closeStore()
	require.IsType(t, &kvstore.InMemoryStore{}, store)
}

func TestNewStoreRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	store, closeStore, err := newStore(context.Background(), config.Redis{Addr: mr.Addr()})
	require.NoError(t, err)
	defer closeStore()
	require.IsType(t, &kvstore.RedisStore{}, store)

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "state:org-1:user-1", []byte("v"), time.Minute))
	require.True(t, mr.Exists("state:org-1:user-1"))
}
