package hubspot_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jrsteele09/go-crm-connector/integrations"
	"github.com/jrsteele09/go-crm-connector/integrations/hubspot"
	apperrors "github.com/jrsteele09/go-crm-connector/internal/errors"
	"github.com/stretchr/testify/require"
)

const testCredentials = `{"access_token":"` + testAccessToken + `","refresh_token":"refresh-1","expires_in":1800}`

func TestListItems(t *testing.T) {
	f := setupTestFixture(t)
	f.provider.contactsBody = `{"results":[
		{"id":"1","properties":{"firstname":"A","lastname":"B","email":"a@b.com","createdate":"t1"},"updatedAt":"t2"},
		{"id":"2","properties":{"firstname":"Solo","lastname":null,"email":null,"createdate":"t3"},"updatedAt":"t4"}
	]}`
	f.provider.companiesBody = `{"results":[
		{"id":"10","properties":{"name":"Acme","domain":"acme.com","createdate":"t5"},"updatedAt":"t6"}
	]}`

	items, err := f.integration.ListItems(context.Background(), testCredentials)
	require.NoError(t, err)
	require.Equal(t, []integrations.IntegrationItem{
		{ID: "1", Type: hubspot.ObjectContacts, Name: "A B", ParentID: "a@b.com", CreationTime: "t1", LastModifiedTime: "t2"},
		{ID: "2", Type: hubspot.ObjectContacts, Name: "Solo ", ParentID: "", CreationTime: "t3", LastModifiedTime: "t4"},
		{ID: "10", Type: hubspot.ObjectCompanies, Name: "Acme", ParentID: "acme.com", CreationTime: "t5", LastModifiedTime: "t6"},
	}, items)

	f.provider.mu.Lock()
	defer f.provider.mu.Unlock()
	require.Equal(t, "Bearer "+testAccessToken, f.provider.objectRequests[hubspot.ObjectContacts])
	require.Equal(t, "Bearer "+testAccessToken, f.provider.objectRequests[hubspot.ObjectCompanies])
}

func TestListItemsReadsOnlyAccessToken(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.integration.ListItems(context.Background(),
		`{"access_token":"`+testAccessToken+`","expires_in":"1800","hub_id":42,"scopes":["oauth"]}`)
	require.NoError(t, err)

	f.provider.mu.Lock()
	defer f.provider.mu.Unlock()
	require.Equal(t, "Bearer "+testAccessToken, f.provider.objectRequests[hubspot.ObjectContacts])
}

func TestListItemsEmpty(t *testing.T) {
	f := setupTestFixture(t)

	items, err := f.integration.ListItems(context.Background(), testCredentials)
	require.NoError(t, err)
	require.NotNil(t, items)
	require.Empty(t, items)
}

func TestListItemsUpstreamFailure(t *testing.T) {
	tests := []struct {
		name            string
		contactsStatus  int
		companiesStatus int
		wantStatus      int
	}{
		{"companies forbidden", http.StatusOK, http.StatusForbidden, http.StatusForbidden},
		{"companies forbidden, contacts failing too", http.StatusInternalServerError, http.StatusForbidden, http.StatusForbidden},
		{"contacts unauthorized", http.StatusUnauthorized, http.StatusOK, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupTestFixture(t)
			f.provider.contactsStatus = tt.contactsStatus
			f.provider.contactsBody = `{"status":"error"}`
			f.provider.companiesStatus = tt.companiesStatus
			f.provider.companiesBody = `{"status":"error"}`

			_, err := f.integration.ListItems(context.Background(), testCredentials)
			require.ErrorIs(t, err, apperrors.ErrUpstream)
			require.Equal(t, tt.wantStatus, apperrors.StatusCode(err))

			// Both fetches always run to completion.
			f.provider.mu.Lock()
			defer f.provider.mu.Unlock()
			require.Len(t, f.provider.objectRequests, 2)
		})
	}
}

func TestListItemsUnexpectedFailures(t *testing.T) {
	t.Run("malformed credentials", func(t *testing.T) {
		f := setupTestFixture(t)
		_, err := f.integration.ListItems(context.Background(), `{"access_token":`)
		require.ErrorIs(t, err, apperrors.ErrUnexpected)
		require.Equal(t, http.StatusInternalServerError, apperrors.StatusCode(err))
	})

	t.Run("malformed provider response", func(t *testing.T) {
		f := setupTestFixture(t)
		f.provider.companiesBody = `{"results":[`
		_, err := f.integration.ListItems(context.Background(), testCredentials)
		require.ErrorIs(t, err, apperrors.ErrUnexpected)
		require.Contains(t, apperrors.Detail(err), "decode companies")
	})

	t.Run("provider unreachable", func(t *testing.T) {
		f := setupTestFixture(t)
		f.provider.Close()
		_, err := f.integration.ListItems(context.Background(), testCredentials)
		require.ErrorIs(t, err, apperrors.ErrUnexpected)
		require.Equal(t, http.StatusInternalServerError, apperrors.StatusCode(err))
	})
}
