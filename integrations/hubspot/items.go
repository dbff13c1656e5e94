package hubspot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/go-crm-connector/integrations"
	apperrors "github.com/jrsteele09/go-crm-connector/internal/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"
)

const (
	ObjectContacts  = "contacts"
	ObjectCompanies = "companies"
)

// objectTypes lists the collections in the order their items are returned.
var objectTypes = []string{ObjectContacts, ObjectCompanies}

type crmObject struct {
	ID         string         `json:"id"`
	Properties map[string]any `json:"properties"`
	UpdatedAt  string         `json:"updatedAt"`
}

type objectPage struct {
	Results []crmObject `json:"results"`
}

// ListItems fetches contacts and companies with the given credentials JSON and
// flattens them into integration items.
func (i *Integration) ListItems(ctx context.Context, credentials string) ([]integrations.IntegrationItem, error) {
	token, err := accessToken(credentials)
	if err != nil {
		return nil, apperrors.Unexpected(err)
	}

	client := oauth2.NewClient(
		context.WithValue(ctx, oauth2.HTTPClient, i.cfg.HTTPClient),
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
	)

	pages := make([]objectPage, len(objectTypes))
	errs := make([]error, len(objectTypes))
	var g errgroup.Group
	for idx, objectType := range objectTypes {
		g.Go(func() error {
			pages[idx], errs[idx] = i.fetchObjects(ctx, client, objectType)
			return errs[idx]
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperrors.Unexpected(reportedFailure(errs))
	}

	items := make([]integrations.IntegrationItem, 0)
	for idx, objectType := range objectTypes {
		for _, obj := range pages[idx].Results {
			items = append(items, newIntegrationItem(obj, objectType))
		}
	}

	log.Debug().Int("count", len(items)).Msg("hubspot items listed")
	return items, nil
}

// reportedFailure picks the error surfaced when fetches fail. Collections later
// in objectTypes take precedence, so a companies rejection is what the caller
// sees whatever happened to contacts.
func reportedFailure(errs []error) error {
	for idx := len(errs) - 1; idx >= 0; idx-- {
		if errs[idx] != nil {
			return errs[idx]
		}
	}
	return nil
}

func (i *Integration) fetchObjects(ctx context.Context, client *http.Client, objectType string) (objectPage, error) {
	endpoint, err := url.JoinPath(i.cfg.APIBaseURL, "crm/v3/objects", objectType)
	if err != nil {
		return objectPage{}, fmt.Errorf("build %s url: %w", objectType, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return objectPage{}, fmt.Errorf("build %s request: %w", objectType, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return objectPage{}, fmt.Errorf("fetch %s: %w", objectType, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return objectPage{}, apperrors.Upstream(resp.StatusCode,
			fmt.Sprintf("fetch %s: status %d: %s", objectType, resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var page objectPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return objectPage{}, fmt.Errorf("decode %s: %w", objectType, err)
	}
	return page, nil
}

func newIntegrationItem(obj crmObject, objectType string) integrations.IntegrationItem {
	item := integrations.IntegrationItem{
		ID:               obj.ID,
		Type:             objectType,
		CreationTime:     property(obj.Properties, "createdate"),
		LastModifiedTime: obj.UpdatedAt,
	}
	switch objectType {
	case ObjectContacts:
		item.Name = property(obj.Properties, "firstname") + " " + property(obj.Properties, "lastname")
		item.ParentID = property(obj.Properties, "email")
	case ObjectCompanies:
		item.Name = property(obj.Properties, "name")
		item.ParentID = property(obj.Properties, "domain")
	}
	return item
}

// property renders a HubSpot property value; unset or null properties are empty.
func property(props map[string]any, key string) string {
	switch v := props[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
