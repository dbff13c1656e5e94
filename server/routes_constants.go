package server

// Route path constants
const (
	RouteIndex = "/{$}"

	// HubSpot integration
	RouteHubSpotAuthorize   = "/integrations/hubspot/authorize"
	RouteHubSpotCallback    = "/integrations/hubspot/oauth2callback"
	RouteHubSpotCredentials = "/integrations/hubspot/credentials"
	RouteHubSpotLoad        = "/integrations/hubspot/load"

	// Preflight requests for any path
	RoutePreflight = "/"
)
