package server

import (
	"net/http"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteIndex, ChainMiddleware(s.IndexHandler(), s.APIMiddleware()...))

	s.RegisterRouteHandler("POST "+RouteHubSpotAuthorize, ChainMiddleware(s.HubSpotAuthorizeHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteHubSpotCallback, ChainMiddleware(s.HubSpotCallbackHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteHubSpotCredentials, ChainMiddleware(s.HubSpotCredentialsHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteHubSpotLoad, ChainMiddleware(s.HubSpotLoadHandler(), s.APIMiddleware(s.CompressionMiddleware)...))

	s.RegisterRouteHandler("OPTIONS "+RoutePreflight, ChainMiddleware(noContent, s.APIMiddleware()...))
}

func noContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
