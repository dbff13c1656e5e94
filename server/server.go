package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-crm-connector/integrations/hubspot"
	"github.com/jrsteele09/go-crm-connector/internal/config"
	"github.com/rs/zerolog/log"
)

// Config is the part of the application configuration the HTTP layer reads.
type Config interface {
	config.EnvConfig
	config.CorsConfig
}

type Server struct {
	env     string // Environment (e.g., "DEV", "PROD")
	mux     *http.ServeMux
	routes  []string
	config  Config
	hubspot *hubspot.Integration
}

func New(config Config, hubspotIntegration *hubspot.Integration) (*Server, error) {
	if hubspotIntegration == nil {
		return nil, fmt.Errorf("[Server New] hubspot integration is required")
	}

	s := &Server{
		env:     config.GetEnv(),
		mux:     http.NewServeMux(),
		config:  config,
		hubspot: hubspotIntegration,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}
