package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-crm-connector/integrations/hubspot"
	"github.com/jrsteele09/go-crm-connector/internal/config"
	"github.com/jrsteele09/go-crm-connector/kvstore"
	"github.com/jrsteele09/go-crm-connector/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c, err := config.Load()
	if err != nil {
		return err
	}
	setupLogging(c)
	displayAppname(c.GetAppName())

	ctx := context.Background()
	store, closeStore, err := newStore(ctx, c)
	if err != nil {
		return err
	}
	defer closeStore()

	integration, err := hubspot.New(hubspotConfig(c), store)
	if err != nil {
		return err
	}

	handler, err := server.New(c, integration)
	if err != nil {
		return err
	}

	srv := &http.Server{Addr: c.GetPort(), Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	serveErr := make(chan error, 1)
	go func() { serveErr <- listenAndServe(srv) }()

	select {
	case err := <-serveErr:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(srv)
}

func hubspotConfig(c config.HubSpotConfig) hubspot.Config {
	return hubspot.Config{
		ClientID:       c.GetHubSpotClientID(),
		ClientSecret:   c.GetHubSpotClientSecret(),
		RedirectURI:    c.GetHubSpotRedirectURI(),
		AuthURL:        c.GetHubSpotAuthURL(),
		TokenURL:       c.GetHubSpotTokenURL(),
		APIBaseURL:     c.GetHubSpotAPIBaseURL(),
		StateTTL:       c.GetStateTTL(),
		CredentialsTTL: c.GetCredentialsTTL(),
	}
}

// newStore connects to Redis when an address is configured and falls back to
// process memory otherwise.
func newStore(ctx context.Context, c config.RedisConfig) (kvstore.Store, func(), error) {
	if c.GetRedisAddr() == "" {
		log.Warn().Msg("REDIS_ADDR not set, keeping state in memory")
		return kvstore.NewInMemoryStore(), func() {}, nil
	}

	client, err := kvstore.Connect(ctx, c.GetRedisAddr(), c.GetRedisPassword(), c.GetRedisDB())
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("addr", c.GetRedisAddr()).Msg("redis ready")
	return kvstore.NewRedisStore(client), func() { _ = client.Close() }, nil
}

func setupLogging(c config.EnvConfig) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
