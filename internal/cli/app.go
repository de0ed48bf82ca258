package cli

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/Feustey/T4G-sub000/internal/cliconfig"
	"github.com/Feustey/T4G-sub000/pkg/auth"
	"github.com/Feustey/T4G-sub000/pkg/clients"
	"github.com/Feustey/T4G-sub000/pkg/clients/t4g"
	"github.com/Feustey/T4G-sub000/pkg/config"
	"github.com/Feustey/T4G-sub000/pkg/fetch"
	"github.com/Feustey/T4G-sub000/pkg/logging"
	"github.com/Feustey/T4G-sub000/pkg/monitoring"
	"github.com/Feustey/T4G-sub000/pkg/network"
	"github.com/Feustey/T4G-sub000/pkg/oauth"
	"github.com/Feustey/T4G-sub000/pkg/session"
)

// app is the assembled client stack a command operates on.
type app struct {
	cfg       config.Config
	logger    logging.Logger
	store     *auth.CredentialStore
	states    *auth.SessionStore
	client    *t4g.Client
	appClient *t4g.Client
	monitor   *network.Monitor
	sessions  *session.Manager
	oauth     *oauth.Orchestrator
	fetcher   *fetch.Fetcher
}

// newApp wires the stack for the selected context. Environment variables
// win over context file values, matching how the env helpers behave
// everywhere else.
func newApp() (*app, error) {
	logger := logging.NewLoggerWithComponent("t4g-cli")
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}

	config.LoadEnv(logger)
	cfg := config.Load()

	fileCfg, _, err := cliconfig.Load()
	if err != nil {
		return nil, err
	}
	cliCtx, err := cliconfig.Get(fileCfg, contextName)
	if err != nil {
		return nil, err
	}
	if cliCtx.APIURL != "" && config.GetEnv("T4G_API_URL", "") == "" {
		cfg.APIBaseURL = cliCtx.APIURL
	}
	if cliCtx.AppURL != "" && config.GetEnv("T4G_APP_URL", "") == "" {
		cfg.AppBaseURL = cliCtx.AppURL
	}
	if cliCtx.Environment != "" && config.GetEnv("T4G_ENV", "") == "" {
		cfg.Environment = cliCtx.Environment
	}

	store := auth.NewCredentialStore("", logger)
	states := auth.NewSessionStore()
	metrics := monitoring.NewClientMetrics(prometheus.NewRegistry())

	retry := clients.DefaultRetryConfig()
	cb := clients.DefaultCircuitBreakerConfig()
	cb.Logger = logger

	client := t4g.NewClient(t4g.Config{
		BaseURL:              cfg.APIBaseURL,
		Store:                store,
		Timeout:              cfg.RequestTimeout,
		Logger:               logger,
		Retry:                &retry,
		CircuitBreakerConfig: &cb,
		Metrics:              metrics,
	})

	// The app origin hosts the OAuth exchange and magic-link endpoints;
	// those calls must not share the API client's circuit breaker.
	appClient := t4g.NewClient(t4g.Config{
		BaseURL: cfg.AppBaseURL,
		Store:   store,
		Timeout: cfg.RequestTimeout,
		Logger:  logger,
	})

	monitor := network.NewMonitor(network.Config{
		Pinger:        client,
		Logger:        logger,
		ProbeInterval: cfg.HealthProbeInterval,
		ProbeTimeout:  cfg.HealthProbeTimeout,
	})

	sessions := session.NewManager(client, store, logger)
	sessions.Init(context.Background())

	fetcher := fetch.NewFetcher(fetch.Config{
		Cache:   fetch.NewCache(fetch.CacheOptions{TTL: 15 * time.Second, StaleWhileRevalidate: 45 * time.Second, MaxEntries: 128}),
		Disk:    fetch.NewDiskCache(cliCtx.CacheDir, logger),
		Monitor: monitor,
		Metrics: metrics,
		Logger:  logger,
	})

	return &app{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		states:    states,
		client:    client,
		appClient: appClient,
		monitor:   monitor,
		sessions:  sessions,
		oauth:     oauth.NewOrchestrator(cfg, states, appClient, sessions, logger),
		fetcher:   fetcher,
	}, nil
}
