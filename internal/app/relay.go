package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/samvad-hq/samvad-api-relay/internal/config"
	"github.com/samvad-hq/samvad-api-relay/internal/httpserver"
	"github.com/samvad-hq/samvad-api-relay/internal/metrics"
	"github.com/samvad-hq/samvad-api-relay/pkg/apiclient"
	"github.com/samvad-hq/samvad-api-relay/pkg/upstreams"
)

// Relay wires the upstream registry, clients, and HTTP server into a running
// relay daemon.
type Relay struct {
	cfg      *config.Config
	registry *upstreams.Registry
	server   *httpserver.Server
	log      apiclient.Logger
}

// NewRelay builds a relay runtime from config files.
func NewRelay(cfg *config.Config, log apiclient.Logger) (*Relay, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = apiclient.NopLogger{}
	}

	registry, err := upstreams.LoadRegistry(cfg.UpstreamsFile)
	if err != nil {
		return nil, fmt.Errorf("load upstreams registry: %w", err)
	}

	enabled := registry.Enabled()
	if len(enabled) == 0 {
		return nil, fmt.Errorf("no upstreams configured")
	}

	ids := make([]string, 0, len(enabled))
	for _, u := range enabled {
		ids = append(ids, u.ID)
	}
	log.InfoObj("upstreams registry loaded", "upstreams_meta", map[string]any{
		"count": len(ids),
		"ids":   ids,
	})

	promReg := prometheus.NewRegistry()
	m := metrics.New(promReg)

	mounts := make([]httpserver.Mount, 0, len(enabled))
	for _, u := range enabled {
		client := apiclient.New(apiclient.Options{
			RootURL:       u.RootURL,
			Timeout:       u.Timeout(),
			Authorization: u.Authorization,
			Headers:       u.Headers,
			Logger:        log,
		})
		mounts = append(mounts, httpserver.Mount{Upstream: u, Client: client})
	}

	server := httpserver.New(httpserver.Config{
		Host:            cfg.ListenHost,
		Port:            cfg.ListenPort,
		Logger:          log,
		Metrics:         m,
		Registry:        promReg,
		Mounts:          mounts,
		ShutdownTimeout: cfg.ShutdownTimeout,
	})

	return &Relay{
		cfg:      cfg,
		registry: registry,
		server:   server,
		log:      log,
	}, nil
}

// Run serves until a shutdown signal arrives.
func (r *Relay) Run() error {
	if err := r.server.Run(); err != nil {
		return fmt.Errorf("relay run: %w", err)
	}
	return nil
}
