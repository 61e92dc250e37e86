// Package httpserver assembles the relay's gin engine: one proxy mount per
// upstream plus health and metrics endpoints.
package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/samvad-hq/samvad-api-relay/internal/metrics"
	"github.com/samvad-hq/samvad-api-relay/internal/middleware"
	"github.com/samvad-hq/samvad-api-relay/pkg/apiclient"
	"github.com/samvad-hq/samvad-api-relay/pkg/proxy"
	"github.com/samvad-hq/samvad-api-relay/pkg/upstreams"
)

// Mount pairs an upstream definition with the client that reaches it.
type Mount struct {
	Upstream upstreams.Upstream
	Client   *apiclient.Client
}

// Config assembles a Server.
type Config struct {
	Host            string
	Port            int
	Logger          apiclient.Logger
	Metrics         *metrics.Metrics
	Registry        *prometheus.Registry
	Mounts          []Mount
	ShutdownTimeout time.Duration
}

// Server hosts the relay's HTTP surface.
type Server struct {
	engine          *gin.Engine
	log             apiclient.Logger
	host            string
	port            int
	shutdownTimeout time.Duration
}

// New builds a server with every mount wired under its route prefix.
func New(cfg Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	log := cfg.Logger
	if log == nil {
		log = apiclient.NopLogger{}
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 15 * time.Second
	}

	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.Recovery(log))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.Registry != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))
	}

	for _, m := range cfg.Mounts {
		mountProxy(engine, cfg.Metrics, m)
	}

	return &Server{
		engine:          engine,
		log:             log,
		host:            cfg.Host,
		port:            cfg.Port,
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// mountProxy registers a proxy handler for every method and path under the
// upstream's prefix.
func mountProxy(engine *gin.Engine, m *metrics.Metrics, mount Mount) {
	handler := proxy.Handler(mount.Client, proxy.Options{StripPrefix: mount.Upstream.Prefix})

	group := engine.Group(mount.Upstream.Prefix)
	if m != nil {
		group.Use(middleware.Metrics(m, mount.Upstream.ID))
	}
	group.Any("", handler)
	group.Any("/*path", handler)
}

// Engine exposes the assembled engine, mainly for tests.
func (s *Server) Engine() *gin.Engine { return s.engine }

// Run starts the HTTP server and blocks until a shutdown signal is received.
// It performs graceful shutdown and surfaces ListenAndServe errors to the caller.
func (s *Server) Run() error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	server := &http.Server{
		Addr:    addr,
		Handler: s.engine,
	}

	serveErr := make(chan error, 1)
	go func() {
		s.log.Infof("relay listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return err
	case sig := <-ch:
		s.log.Infof("received signal %v, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		s.log.Errorf("server shutdown: %v", err)
		return err
	}
	s.log.Infof("relay stopped")
	return nil
}
