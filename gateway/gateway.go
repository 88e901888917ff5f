// Package gateway owns the lifecycle of the embedded HTTP gateway: one
// listener, started and stopped idempotently from uncoordinated callers.
//
// The started flag is a lock-free atomic read separately from the heavier
// listener and server slots, so status checks never contend with
// start/stop. Stop performs a real teardown: the listener is closed and
// in-flight requests are drained, so a stopped gateway no longer accepts
// connections.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kvgate/kvgate/audit"
	"github.com/kvgate/kvgate/backend"
	kvhttp "github.com/kvgate/kvgate/http"
)

// DefaultListenAddr is the default gateway listen address.
const DefaultListenAddr = ":4887"

// Config holds gateway construction settings.
type Config struct {
	ListenAddr string
	Backend    backend.Config
	CORS       kvhttp.CORSConfig
	Audit      *audit.Log
}

// Gateway manages the background HTTP server in front of the backend
// store. A single Gateway value is shared by every command entry point;
// Start, Stop and Status may be called repeatedly and concurrently.
type Gateway struct {
	cfg     Config
	rdb     *redis.Client
	handler http.Handler

	started atomic.Bool

	mu  sync.Mutex
	ln  net.Listener
	srv *http.Server
}

// New builds a stopped Gateway. The shared backend client is created here
// and reused across start/stop cycles; credentials presented by HTTP
// callers are validated with fresh probe connections, never through this
// client.
func New(cfg Config) *Gateway {
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}

	rdb := backend.New(cfg.Backend)
	validator := func(ctx context.Context, username, password string) (bool, error) {
		status, err := backend.ValidateCredentials(ctx, cfg.Backend, username, password)
		if err != nil {
			return false, err
		}
		return status == backend.StatusAllowed, nil
	}

	handlerCfg := kvhttp.HandlerConfig{
		Validator: validator,
		CORS:      cfg.CORS,
		Audit:     cfg.Audit,
	}
	handler := kvhttp.NewHandler(&handlerCfg, backend.NewStore(rdb)).Router()

	return &Gateway{
		cfg:     cfg,
		rdb:     rdb,
		handler: handler,
	}
}

// Start binds the listener and serves in the background. Calling Start on
// a running gateway is a no-op returning nil; exactly one listener exists
// across repeated calls. A bind failure (port in use, permission denied)
// is returned, never panicked.
func (g *Gateway) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.started.Load() {
		return nil
	}

	ln, err := net.Listen("tcp", g.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", g.cfg.ListenAddr, err)
	}

	srv := &http.Server{
		Handler:           g.handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g.ln = ln
	g.srv = srv

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("gateway server error", "err", err)
		}
	}()

	g.started.Store(true)
	slog.Info("gateway started", "addr", ln.Addr().String())
	return nil
}

// Stop shuts the server down, closing the listener and draining in-flight
// requests until ctx expires. Stopping a stopped gateway is a no-op. The
// backend client survives stop so a later Start reuses it.
func (g *Gateway) Stop(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.started.Load() {
		return nil
	}
	g.started.Store(false)

	srv := g.srv
	g.srv = nil
	g.ln = nil

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown gateway: %w", err)
	}
	slog.Info("gateway stopped")
	return nil
}

// Running reports whether the gateway is serving, without taking the lock.
func (g *Gateway) Running() bool {
	return g.started.Load()
}

// Status returns "running" or "stopped".
func (g *Gateway) Status() string {
	if g.started.Load() {
		return "running"
	}
	return "stopped"
}

// Addr returns the bound listener address while running, or the configured
// listen address otherwise.
func (g *Gateway) Addr() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.ln != nil {
		return g.ln.Addr().String()
	}
	return g.cfg.ListenAddr
}

// Close stops the gateway and releases the backend client.
func (g *Gateway) Close(ctx context.Context) error {
	stopErr := g.Stop(ctx)
	if err := g.rdb.Close(); err != nil && stopErr == nil {
		stopErr = fmt.Errorf("close backend client: %w", err)
	}
	return stopErr
}
