package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// Daemon owns the HTTP server serving the aircraft images endpoint
type Daemon struct {
	server   *http.Server
	listener net.Listener
	done     chan error
}

// Config holds daemon configuration
type Config struct {
	Addr         string        // listen address, e.g. ":8080"
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// New creates a new daemon instance
func New(cfg Config, handler http.Handler) (*Daemon, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("Addr is required")
	}
	if handler == nil {
		return nil, fmt.Errorf("handler is required")
	}

	return &Daemon{
		server: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
		},
		done: make(chan error, 1),
	}, nil
}

// Start binds the listen address and serves in the background
func (d *Daemon) Start() error {
	slog.Info("Starting daemon", "addr", d.server.Addr)

	ln, err := net.Listen("tcp", d.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", d.server.Addr, err)
	}
	d.listener = ln

	go func() {
		err := d.server.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		d.done <- err
	}()

	slog.Info("Daemon started successfully", "addr", ln.Addr().String())
	return nil
}

// Addr returns the bound address, useful when listening on port 0
func (d *Daemon) Addr() string {
	if d.listener == nil {
		return d.server.Addr
	}
	return d.listener.Addr().String()
}

// Done reports the serve loop result once it exits
func (d *Daemon) Done() <-chan error {
	return d.done
}

// Stop gracefully stops the daemon, waiting for in-flight requests until ctx expires
func (d *Daemon) Stop(ctx context.Context) error {
	slog.Info("Stopping daemon")

	if err := d.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	slog.Info("Daemon stopped")
	return nil
}
