// Package server accepts raw TCP connections and serves the cloud-drive
// application over them: HTTP/1.1 on the front-end port via httpwire,
// and a plain-text diagnostic line protocol on the back-end port. One
// goroutine runs per accepted connection; requests within a connection
// are strictly sequential.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"

	"github.com/hcdrive/hcdrive"
)

// Renderer produces the browser-facing HTML pages. It is a pure
// function of its inputs; the server never builds markup itself.
type Renderer interface {
	MainPage(listing []hcdrive.FileEntry, status string) string
	Dashboard(stats hcdrive.StatsSnapshot) string
}

// Config carries the server identity and listening ports.
type Config struct {
	Name         string // address shown on pages and the diagnostic banner
	Region       string // region shown on pages and the diagnostic banner
	FrontendPort int    // browser-facing HTTP port
	BackendPort  int    // diagnostic line-protocol port
	MaxConns     int    // per-listener cap on concurrent connections
}

// Server owns the two listeners and the shared state handed to every
// connection handler.
type Server struct {
	cfg      Config
	registry *hcdrive.Registry
	stats    *hcdrive.Stats
	render   Renderer
	static   *StaticDir

	// shutdown cancels the run context; the diagnostic "die" command
	// uses it to drain the whole process.
	shutdown context.CancelFunc
}

func New(cfg Config, registry *hcdrive.Registry, stats *hcdrive.Stats, render Renderer, static *StaticDir) *Server {
	if cfg.MaxConns <= 0 {
		cfg.MaxConns = 64
	}
	return &Server{
		cfg:      cfg,
		registry: registry,
		stats:    stats,
		render:   render,
		static:   static,
	}
}

// Run binds both listeners and accepts until ctx is canceled or an
// accept loop fails irrecoverably. Either way both listeners close
// together and Run returns; in-flight handlers finish on their own as
// their connections drain.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.shutdown = cancel

	front, err := s.listen(s.cfg.FrontendPort)
	if err != nil {
		return fmt.Errorf("bind frontend: %w", err)
	}
	back, err := s.listen(s.cfg.BackendPort)
	if err != nil {
		_ = front.Close()
		return fmt.Errorf("bind backend: %w", err)
	}

	slog.Info("server listening",
		"frontend", front.Addr().String(),
		"backend", back.Addr().String(),
		"name", s.cfg.Name, "region", s.cfg.Region)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.acceptLoop(ctx, front, func(c net.Conn) { s.handleHTTP(ctx, c) })
	})
	g.Go(func() error {
		return s.acceptLoop(ctx, back, func(c net.Conn) { s.handleDiagnostic(ctx, c) })
	})
	g.Go(func() error {
		// Closing the listeners is what unblocks the accept loops.
		<-ctx.Done()
		_ = front.Close()
		_ = back.Close()
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

func (s *Server) listen(port int) (net.Listener, error) {
	l, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, err
	}
	return netutil.LimitListener(l, s.cfg.MaxConns), nil
}

// acceptLoop hands each accepted connection to its own goroutine and
// never blocks on handler work. An accept fault is fatal to the whole
// server so both endpoints drain together.
func (s *Server) acceptLoop(ctx context.Context, l net.Listener, handle func(net.Conn)) error {
	for {
		c, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil // listener closed by shutdown
			}
			return fmt.Errorf("accept on %s: %w", l.Addr(), err)
		}
		go handle(c)
	}
}
