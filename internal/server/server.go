package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Brownie44l1/webroot/internal/webroot"
)

type Server struct {
	cfg      Config
	logger   zerolog.Logger
	resolver *webroot.Resolver
	metrics  *Metrics

	closing atomic.Bool
	mu      sync.Mutex
	conns   map[net.Conn]struct{}
	wg      sync.WaitGroup
}

// New creates a server for cfg. Diagnostics go to logger.
func New(cfg Config, logger zerolog.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	resolver := webroot.New(cfg.Root)
	resolver.ConfineToRoot = cfg.ConfineToRoot

	return &Server{
		cfg:      cfg,
		logger:   logger,
		resolver: resolver,
		metrics:  NewMetrics(),
		conns:    make(map[net.Conn]struct{}),
	}, nil
}

// ListenAndServe binds cfg.Addr and serves until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.logger.Info().Str("addr", s.cfg.Addr).Msg("making a server")

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}

	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, which closes ln
// and returns nil. Any other accept error is fatal and returned. Serve
// takes ownership of ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if info, err := os.Stat(s.cfg.Root); err != nil || !info.IsDir() {
		s.logger.Warn().Str("root", s.cfg.Root).Msg("document root is not a directory")
	}
	s.logger.Info().
		Str("addr", ln.Addr().String()).
		Str("root", s.cfg.Root).
		Bool("concurrent", s.cfg.Concurrent).
		Msg("listening")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-gctx.Done()
		s.closing.Store(true)
		err := ln.Close()
		s.interruptReads()
		if err != nil && !errors.Is(err, net.ErrClosed) {
			return fmt.Errorf("close listener: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		for {
			s.logger.Debug().Msg("waiting for a connection")
			conn, err := ln.Accept()
			if err != nil {
				if s.closing.Load() {
					return nil
				}
				s.logger.Error().Err(err).Msg("accept failed")
				return fmt.Errorf("accept: %w", err)
			}

			if !s.cfg.Concurrent {
				s.serveConn(conn)
				continue
			}

			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				s.serveConn(conn)
			}()
		}
	})

	err := g.Wait()
	s.wg.Wait()

	s.logger.Info().Object("stats", s.Stats()).Msg("server stopped")
	return err
}

// Stats returns a snapshot of the server counters
func (s *Server) Stats() MetricsSnapshot {
	return s.metrics.Snapshot()
}

func (s *Server) track(conn net.Conn, add bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if add {
		s.conns[conn] = struct{}{}
		if s.closing.Load() {
			_ = conn.SetReadDeadline(time.Now())
		}
	} else {
		delete(s.conns, conn)
	}
}

// interruptReads unblocks connections still waiting for a request head so
// shutdown does not wait on idle clients.
func (s *Server) interruptReads() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		_ = conn.SetReadDeadline(time.Now())
	}
}
