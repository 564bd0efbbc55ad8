package server

import (
	"errors"
	"fmt"
	"net"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Brownie44l1/webroot/internal/request"
	"github.com/Brownie44l1/webroot/internal/response"
	"github.com/Brownie44l1/webroot/internal/webroot"
)

// Outcome is how a single connection ended
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNotFound
	OutcomeMethodNotAllowed
	// OutcomeFailed means no response was written.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeMethodNotAllowed:
		return "method_not_allowed"
	case OutcomeFailed:
		return "failed"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Status returns the status code sent for the outcome, or 0 when nothing is sent
func (o Outcome) Status() response.StatusCode {
	switch o {
	case OutcomeOK:
		return response.StatusOK
	case OutcomeNotFound:
		return response.StatusNotFound
	case OutcomeMethodNotAllowed:
		return response.StatusMethodNotAllowed
	}
	return 0
}

type result struct {
	outcome Outcome
	message []byte
	req     *request.Request
	err     error
}

// process turns one complete request text into the response to send. It
// touches nothing but the read-only document root.
func (s *Server) process(raw string) result {
	req, err := request.Parse(raw)
	switch {
	case errors.Is(err, request.ErrUnsupportedMethod):
		return result{outcome: OutcomeMethodNotAllowed, message: response.MethodNotAllowed()}
	case err != nil:
		return result{outcome: OutcomeFailed, err: fmt.Errorf("parse request: %w", err)}
	}

	content, err := s.resolver.Resolve(req.Path)
	switch {
	case errors.Is(err, webroot.ErrNotFound):
		return result{outcome: OutcomeNotFound, message: response.NotFound(), req: req, err: err}
	case err != nil:
		return result{outcome: OutcomeFailed, req: req, err: fmt.Errorf("resolve %s: %w", req.Path, err)}
	}

	return result{outcome: OutcomeOK, message: response.OK(content.Body, content.MimeType), req: req}
}

// serveConn writes at most one response to conn and always closes it
func (s *Server) serveConn(conn net.Conn) {
	start := time.Now()
	logger := s.logger.With().
		Str("conn_id", uuid.NewString()).
		Str("remote_addr", conn.RemoteAddr().String()).
		Logger()

	s.metrics.ActiveConnections.Add(1)

	outcome := OutcomeFailed
	var written int64
	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("connection panicked")
			outcome = OutcomeFailed
		}
		if err := conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			logger.Debug().Err(err).Msg("close connection")
		}
		s.track(conn, false)
		s.metrics.ActiveConnections.Add(-1)
		s.metrics.Record(outcome, written, time.Since(start))
	}()

	logger.Info().Msg("connection")

	if s.cfg.ReadTimeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout)); err != nil {
			s.fail(logger, fmt.Errorf("set read deadline: %w", err))
			return
		}
	}
	s.track(conn, true)

	raw, err := request.ReadHead(conn, s.cfg.MaxHeaderBytes)
	if err != nil {
		s.fail(logger, err)
		return
	}
	logger.Debug().Str("request", truncate(raw, 2048)).Msg("request received")

	res := s.process(raw)
	if res.req != nil {
		logger = logger.With().
			Str("method", res.req.Method).
			Str("path", res.req.Path).
			Str("host", res.req.Host()).
			Str("user_agent", res.req.UserAgent()).
			Logger()
		for _, herr := range res.req.HeaderErrors {
			logger.Debug().Err(herr).Msg("skipped malformed header")
		}
	}

	switch res.outcome {
	case OutcomeFailed:
		s.fail(logger, res.err)
		return
	case OutcomeNotFound:
		logger.Debug().Err(res.err).Msg("not found")
	case OutcomeOK, OutcomeMethodNotAllowed:
	}

	w := response.NewWriter(conn)
	err = w.Write(res.message)
	written = w.BytesWritten()
	if err != nil {
		s.fail(logger, err)
		return
	}
	outcome = res.outcome

	logger.Info().
		Int("status", int(outcome.Status())).
		Stringer("outcome", outcome).
		Int64("bytes", written).
		Float64("duration_ms", durationMs(time.Since(start))).
		Msg("response sent")
}

// fail reports an unexpected failure. The client gets no response.
func (s *Server) fail(logger zerolog.Logger, err error) {
	logger.Error().
		Err(err).
		Str("stack", string(debug.Stack())).
		Msg("connection failed")
}
