package server

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Metrics holds server runtime counters
type Metrics struct {
	ConnectionsTotal  atomic.Int64
	ActiveConnections atomic.Int64

	ResponsesOK               atomic.Int64
	ResponsesNotFound         atomic.Int64
	ResponsesMethodNotAllowed atomic.Int64
	Failures                  atomic.Int64

	BytesWritten   atomic.Int64
	TotalLatencyNs atomic.Int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

// Record counts one finished connection
func (m *Metrics) Record(outcome Outcome, written int64, duration time.Duration) {
	m.ConnectionsTotal.Add(1)
	m.BytesWritten.Add(written)
	m.TotalLatencyNs.Add(duration.Nanoseconds())

	switch outcome {
	case OutcomeOK:
		m.ResponsesOK.Add(1)
	case OutcomeNotFound:
		m.ResponsesNotFound.Add(1)
	case OutcomeMethodNotAllowed:
		m.ResponsesMethodNotAllowed.Add(1)
	case OutcomeFailed:
		m.Failures.Add(1)
	}
}

// AverageLatency returns average connection handling time
func (m *Metrics) AverageLatency() time.Duration {
	total := m.ConnectionsTotal.Load()
	if total == 0 {
		return 0
	}
	return time.Duration(m.TotalLatencyNs.Load() / total)
}

type MetricsSnapshot struct {
	ConnectionsTotal          int64
	ActiveConnections         int64
	ResponsesOK               int64
	ResponsesNotFound         int64
	ResponsesMethodNotAllowed int64
	Failures                  int64
	BytesWritten              int64
	AverageLatency            time.Duration
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		ConnectionsTotal:          m.ConnectionsTotal.Load(),
		ActiveConnections:         m.ActiveConnections.Load(),
		ResponsesOK:               m.ResponsesOK.Load(),
		ResponsesNotFound:         m.ResponsesNotFound.Load(),
		ResponsesMethodNotAllowed: m.ResponsesMethodNotAllowed.Load(),
		Failures:                  m.Failures.Load(),
		BytesWritten:              m.BytesWritten.Load(),
		AverageLatency:            m.AverageLatency(),
	}
}

func (s MetricsSnapshot) MarshalZerologObject(e *zerolog.Event) {
	e.Int64("connections", s.ConnectionsTotal).
		Int64("active", s.ActiveConnections).
		Int64("ok", s.ResponsesOK).
		Int64("not_found", s.ResponsesNotFound).
		Int64("method_not_allowed", s.ResponsesMethodNotAllowed).
		Int64("failures", s.Failures).
		Int64("bytes_written", s.BytesWritten).
		Float64("avg_latency_ms", durationMs(s.AverageLatency))
}
