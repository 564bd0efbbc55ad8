package server

import (
	"bytes"
	"io"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// syncBuffer collects log output written from several goroutines
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestServer(t *testing.T, root string, logs io.Writer, mutate ...func(*Config)) *Server {
	t.Helper()
	cfg, err := DefaultConfig()
	require.NoError(t, err)
	cfg.Root = root
	for _, m := range mutate {
		m(&cfg)
	}
	srv, err := New(cfg, zerolog.New(logs).Level(zerolog.DebugLevel))
	require.NoError(t, err)
	return srv
}

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// roundTrip feeds req to serveConn over an in-memory pipe and returns
// everything written back before the connection closed.
func roundTrip(t *testing.T, srv *Server, req string) string {
	t.Helper()
	client, server := net.Pipe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		srv.serveConn(server)
	}()

	// The server may close before taking the whole request, so write
	// errors are expected in some cases.
	go func() {
		_, _ = client.Write([]byte(req))
	}()

	resp, err := io.ReadAll(client)
	require.NoError(t, err)
	<-done
	return string(resp)
}
