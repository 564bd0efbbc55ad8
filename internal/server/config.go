package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/Brownie44l1/webroot/internal/webroot"
)

const DefaultAddr = "127.0.0.1:10000"

// Config controls the listener and per-connection limits. The zero values
// of the limits mean "no limit", matching a plain blocking server.
type Config struct {
	Addr string
	Root string

	// ReadTimeout bounds how long a client may take to send its request
	// head. Without it a client that never sends CRLFCRLF holds the
	// connection forever.
	ReadTimeout time.Duration

	MaxHeaderBytes int

	// Concurrent serves each connection on its own goroutine. Otherwise
	// connections are handled one at a time in accept order.
	Concurrent bool

	// ConfineToRoot rejects targets that resolve outside Root.
	ConfineToRoot bool
}

// DefaultConfig returns the configuration of the baseline server. It fails
// only when the working directory, and so the default root, is unknown.
func DefaultConfig() (Config, error) {
	root, err := webroot.DefaultRoot()
	if err != nil {
		return Config{Addr: DefaultAddr}, err
	}
	return Config{
		Addr: DefaultAddr,
		Root: root,
	}, nil
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("config: empty listen address")
	}
	if c.Root == "" {
		return errors.New("config: empty document root")
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("config: negative read timeout %s", c.ReadTimeout)
	}
	if c.MaxHeaderBytes < 0 {
		return fmt.Errorf("config: negative max header bytes %d", c.MaxHeaderBytes)
	}
	return nil
}
