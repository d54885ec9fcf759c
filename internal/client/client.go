// Package client performs a single command round-trip against a TCP server:
// connect, send one line, read once, close.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/net/proxy"

	"cmdprobe/internal/shared"
	"cmdprobe/internal/shared/logger"
	"cmdprobe/internal/shared/types"
)

// Result is what one exchange produced.
type Result struct {
	SessionID string
	Data      []byte
	Traffic   types.TrafficStats
}

// Client holds the resolved parameters for Exchange.
type Client struct {
	cfg     types.ClientConf
	addr    string
	message []byte
	dialer  proxy.ContextDialer
	logger  zerolog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithDialer replaces the dialer built from the configuration.
func WithDialer(d proxy.ContextDialer) Option {
	return func(c *Client) {
		c.dialer = d
	}
}

// New creates a Client for cfg. The dialer is built from cfg unless
// WithDialer is given.
func New(cfg types.ClientConf, opts ...Option) (*Client, error) {
	if cfg.BufferSize <= 0 {
		return nil, fmt.Errorf("invalid buffer size %d", cfg.BufferSize)
	}
	c := &Client{
		cfg:     cfg,
		addr:    net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		message: Message(cfg.Command),
		logger:  logger.WithComponent("Client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.dialer == nil {
		d, err := NewDialer(cfg)
		if err != nil {
			return nil, err
		}
		c.dialer = d
	}
	return c, nil
}

// Address returns the host:port the client connects to.
func (c *Client) Address() string {
	return c.addr
}

// Message returns the outbound bytes for command: the command followed by a
// single newline.
func Message(command string) []byte {
	if strings.HasSuffix(command, "\n") {
		return []byte(command)
	}
	return []byte(command + "\n")
}

// Exchange connects, writes the message, performs one read of at most
// BufferSize bytes and closes the connection. A peer that closes without
// sending anything yields an empty Data and no error.
func (c *Client) Exchange(ctx context.Context) (*Result, error) {
	res := &Result{SessionID: uuid.NewString()}
	l := c.logger.With().Str("session", res.SessionID).Str("target", c.addr).Logger()

	l.Debug().Str("via", c.cfg.Socks5).Msg("Dialing...")
	raw, err := c.dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return nil, &ConnectError{Addr: c.addr, Via: c.cfg.Socks5, Err: err}
	}
	conn := shared.NewCountedConn(raw)
	defer func() {
		res.Traffic = conn.Stats()
		if cerr := conn.Close(); cerr != nil {
			l.Debug().Err(cerr).Msg("Close failed.")
		}
	}()
	l.Debug().Str("local", conn.LocalAddr().String()).Msg("Connected.")

	if _, err := conn.Write(c.message); err != nil {
		return nil, fmt.Errorf("send to %s: %w", c.addr, err)
	}

	buf := make([]byte, c.cfg.BufferSize)
	n, err := conn.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("receive from %s: %w", c.addr, err)
	}
	res.Data = buf[:n]

	l.Debug().Int("bytes", n).Bool("peer_closed", errors.Is(err, io.EOF)).Msg("Received reply.")
	return res, nil
}

// Format renders data as the single output line.
func Format(data []byte) string {
	return fmt.Sprintf("Received %q", data)
}
