package client

import (
	"fmt"
	"net"
	"time"

	"golang.org/x/net/proxy"

	"cmdprobe/internal/shared/types"
)

// NewDialer builds the stream dialer for cfg: a plain net.Dialer, or a SOCKS5
// dialer chained on top of it when cfg.Socks5 is set.
func NewDialer(cfg types.ClientConf) (proxy.ContextDialer, error) {
	base := &net.Dialer{
		Control: socketControl(cfg),
	}
	if cfg.DialTimeout > 0 {
		base.Timeout = time.Duration(cfg.DialTimeout) * time.Second
	}
	if cfg.Socks5 == "" {
		return base, nil
	}

	d, err := proxy.SOCKS5("tcp", cfg.Socks5, nil, base)
	if err != nil {
		return nil, fmt.Errorf("socks5 dialer for %s: %w", cfg.Socks5, err)
	}
	// *socks.Dialer implements DialContext.
	return d.(proxy.ContextDialer), nil
}
