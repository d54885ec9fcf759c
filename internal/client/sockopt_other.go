//go:build !linux

package client

import (
	"errors"
	"syscall"

	"cmdprobe/internal/shared/types"
)

var errSockoptUnsupported = errors.New("interface and mark are only supported on linux")

func socketControl(cfg types.ClientConf) func(network, address string, c syscall.RawConn) error {
	if cfg.Interface == "" && cfg.Mark == 0 {
		return nil
	}
	return func(string, string, syscall.RawConn) error {
		return errSockoptUnsupported
	}
}
