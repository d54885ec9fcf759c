//go:build linux

package client

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"

	"cmdprobe/internal/shared/types"
)

func socketControl(cfg types.ClientConf) func(network, address string, c syscall.RawConn) error {
	if cfg.Interface == "" && cfg.Mark == 0 {
		return nil
	}
	return func(network, address string, c syscall.RawConn) error {
		var opErr error
		err := c.Control(func(fd uintptr) {
			if cfg.Mark != 0 {
				if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_MARK, cfg.Mark); err != nil {
					opErr = fmt.Errorf("failed to set SO_MARK: %w", err)
					return
				}
			}
			if cfg.Interface != "" {
				if err := unix.BindToDevice(int(fd), cfg.Interface); err != nil {
					opErr = fmt.Errorf("failed to bind to interface %s: %w", cfg.Interface, err)
				}
			}
		})
		if err != nil {
			return err
		}
		return opErr
	}
}
