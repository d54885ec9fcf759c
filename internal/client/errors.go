package client

import "fmt"

// ConnectError is returned when the stream connection cannot be established:
// refused, unreachable, unresolvable, or rejected by the SOCKS5 hop.
type ConnectError struct {
	Addr string
	Via  string
	Err  error
}

func (e *ConnectError) Error() string {
	if e.Via != "" {
		return fmt.Sprintf("connect %s via socks5 %s: %v", e.Addr, e.Via, e.Err)
	}
	return fmt.Sprintf("connect %s: %v", e.Addr, e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}
