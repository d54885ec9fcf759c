package client

import (
	"context"
	"encoding/binary"
	"io"
	"net"
	"strconv"
	"testing"

	"cmdprobe/internal/shared/types"
)

// startSocks5 runs a no-auth SOCKS5 responder that serves one CONNECT to an
// IPv4 target and relays bytes in both directions.
func startSocks5(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		// greeting: VER NMETHODS METHODS...
		head := make([]byte, 2)
		if _, err := io.ReadFull(conn, head); err != nil {
			return
		}
		if _, err := io.ReadFull(conn, make([]byte, head[1])); err != nil {
			return
		}
		conn.Write([]byte{0x05, 0x00})

		// request: VER CMD RSV ATYP(1) ADDR(4) PORT(2)
		req := make([]byte, 10)
		if _, err := io.ReadFull(conn, req); err != nil || req[3] != 0x01 {
			return
		}
		target := net.JoinHostPort(net.IP(req[4:8]).String(), strconv.Itoa(int(binary.BigEndian.Uint16(req[8:10]))))
		upstream, err := net.Dial("tcp", target)
		if err != nil {
			conn.Write([]byte{0x05, 0x05, 0x00, 0x01, 0, 0, 0, 0, 0, 0})
			return
		}
		defer upstream.Close()
		conn.Write([]byte{0x05, 0x00, 0x00, 0x01, 0, 0, 0, 0, 0, 0})

		go io.Copy(upstream, conn)
		io.Copy(conn, upstream)
	}()

	return ln.Addr().String()
}

func TestExchange_ThroughSocks5(t *testing.T) {
	var got []byte
	cfg, done := startPeer(t, func(conn net.Conn) {
		got = readLine(t, conn)
		conn.Write([]byte("via proxy"))
	})
	cfg.Socks5 = startSocks5(t)

	res, err := newTestClient(t, cfg).Exchange(context.Background())
	if err != nil {
		t.Fatalf("Exchange() returned an error: %v", err)
	}
	<-done

	if string(got) != "your_custom_command\n" {
		t.Errorf("Expected peer to read the command, got %q", got)
	}
	if string(res.Data) != "via proxy" {
		t.Errorf("Expected %q, but got %q", "via proxy", res.Data)
	}
}

func TestNewDialer_Direct(t *testing.T) {
	d, err := NewDialer(types.ClientConf{DialTimeout: 3})
	if err != nil {
		t.Fatalf("NewDialer() returned an error: %v", err)
	}
	nd, ok := d.(*net.Dialer)
	if !ok {
		t.Fatalf("Expected *net.Dialer, got %T", d)
	}
	if nd.Timeout.Seconds() != 3 {
		t.Errorf("Expected 3s timeout, got %v", nd.Timeout)
	}
	if nd.Control != nil {
		t.Error("Expected no socket control without interface or mark")
	}
}

func TestNewDialer_NoTimeoutByDefault(t *testing.T) {
	d, err := NewDialer(types.ClientConf{})
	if err != nil {
		t.Fatalf("NewDialer() returned an error: %v", err)
	}
	if nd := d.(*net.Dialer); nd.Timeout != 0 {
		t.Errorf("Expected no timeout, got %v", nd.Timeout)
	}
}

func TestNewDialer_SocketOptionsInstallControl(t *testing.T) {
	tests := map[string]types.ClientConf{
		"mark":      {Mark: 1},
		"interface": {Interface: "lo"},
	}
	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			d, err := NewDialer(cfg)
			if err != nil {
				t.Fatalf("NewDialer() returned an error: %v", err)
			}
			if d.(*net.Dialer).Control == nil {
				t.Error("Expected a socket control hook")
			}
		})
	}
}

func TestNewDialer_Socks5(t *testing.T) {
	d, err := NewDialer(types.ClientConf{Socks5: "127.0.0.1:1080"})
	if err != nil {
		t.Fatalf("NewDialer() returned an error: %v", err)
	}
	if _, ok := d.(*net.Dialer); ok {
		t.Error("Expected a SOCKS5 dialer, got a plain *net.Dialer")
	}
}
