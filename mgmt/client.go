// Copyright 2026 The Snimux Authors
// SPDX-License-Identifier: Apache-2.0

package mgmt

import (
	"context"
	"fmt"
	"io"
	"net"
	"time"
)

// DefaultSocketPath is where the multiplexor exposes its management
// channel. The multiplexor creates the socket at startup; deployments
// that move it pass the path on the command line.
const DefaultSocketPath = "/var/run/sni-multiplexor-mgmt"

// dialTimeout bounds the connect phase of each management command. It
// covers only the connect(2) on the Unix socket; the response has its
// own read deadline.
const dialTimeout = 5 * time.Second

// responseReadTimeout is how long a command waits for the multiplexor
// to finish writing its response after the command line is sent.
const responseReadTimeout = 30 * time.Second

// Client issues one-shot commands over the multiplexor's management
// channel. Every operation opens a fresh connection, writes a single
// command line, half-closes the write side, and reads the response.
//
// The one-connection-per-command model is deliberate: a slow or failed
// destroy holds nothing a later listing or destroy could block on. Do
// not add connection reuse without re-deriving that isolation argument.
type Client struct {
	socketPath string
}

// NewClient returns a client for the management socket at socketPath.
// An empty path selects DefaultSocketPath.
func NewClient(socketPath string) *Client {
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}
	return &Client{socketPath: socketPath}
}

// SocketPath returns the management socket path this client dials.
func (c *Client) SocketPath() string {
	return c.socketPath
}

// ListSessions fetches one snapshot of the active session table and
// decodes it. Records come back in listing order; a listing with no
// valid session lines yields an empty slice, not an error.
func (c *Client) ListSessions(ctx context.Context) ([]SessionRecord, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := writeCommand(conn, "print-active-sessions"); err != nil {
		return nil, fmt.Errorf("requesting session listing on %s: %w", c.socketPath, err)
	}

	records, err := DecodeSessions(conn)
	if err != nil {
		return nil, fmt.Errorf("decoding session listing from %s: %w", c.socketPath, err)
	}
	return records, nil
}

// DestroySession asks the multiplexor to tear down one session. The
// response text is drained and discarded: the multiplexor phrases
// rejections (unknown id, session already gone) as prose for
// interactive use, and destroying an already-closed session is a no-op
// on its side. Only transport failures are reported.
func (c *Client) DestroySession(ctx context.Context, sessionID string) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := writeCommand(conn, "destroy-session "+sessionID); err != nil {
		return fmt.Errorf("destroying session %s on %s: %w", sessionID, c.socketPath, err)
	}

	if _, err := io.Copy(io.Discard, conn); err != nil {
		return fmt.Errorf("draining destroy response for session %s: %w", sessionID, err)
	}
	return nil
}

// dial opens a fresh management connection with the response read
// deadline already armed.
func (c *Client) dial(ctx context.Context) (net.Conn, error) {
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("connecting to management socket %s: %w", c.socketPath, err)
	}
	conn.SetReadDeadline(time.Now().Add(responseReadTimeout)) //nolint:realclock // kernel I/O deadline
	return conn, nil
}

// writeCommand sends one command line and half-closes the write side so
// the multiplexor's read loop sees EOF after the command.
func writeCommand(conn net.Conn, command string) error {
	if _, err := io.WriteString(conn, command+"\n"); err != nil {
		return fmt.Errorf("writing command: %w", err)
	}
	if unixConn, ok := conn.(*net.UnixConn); ok {
		unixConn.CloseWrite()
	}
	return nil
}
