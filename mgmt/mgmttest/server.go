// Copyright 2026 The Snimux Authors
// SPDX-License-Identifier: Apache-2.0

// Package mgmttest runs a fake multiplexor management endpoint on a
// real Unix socket, for tests that exercise the management client
// end to end.
package mgmttest

import (
	"io"
	"net"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/snimux/muxadm/lib/testutil"
)

// Server imitates the multiplexor's management channel: one command
// line per connection, one response, then close. It serves a canned
// listing for print-active-sessions and records the ids named by
// destroy-session commands.
type Server struct {
	path     string
	listener net.Listener

	mu          sync.Mutex
	listing     string
	connections int
	refuseAfter int
	destroyed   []string
}

// Start launches a fake management endpoint serving listing (terminator
// line included) on a socket in a short-path temp directory. The
// listener is torn down with the test.
func Start(t *testing.T, listing string) *Server {
	t.Helper()

	socketPath := filepath.Join(testutil.SocketDir(t), "mgmt.sock")
	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		t.Fatalf("listening on %s: %v", socketPath, err)
	}

	server := &Server{
		path:     socketPath,
		listener: listener,
		listing:  listing,
	}
	go server.acceptLoop()
	t.Cleanup(func() {
		_ = listener.Close()
	})
	return server
}

// Path returns the management socket path to hand to a client.
func (s *Server) Path() string {
	return s.path
}

// Destroyed returns the session ids named by destroy-session commands,
// in arrival order.
func (s *Server) Destroyed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.destroyed...)
}

// Connections returns how many connections have been accepted.
func (s *Server) Connections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connections
}

// RefuseAfter shuts the listener down once n more connections have been
// accepted, making later dials fail. Call it before the client starts
// dialing.
func (s *Server) RefuseAfter(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refuseAfter = s.connections + n
}

// acceptLoop serves connections one at a time. Management clients are
// strictly sequential, so serial handling keeps ordering deterministic.
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		s.connections++
		if s.refuseAfter > 0 && s.connections >= s.refuseAfter {
			_ = s.listener.Close()
		}
		s.mu.Unlock()
		s.handle(conn)
	}
}

// handle serves one command-response cycle the way the multiplexor
// does. Reading to EOF only works because the client half-closes after
// its command line; a client that forgets trips the deadline instead of
// hanging the test.
func (s *Server) handle(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(5 * time.Second)) //nolint:realclock // kernel I/O deadline

	request, err := io.ReadAll(conn)
	if err != nil {
		return
	}
	command := strings.TrimSpace(string(request))

	switch {
	case command == "print-active-sessions":
		s.mu.Lock()
		listing := s.listing
		s.mu.Unlock()
		_, _ = io.WriteString(conn, listing)
	case strings.HasPrefix(command, "destroy-session "):
		id := strings.TrimPrefix(command, "destroy-session ")
		s.mu.Lock()
		s.destroyed = append(s.destroyed, id)
		s.mu.Unlock()
		_, _ = io.WriteString(conn, "destroyed "+id+"\n")
	default:
		_, _ = io.WriteString(conn, "unknown command\n")
	}
}
