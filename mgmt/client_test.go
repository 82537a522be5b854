// Copyright 2026 The Snimux Authors
// SPDX-License-Identifier: Apache-2.0

package mgmt

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/snimux/muxadm/lib/testutil"
	"github.com/snimux/muxadm/mgmt/mgmttest"
)

func TestClientListSessions(t *testing.T) {
	t.Parallel()

	server := mgmttest.Start(t, strings.Join([]string{
		"2tPpXoVg5kpQ6ZtItEEq3BAgGFu connected 172.16.0.10:443,203.0.113.44:51822 session_age_ms=5000 last_xmit_ago_ms=1000 backend_name=web-tier",
		"2tPpXp5qyzzXw4eYtLZk3sbQibK shutdown-write 172.16.0.10:443,203.0.113.45:40188 session_age_ms=120000 last_xmit_ago_ms=725000 backend_name=web-tier",
		"END",
		"",
	}, "\n"))

	client := NewClient(server.Path())
	records, err := client.ListSessions(context.Background())
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}

	want := []SessionRecord{
		{
			ID:            "2tPpXoVg5kpQ6ZtItEEq3BAgGFu",
			State:         "connected",
			LocalSockInfo: "172.16.0.10:443,203.0.113.44:51822",
			SessionAge:    5 * time.Second,
			LastXmitAgo:   time.Second,
			BackendName:   "web-tier",
		},
		{
			ID:            "2tPpXp5qyzzXw4eYtLZk3sbQibK",
			State:         "shutdown-write",
			LocalSockInfo: "172.16.0.10:443,203.0.113.45:40188",
			SessionAge:    2 * time.Minute,
			LastXmitAgo:   725 * time.Second,
			BackendName:   "web-tier",
		},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("ListSessions() = %+v, want %+v", records, want)
	}
}

func TestClientListSessionsEmpty(t *testing.T) {
	t.Parallel()

	server := mgmttest.Start(t, "END\n")
	client := NewClient(server.Path())

	records, err := client.ListSessions(context.Background())
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("ListSessions() = %+v, want no records", records)
	}
}

func TestClientListSessionsDecodeError(t *testing.T) {
	t.Parallel()

	server := mgmttest.Start(t, "s1 connected 10.0.0.1:443 bogus\nEND\n")
	client := NewClient(server.Path())

	_, err := client.ListSessions(context.Background())
	if err == nil {
		t.Fatal("ListSessions succeeded on a malformed listing")
	}
	if !strings.Contains(err.Error(), "missing '='") {
		t.Errorf("error %q does not name the malformed attribute", err)
	}
	if !strings.Contains(err.Error(), server.Path()) {
		t.Errorf("error %q does not name the socket", err)
	}
}

func TestClientDestroySession(t *testing.T) {
	t.Parallel()

	server := mgmttest.Start(t, "END\n")
	client := NewClient(server.Path())

	for _, id := range []string{"2tPpXoVg5kpQ6ZtItEEq3BAgGFu", "2tPpXp5qyzzXw4eYtLZk3sbQibK"} {
		if err := client.DestroySession(context.Background(), id); err != nil {
			t.Fatalf("DestroySession(%s): %v", id, err)
		}
	}

	want := []string{"2tPpXoVg5kpQ6ZtItEEq3BAgGFu", "2tPpXp5qyzzXw4eYtLZk3sbQibK"}
	if got := server.Destroyed(); !reflect.DeepEqual(got, want) {
		t.Errorf("destroyed sessions = %v, want %v", got, want)
	}
}

// TestClientFreshConnectionPerCommand pins the one-shot connection
// model: three commands mean three connections, never a reused one.
func TestClientFreshConnectionPerCommand(t *testing.T) {
	t.Parallel()

	server := mgmttest.Start(t, "END\n")
	client := NewClient(server.Path())

	if _, err := client.ListSessions(context.Background()); err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	for _, id := range []string{"s1", "s2"} {
		if err := client.DestroySession(context.Background(), id); err != nil {
			t.Fatalf("DestroySession(%s): %v", id, err)
		}
	}

	if got := server.Connections(); got != 3 {
		t.Errorf("server accepted %d connections, want 3", got)
	}
}

func TestClientDialFailure(t *testing.T) {
	t.Parallel()

	// A directory that exists but holds no socket: the dial itself must
	// fail, and the error must surface the underlying ENOENT so callers
	// can tell "not running" apart from other failures.
	path := filepath.Join(testutil.SocketDir(t), "absent.sock")
	client := NewClient(path)

	_, err := client.ListSessions(context.Background())
	if err == nil {
		t.Fatal("ListSessions succeeded without a socket")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error %q does not wrap fs.ErrNotExist", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q does not name the socket", err)
	}

	if destroyErr := client.DestroySession(context.Background(), "s1"); !errors.Is(destroyErr, fs.ErrNotExist) {
		t.Errorf("DestroySession error %q does not wrap fs.ErrNotExist", destroyErr)
	}
}

func TestNewClientDefaultPath(t *testing.T) {
	t.Parallel()

	if got := NewClient("").SocketPath(); got != DefaultSocketPath {
		t.Errorf("SocketPath() = %q, want %q", got, DefaultSocketPath)
	}
	if got := NewClient("/tmp/other.sock").SocketPath(); got != "/tmp/other.sock" {
		t.Errorf("SocketPath() = %q, want %q", got, "/tmp/other.sock")
	}
}
