// Copyright 2026 The Snimux Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the muxadm command tree.
package commands

import (
	"fmt"

	"github.com/snimux/muxadm/cmd/muxadm/cli"
	"github.com/snimux/muxadm/cmd/muxadm/session"
	"github.com/snimux/muxadm/lib/version"
)

// Root builds and returns the muxadm command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "muxadm",
		Description: `Muxadm: maintenance tooling for the SNI connection multiplexor.

Talks to the multiplexor's management socket to list active sessions
and to destroy sessions that are stale or misbehaving.`,
		Subcommands: []*cli.Command{
			session.ListCommand(),
			session.ReapCommand(),
			session.DestroyCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("muxadm %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "List live sessions, oldest first",
				Command:     "muxadm sessions --live session_age",
			},
			{
				Description: "Destroy stale sessions (run from cron)",
				Command:     "muxadm reap",
			},
			{
				Description: "Preview a reap without destroying anything",
				Command:     "muxadm reap --dry-run",
			},
			{
				Description: "Destroy a session by id",
				Command:     "muxadm destroy 2tPpXoVg5kpQ6ZtItEEq3BAgGFu",
			},
		},
	}
}
