// Copyright 2026 The Snimux Authors
// SPDX-License-Identifier: Apache-2.0

// Package session implements the "sessions", "reap", and "destroy"
// subcommands that inspect and prune the multiplexor's session table.
//
// ListCommand renders a sorted session listing, either decoding a
// listing piped to stdin or fetching one live from the management
// socket with --live. ReapCommand destroys sessions that have sat idle
// past their state's allowance, printing each one as a table row for
// cron mail. DestroyCommand tears down explicitly named sessions.
//
// All three talk to the multiplexor through [mgmt.Client], one
// connection per command.
package session
