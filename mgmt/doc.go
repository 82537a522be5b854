// Copyright 2026 The Snimux Authors
// SPDX-License-Identifier: Apache-2.0

// Package mgmt speaks the SNI multiplexor's management protocol: the
// line-oriented control channel on a local Unix socket, distinct from the
// data-plane proxying traffic.
//
// [Client] issues the protocol's two commands, each over its own
// connection: print-active-sessions, whose response [DecodeSessions]
// turns into [SessionRecord] values, and destroy-session, whose response
// is drained and discarded. [SelectStale] applies the reaper's per-state
// idle thresholds ([DefaultRules]) to one listing snapshot. [SortByField]
// orders records for display, and [TableHeader]/[TableRow] produce the
// fixed-width listing layout.
//
// Records are snapshots: built from one listing response, consumed by
// policy or sort logic, and discarded. Nothing in this package holds
// state between runs.
package mgmt
