// Copyright 2026 The Snimux Authors
// SPDX-License-Identifier: Apache-2.0

// Muxadm is the operator CLI for the SNI connection multiplexor. It
// talks to the multiplexor's management socket to inspect and tear
// down active sessions: sessions prints a sorted listing, reap
// destroys sessions that have sat idle past their state's allowance,
// and destroy tears down sessions by id.
package main
