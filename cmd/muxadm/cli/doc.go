// Copyright 2026 The Snimux Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for muxadm.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. Commands are assembled into a tree in the commands package
// and dispatched via [Command.Execute], which handles flag parsing,
// subcommand routing, and structured help output with examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3). This is implemented in
// suggest.go.
//
// Flag definitions normally come from struct tags on a params struct via
// [FlagsFromParams], so a command's inputs read as one declaration.
// [JSONOutput] embeds into a params struct to add the conventional --json
// flag and the matching [JSONOutput.EmitJSON] output path.
//
// [DiagnoseSocketError] turns the common failure modes of dialing the
// multiplexor's management socket (not running, stale socket file, bad
// permissions) into errors with actionable hints.
package cli
