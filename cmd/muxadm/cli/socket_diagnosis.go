// Copyright 2026 The Snimux Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"syscall"
)

// DiagnoseSocketError inspects a failure to reach the multiplexor's
// management socket and, when the cause is one of the common deployment
// problems, returns the error annotated with an actionable hint. If the
// error is not recognized, returns nil and the caller should surface
// the original error unchanged.
//
// Three failure modes get hints:
//
//   - ENOENT: the socket path does not exist. Either the multiplexor
//     is not running or it puts its socket somewhere else.
//   - ECONNREFUSED: the socket file exists but nothing is listening.
//     The multiplexor exited without unlinking it.
//   - EACCES/EPERM: the socket is live but this user cannot open it.
//
// The annotated error wraps the original, so errors.Is still sees the
// underlying errno through the hint.
func DiagnoseSocketError(err error, socketPath string) error {
	switch {
	case errors.Is(err, syscall.ENOENT):
		return fmt.Errorf("%w\n"+
			"The multiplexor is not running on this machine, or it puts its\n"+
			"management socket somewhere other than %s.\n"+
			"Check the process:\n"+
			"  pgrep -a sni-multiplexor\n"+
			"If the socket lives elsewhere, pass the path with --socket.", err, socketPath)

	case errors.Is(err, syscall.ECONNREFUSED):
		return fmt.Errorf("%w\n"+
			"The socket file exists but nothing is listening on it, which\n"+
			"usually means the multiplexor exited without unlinking it.\n"+
			"Restart the multiplexor; it rebinds %s at startup.", err, socketPath)

	case errors.Is(err, syscall.EACCES), errors.Is(err, syscall.EPERM):
		return fmt.Errorf("%w\n"+
			"The management socket is restricted to the multiplexor's service\n"+
			"user. Check the socket's ownership and mode:\n"+
			"  ls -la %s\n"+
			"and run muxadm as that user (or root).", err, socketPath)
	}

	return nil
}
