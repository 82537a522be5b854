// Copyright 2026 The Snimux Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/snimux/muxadm/cmd/muxadm/cli"
	"github.com/snimux/muxadm/mgmt"
)

// destroyParams holds the parameters for the destroy command.
type destroyParams struct {
	Socket string `flag:"socket" desc:"management socket path" default:"/var/run/sni-multiplexor-mgmt"`
}

// DestroyCommand returns the "destroy" command.
func DestroyCommand() *cli.Command {
	var params destroyParams

	return &cli.Command{
		Name:    "destroy",
		Summary: "Destroy sessions by id",
		Description: `Tear down the named sessions over the management channel.

Ids come from the sessions listing. The multiplexor answers in prose
and treats unknown or already-closed sessions as a no-op, so only
transport failures are reported.`,
		Usage: "muxadm destroy [flags] <session-id>...",
		Examples: []cli.Example{
			{
				Description: "Destroy two sessions",
				Command:     "muxadm destroy 2tPpXoVg5kpQ6ZtItEEq3BAgGFu 2tPpXp5qyzzXw4eYtLZk3sbQibK",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("destroy", &params)
		},
		Run: func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("at least one session id required")
			}
			client := mgmt.NewClient(params.Socket)
			logger := cli.NewCommandLogger().With(
				"command", "destroy",
				"socket", client.SocketPath(),
			)
			return runDestroy(context.Background(), client, args, logger)
		},
	}
}

func runDestroy(ctx context.Context, client *mgmt.Client, sessionIDs []string, logger *slog.Logger) error {
	for _, sessionID := range sessionIDs {
		if err := client.DestroySession(ctx, sessionID); err != nil {
			if hinted := cli.DiagnoseSocketError(err, client.SocketPath()); hinted != nil {
				return hinted
			}
			return err
		}
		logger.Info("destroy requested", "session_id", sessionID)
	}
	return nil
}
