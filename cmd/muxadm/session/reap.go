// Copyright 2026 The Snimux Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/snimux/muxadm/cmd/muxadm/cli"
	"github.com/snimux/muxadm/mgmt"
)

// reapParams holds the parameters for the reap command.
type reapParams struct {
	Socket string `flag:"socket" desc:"management socket path" default:"/var/run/sni-multiplexor-mgmt"`
	DryRun bool   `flag:"dry-run" desc:"print stale sessions without destroying them"`
}

// ReapCommand returns the "reap" command.
func ReapCommand() *cli.Command {
	var params reapParams

	return &cli.Command{
		Name:    "reap",
		Summary: "Destroy stale sessions",
		Description: `Destroy sessions that have sat idle past their state's allowance.

Staleness is judged against a single listing snapshot by two rules:
sessions in shutdown-write idle for more than 10 minutes, and sessions
in connected idle for more than 1 hour. Each stale session is printed
as a table row before its destroy command is sent, so cron mail shows
exactly what was reaped. A run that finds nothing prints nothing.

The multiplexor answers destroy commands in prose and treats unknown
or already-closed sessions as a no-op, so only transport failures
abort the run.`,
		Usage: "muxadm reap [flags]",
		Examples: []cli.Example{
			{
				Description: "Destroy everything stale",
				Command:     "muxadm reap",
			},
			{
				Description: "Show what a reap would destroy",
				Command:     "muxadm reap --dry-run",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("reap", &params)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			client := mgmt.NewClient(params.Socket)
			logger := cli.NewCommandLogger().With(
				"command", "reap",
				"socket", client.SocketPath(),
			)
			return runReap(context.Background(), client, os.Stdout, params.DryRun, logger)
		},
	}
}

func runReap(ctx context.Context, client *mgmt.Client, out io.Writer, dryRun bool, logger *slog.Logger) error {
	records, err := client.ListSessions(ctx)
	if err != nil {
		if hinted := cli.DiagnoseSocketError(err, client.SocketPath()); hinted != nil {
			return hinted
		}
		return err
	}

	stale := mgmt.SelectStale(records, mgmt.DefaultRules())
	if len(stale) == 0 {
		logger.Debug("no stale sessions", "active", len(records))
		return nil
	}

	for _, record := range stale {
		fmt.Fprintln(out, mgmt.TableRow(record))
		if dryRun {
			continue
		}
		if err := client.DestroySession(ctx, record.ID); err != nil {
			if hinted := cli.DiagnoseSocketError(err, client.SocketPath()); hinted != nil {
				return hinted
			}
			return err
		}
	}

	if dryRun {
		logger.Info("dry run, nothing destroyed",
			"stale", len(stale),
			"active", len(records),
		)
		return nil
	}
	logger.Info("reaped stale sessions",
		"destroyed", len(stale),
		"active", len(records),
	)
	return nil
}
