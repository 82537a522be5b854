// Copyright 2026 The Snimux Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/snimux/muxadm/cmd/muxadm/cli"
	"github.com/snimux/muxadm/mgmt"
)

// ListCommand returns the "sessions" command.
//
// Flags stays nil on purpose: the sort field may begin with '-' for
// descending order (e.g. -session_age), which a flag parser would
// reject as an unknown flag. Run scans its own args instead.
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:    "sessions",
		Summary: "List active sessions",
		Description: `List the multiplexor's active sessions as a sorted table.

By default the listing is read from stdin, so the output of the
management channel's print-active-sessions command can be piped in.
With --live, muxadm connects to the management socket and fetches
the listing itself.

The sort field is one of: session_id, state, local_sock_info,
session_age, last_xmit_ago, backend, or extras.<key> for an extra
attribute. Prefix the field with '-' to sort descending.`,
		Usage: "muxadm sessions [--live] [--json] [--socket PATH] <sort-field>",
		Examples: []cli.Example{
			{
				Description: "Fetch live sessions, oldest first",
				Command:     "muxadm sessions --live session_age",
			},
			{
				Description: "Most recently active sessions first, from a saved listing",
				Command:     "muxadm sessions -last_xmit_ago < listing.txt",
			},
			{
				Description: "Live sessions as JSON, sorted by backend",
				Command:     "muxadm sessions --live --json backend",
			},
		},
		Run: func(args []string) error {
			return runSessions(os.Stdin, os.Stdout, args)
		},
	}
}

// sessionEntry is the JSON shape of one session in --json output.
// Durations are rendered as Go duration strings.
type sessionEntry struct {
	SessionID   string            `json:"session_id"`
	State       string            `json:"state"`
	LocalBind   string            `json:"local_bind"`
	ClientIP    string            `json:"client_ip"`
	SessionAge  string            `json:"session_age"`
	LastXmitAgo string            `json:"last_xmit_ago"`
	Backend     string            `json:"backend,omitempty"`
	Extras      map[string]string `json:"extras,omitempty"`
}

func runSessions(stdin io.Reader, stdout io.Writer, args []string) error {
	var (
		live       bool
		socketPath string
		expression string
		output     cli.JSONOutput
	)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--live":
			live = true
		case arg == "--json":
			output.OutputJSON = true
		case arg == "--socket":
			i++
			if i == len(args) {
				return fmt.Errorf("--socket requires a path")
			}
			socketPath = args[i]
		case strings.HasPrefix(arg, "--socket="):
			socketPath = strings.TrimPrefix(arg, "--socket=")
		case expression == "":
			expression = arg
		default:
			return fmt.Errorf("unexpected argument %q", arg)
		}
	}
	if expression == "" {
		return fmt.Errorf("sort field required (e.g. session_age or -last_xmit_ago)")
	}

	var records []mgmt.SessionRecord
	if live {
		client := mgmt.NewClient(socketPath)
		listed, err := client.ListSessions(context.Background())
		if err != nil {
			if hinted := cli.DiagnoseSocketError(err, client.SocketPath()); hinted != nil {
				return hinted
			}
			return err
		}
		records = listed
	} else {
		if socketPath != "" {
			return fmt.Errorf("--socket only applies with --live (otherwise the listing is read from stdin)")
		}
		decoded, err := mgmt.DecodeSessions(stdin)
		if err != nil {
			return err
		}
		records = decoded
	}

	if err := mgmt.SortByField(records, expression); err != nil {
		return err
	}

	if done, err := output.EmitJSON(stdout, sessionEntries(records)); done {
		return err
	}

	fmt.Fprintln(stdout, mgmt.TableHeader())
	for _, record := range records {
		fmt.Fprintln(stdout, mgmt.TableRow(record))
	}
	return nil
}

// sessionEntries converts decoded records to their JSON output shape.
func sessionEntries(records []mgmt.SessionRecord) []sessionEntry {
	entries := make([]sessionEntry, 0, len(records))
	for _, record := range records {
		entry := sessionEntry{
			SessionID:   record.ID,
			State:       record.State,
			LocalBind:   record.LocalBind(),
			ClientIP:    record.ClientIP(),
			SessionAge:  record.SessionAge.String(),
			LastXmitAgo: record.LastXmitAgo.String(),
			Backend:     record.BackendName,
		}
		if len(record.Extras) > 0 {
			entry.Extras = make(map[string]string, len(record.Extras))
			for key, value := range record.Extras {
				entry.Extras[key] = value.String()
			}
		}
		entries = append(entries, entry)
	}
	return entries
}
