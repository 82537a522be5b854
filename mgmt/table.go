// Copyright 2026 The Snimux Authors
// SPDX-License-Identifier: Apache-2.0

package mgmt

import "fmt"

// rowFormat is the fixed column layout shared by the listing tool and
// the reaper: session id, state, session age, last transmit, backend,
// client address. The 28-wide id column fits a 27-character KSUID with
// one space of gutter; longer cell values widen their column rather
// than truncate.
const rowFormat = "%-28s %-16s %-15s %-15s %-20s %s"

// TableHeader returns the column header line for session tables.
func TableHeader() string {
	return fmt.Sprintf(rowFormat,
		"session_id", "state", "session_age", "last_xmit_ago", "backend", "client ip")
}

// TableRow renders one session as a table line. Durations use Go's
// compact form (e.g. "1h1m40s"); the final column is the client address
// half of the socket info.
func TableRow(record SessionRecord) string {
	return fmt.Sprintf(rowFormat,
		record.ID,
		record.State,
		record.SessionAge.String(),
		record.LastXmitAgo.String(),
		record.BackendName,
		record.ClientIP(),
	)
}
