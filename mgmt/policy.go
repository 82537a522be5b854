// Copyright 2026 The Snimux Authors
// SPDX-License-Identifier: Apache-2.0

package mgmt

import "time"

// ReapRule marks sessions in one state as stale once they have sat idle
// past a threshold.
type ReapRule struct {
	// State is the exact session state the rule applies to.
	State string

	// MaxIdle is the largest LastXmitAgo tolerated in that state.
	// Strictly more than this is stale.
	MaxIdle time.Duration
}

// Matches reports whether record is stale under r. The decision is a
// pure function of the record's state and idle time; rules never
// consult the wall clock or re-query the multiplexor.
func (r ReapRule) Matches(record SessionRecord) bool {
	return record.State == r.State && record.LastXmitAgo > r.MaxIdle
}

// DefaultRules returns the reaper's built-in policy, in evaluation
// order. A session mid-shutdown normally drains in moments, so ten idle
// minutes means the peer is gone; a fully connected session gets an
// hour before an idle hold counts as abandoned.
func DefaultRules() []ReapRule {
	return []ReapRule{
		{State: "shutdown-write", MaxIdle: 10 * time.Minute},
		{State: "connected", MaxIdle: time.Hour},
	}
}

// SelectStale returns the records to destroy: one pass per rule, in
// rule order, every pass over the same snapshot, appending matches in
// snapshot order. The snapshot is never re-fetched between passes, and
// nothing re-checks a session's live state before it is acted on: a
// session that moved on since the listing gets destroyed anyway, which
// the multiplexor treats as a no-op.
func SelectStale(records []SessionRecord, rules []ReapRule) []SessionRecord {
	var stale []SessionRecord
	for _, rule := range rules {
		for _, record := range records {
			if rule.Matches(record) {
				stale = append(stale, record)
			}
		}
	}
	return stale
}
