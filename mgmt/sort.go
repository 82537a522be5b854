// Copyright 2026 The Snimux Authors
// SPDX-License-Identifier: Apache-2.0

package mgmt

import (
	"fmt"
	"sort"
	"strings"
)

// sortKeyFunc extracts one comparable field from a record.
type sortKeyFunc func(SessionRecord) Value

// SortByField sorts records in place by the named field; a leading '-'
// sorts descending. The sort is stable both ways: records with equal
// keys keep their listing order, descending included, because only the
// comparison flips, never the tie order.
//
// Field names follow the table header (session_id, state,
// local_sock_info, session_age, last_xmit_ago, backend) plus the
// dotted form "extras.<key>" for attributes outside the fixed schema.
// Records missing a sorted-on extras key sort as the zero value of the
// key's declared kind. An unknown field name is an error.
func SortByField(records []SessionRecord, expression string) error {
	field := expression
	descending := false
	if rest, ok := strings.CutPrefix(expression, "-"); ok {
		field = rest
		descending = true
	}

	key, err := sortKeyFor(field)
	if err != nil {
		return err
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := key(records[i]), key(records[j])
		if descending {
			a, b = b, a
		}
		return a.Compare(b) < 0
	})
	return nil
}

// sortKeyFor resolves a field name to its extractor.
func sortKeyFor(field string) (sortKeyFunc, error) {
	switch field {
	case "session_id":
		return func(r SessionRecord) Value { return StringValue(r.ID) }, nil
	case "state":
		return func(r SessionRecord) Value { return StringValue(r.State) }, nil
	case "local_sock_info":
		return func(r SessionRecord) Value { return StringValue(r.LocalSockInfo) }, nil
	case "session_age":
		return func(r SessionRecord) Value { return DurationValue(r.SessionAge) }, nil
	case "last_xmit_ago":
		return func(r SessionRecord) Value { return DurationValue(r.LastXmitAgo) }, nil
	case "backend":
		return func(r SessionRecord) Value { return StringValue(r.BackendName) }, nil
	}
	if extraKey, ok := strings.CutPrefix(field, "extras."); ok && extraKey != "" {
		missing := zeroValue(extraKinds[extraKey])
		return func(r SessionRecord) Value {
			if v, ok := r.Extras[extraKey]; ok {
				return v
			}
			return missing
		}, nil
	}
	return nil, fmt.Errorf("unknown sort field %q (fields: session_id, state, local_sock_info, session_age, last_xmit_ago, backend, extras.<key>)", field)
}

// zeroValue returns the zero Value of a declared kind.
func zeroValue(kind Kind) Value {
	switch kind {
	case KindInt:
		return IntValue(0)
	case KindDuration:
		return DurationValue(0)
	default:
		return StringValue("")
	}
}
