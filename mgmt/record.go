// Copyright 2026 The Snimux Authors
// SPDX-License-Identifier: Apache-2.0

package mgmt

import (
	"strconv"
	"strings"
	"time"
)

// SessionRecord is one active proxied connection as reported by the
// multiplexor at a single instant. Records are ephemeral: built from one
// listing response, consumed by policy or sort logic, and discarded when
// the run ends.
type SessionRecord struct {
	// ID is the multiplexor's opaque session identifier (a KSUID in
	// current builds). Unique among live sessions and not reused while
	// the session is up.
	ID string

	// State is the session's lifecycle state. The reaping policy knows
	// "connected" and "shutdown-write"; any other name the multiplexor
	// emits is carried through opaquely.
	State string

	// LocalSockInfo is the wire's composite third field: the local bind
	// description and the client address joined by a comma. Either half
	// could in principle contain further commas, so it is only ever
	// split once, on the first one. See LocalBind and ClientIP.
	LocalSockInfo string

	// SessionAge is how long the session has existed, decoded from the
	// session_age_ms counter.
	SessionAge time.Duration

	// LastXmitAgo is the elapsed time since the session last moved
	// bytes, decoded from the last_xmit_ago_ms counter. All staleness
	// decisions key off this.
	LastXmitAgo time.Duration

	// BackendName names the upstream this session is routed to. Not
	// every record carries one; empty is valid.
	BackendName string

	// Extras holds attributes outside the fixed schema, typed per the
	// declared-kind table in decode.go. Nil when the record has none.
	Extras map[string]Value
}

// LocalBind returns the local bind half of LocalSockInfo.
func (r SessionRecord) LocalBind() string {
	bind, _, _ := strings.Cut(r.LocalSockInfo, ",")
	return bind
}

// ClientIP returns the client address half of LocalSockInfo, or the
// empty string when the wire token carried no comma.
func (r SessionRecord) ClientIP() string {
	_, clientIP, _ := strings.Cut(r.LocalSockInfo, ",")
	return clientIP
}

// Kind discriminates the variants of a Value.
type Kind int

const (
	// KindString is the default for attributes with no declared type.
	KindString Kind = iota
	// KindInt is a decoded integer attribute.
	KindInt
	// KindDuration is a decoded millisecond-counter attribute.
	KindDuration
)

// Value is one extras attribute with its decoded type. The zero Value
// is the empty string.
type Value struct {
	kind     Kind
	str      string
	integer  int64
	duration time.Duration
}

// StringValue returns a string-kinded Value.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// IntValue returns an integer-kinded Value.
func IntValue(v int64) Value { return Value{kind: KindInt, integer: v} }

// DurationValue returns a duration-kinded Value.
func DurationValue(d time.Duration) Value { return Value{kind: KindDuration, duration: d} }

// Kind returns the variant of v.
func (v Value) Kind() Kind { return v.kind }

// String renders v for table cells and JSON output.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.integer, 10)
	case KindDuration:
		return v.duration.String()
	default:
		return v.str
	}
}

// Compare orders v against other: negative when v sorts first, zero on
// ties, positive when other sorts first. Values of one extras key always
// share a kind (the declared-kind table is static), so the mixed-kind
// case only shows up if that table changes between decodes; it falls
// back to comparing rendered strings.
func (v Value) Compare(other Value) int {
	if v.kind != other.kind {
		return strings.Compare(v.String(), other.String())
	}
	switch v.kind {
	case KindInt:
		switch {
		case v.integer < other.integer:
			return -1
		case v.integer > other.integer:
			return 1
		}
		return 0
	case KindDuration:
		switch {
		case v.duration < other.duration:
			return -1
		case v.duration > other.duration:
			return 1
		}
		return 0
	default:
		return strings.Compare(v.str, other.str)
	}
}
