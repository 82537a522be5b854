// Copyright 2026 The Snimux Authors
// SPDX-License-Identifier: Apache-2.0

package mgmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// terminatorLine ends a session listing. It is consumed, never decoded,
// and nothing after it is examined.
const terminatorLine = "END"

// extraKinds declares the decode type for extras attributes; keys absent
// here decode as strings, so adding a numeric attribute is a one-line
// change. The two millisecond counters are listed for completeness even
// though the fixed-field dispatch in setAttribute claims them before
// this table is consulted.
var extraKinds = map[string]Kind{
	"session_age_ms":   KindDuration,
	"last_xmit_ago_ms": KindDuration,
}

// DecodeSessions reads a session listing from r: one record per line,
// terminated by a line equal to "END" after whitespace trimming. The
// terminator stops the decode immediately; trailing input is never
// examined. Input that ends before the terminator is not an error: the
// records decoded so far are returned.
//
// A line with fewer than four single-space-separated fields is skipped
// silently. A malformed attribute token (no '=') or a non-numeric value
// for a numeric attribute aborts the whole decode.
func DecodeSessions(r io.Reader) ([]SessionRecord, error) {
	var records []SessionRecord
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == terminatorLine {
			return records, nil
		}
		record, ok, err := decodeSessionLine(line)
		if err != nil {
			return nil, fmt.Errorf("listing line %d: %w", lineNumber, err)
		}
		if !ok {
			continue
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading session listing: %w", err)
	}
	return records, nil
}

// decodeSessionLine parses one listing line of the form
//
//	<session_id> <state> <local_bind>,<client_ip> <key>=<value> ...
//
// ok is false for lines with fewer than four fields, which the protocol
// treats as noise. The split is on single spaces: consecutive spaces
// produce empty fields that count toward the four.
func decodeSessionLine(line string) (SessionRecord, bool, error) {
	fields := strings.SplitN(line, " ", 4)
	if len(fields) < 4 {
		return SessionRecord{}, false, nil
	}

	record := SessionRecord{
		ID:            fields[0],
		State:         fields[1],
		LocalSockInfo: fields[2],
	}

	rest := fields[3]
	if rest == "" {
		// A record whose attribute section is empty has zero extras.
		// Splitting "" would yield one empty token and a spurious
		// missing-'=' error.
		return record, true, nil
	}
	for _, pair := range strings.Split(rest, " ") {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			return SessionRecord{}, false, fmt.Errorf("attribute %q: missing '='", pair)
		}
		if err := record.setAttribute(key, value); err != nil {
			return SessionRecord{}, false, err
		}
	}
	return record, true, nil
}

// setAttribute stores one decoded key=value attribute. The three schema
// keys land in fixed fields; everything else goes to Extras with its
// declared kind.
func (r *SessionRecord) setAttribute(key, value string) error {
	switch key {
	case "session_age_ms":
		age, err := parseMilliseconds(key, value)
		if err != nil {
			return err
		}
		r.SessionAge = age
	case "last_xmit_ago_ms":
		idle, err := parseMilliseconds(key, value)
		if err != nil {
			return err
		}
		r.LastXmitAgo = idle
	case "backend_name":
		r.BackendName = value
	default:
		decoded, err := decodeExtra(key, value)
		if err != nil {
			return err
		}
		if r.Extras == nil {
			r.Extras = make(map[string]Value)
		}
		r.Extras[key] = decoded
	}
	return nil
}

// decodeExtra decodes a non-schema attribute per its declared kind.
func decodeExtra(key, value string) (Value, error) {
	switch extraKinds[key] {
	case KindInt:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("attribute %s: integer %q: %w", key, value, err)
		}
		return IntValue(n), nil
	case KindDuration:
		d, err := parseMilliseconds(key, value)
		if err != nil {
			return Value{}, err
		}
		return DurationValue(d), nil
	default:
		return StringValue(value), nil
	}
}

// parseMilliseconds decodes a millisecond counter into a duration.
// time.Duration is an integer nanosecond count, so the conversion is
// exact: the result's millisecond total equals the input across the
// full range the multiplexor can emit.
func parseMilliseconds(key, value string) (time.Duration, error) {
	ms, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("attribute %s: milliseconds %q: %w", key, value, err)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
