// Copyright 2026 The Snimux Authors
// SPDX-License-Identifier: Apache-2.0

package mgmt

import (
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestDecodeSessions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  []SessionRecord
	}{
		{
			name:  "empty listing",
			input: "END\n",
			want:  nil,
		},
		{
			name:  "record with all schema attributes",
			input: "a1 connected 10.0.0.1:443,203.0.113.5 session_age_ms=5000 last_xmit_ago_ms=3700000 backend_name=b1\nEND\n",
			want: []SessionRecord{{
				ID:            "a1",
				State:         "connected",
				LocalSockInfo: "10.0.0.1:443,203.0.113.5",
				SessionAge:    5 * time.Second,
				LastXmitAgo:   3700000 * time.Millisecond,
				BackendName:   "b1",
			}},
		},
		{
			name: "listing order preserved",
			input: "s2 connected 10.0.0.1:443,198.51.100.7 session_age_ms=1000\n" +
				"s1 shutdown-write 10.0.0.1:443,198.51.100.8 session_age_ms=2000\n" +
				"END\n",
			want: []SessionRecord{
				{ID: "s2", State: "connected", LocalSockInfo: "10.0.0.1:443,198.51.100.7", SessionAge: time.Second},
				{ID: "s1", State: "shutdown-write", LocalSockInfo: "10.0.0.1:443,198.51.100.8", SessionAge: 2 * time.Second},
			},
		},
		{
			name: "short lines skipped",
			input: "junk\n" +
				"two fields\n" +
				"three fields here\n" +
				"s1 connected 10.0.0.1:443,198.51.100.7 backend_name=b1\n" +
				"END\n",
			want: []SessionRecord{{
				ID:            "s1",
				State:         "connected",
				LocalSockInfo: "10.0.0.1:443,198.51.100.7",
				BackendName:   "b1",
			}},
		},
		{
			name:  "blank lines skipped",
			input: "\n\ns1 connected 10.0.0.1:443,198.51.100.7 backend_name=b1\n\nEND\n",
			want: []SessionRecord{{
				ID:            "s1",
				State:         "connected",
				LocalSockInfo: "10.0.0.1:443,198.51.100.7",
				BackendName:   "b1",
			}},
		},
		{
			name:  "unrecognized state carried through",
			input: "s1 backend-resolving 10.0.0.1:443,198.51.100.7 session_age_ms=10\nEND\n",
			want: []SessionRecord{{
				ID:            "s1",
				State:         "backend-resolving",
				LocalSockInfo: "10.0.0.1:443,198.51.100.7",
				SessionAge:    10 * time.Millisecond,
			}},
		},
		{
			name:  "undeclared attributes decode as strings",
			input: "s1 connected 10.0.0.1:443,198.51.100.7 client_to_backend_bytes=4096 backend_connect_addr=10.1.2.3:8443\nEND\n",
			want: []SessionRecord{{
				ID:            "s1",
				State:         "connected",
				LocalSockInfo: "10.0.0.1:443,198.51.100.7",
				Extras: map[string]Value{
					"client_to_backend_bytes": StringValue("4096"),
					"backend_connect_addr":    StringValue("10.1.2.3:8443"),
				},
			}},
		},
		{
			name:  "attribute value containing equals",
			input: "s1 connected 10.0.0.1:443,198.51.100.7 note=a=b\nEND\n",
			want: []SessionRecord{{
				ID:            "s1",
				State:         "connected",
				LocalSockInfo: "10.0.0.1:443,198.51.100.7",
				Extras:        map[string]Value{"note": StringValue("a=b")},
			}},
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  s1 connected 10.0.0.1:443,198.51.100.7 backend_name=b1  \n  END  \n",
			want: []SessionRecord{{
				ID:            "s1",
				State:         "connected",
				LocalSockInfo: "10.0.0.1:443,198.51.100.7",
				BackendName:   "b1",
			}},
		},
		{
			name:  "input ends before terminator",
			input: "s1 connected 10.0.0.1:443,198.51.100.7 backend_name=b1\n",
			want: []SessionRecord{{
				ID:            "s1",
				State:         "connected",
				LocalSockInfo: "10.0.0.1:443,198.51.100.7",
				BackendName:   "b1",
			}},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got, err := DecodeSessions(strings.NewReader(test.input))
			if err != nil {
				t.Fatalf("DecodeSessions: %v", err)
			}
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("DecodeSessions = %+v, want %+v", got, test.want)
			}
		})
	}
}

func TestDecodeSessionsStopsAtTerminator(t *testing.T) {
	t.Parallel()

	// Everything after END must be ignored, including lines that would
	// otherwise abort the decode.
	input := "s1 connected 10.0.0.1:443,198.51.100.7 backend_name=b1\n" +
		"END\n" +
		"s2 connected 10.0.0.1:443,198.51.100.8 backend_name=b2\n" +
		"s3 connected 10.0.0.1:443,198.51.100.9 not-an-attribute\n"

	got, err := DecodeSessions(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeSessions: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if got[0].ID != "s1" {
		t.Errorf("record ID: got %q, want %q", got[0].ID, "s1")
	}
}

func TestDecodeSessionsErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		input     string
		wantError string
	}{
		{
			name:      "attribute without equals",
			input:     "s1 connected 10.0.0.1:443,198.51.100.7 naked\nEND\n",
			wantError: "missing '='",
		},
		{
			name:      "non-numeric session age",
			input:     "s1 connected 10.0.0.1:443,198.51.100.7 session_age_ms=soon\nEND\n",
			wantError: "session_age_ms",
		},
		{
			name:      "non-numeric last transmit",
			input:     "s1 connected 10.0.0.1:443,198.51.100.7 last_xmit_ago_ms=12x\nEND\n",
			wantError: "last_xmit_ago_ms",
		},
		{
			name: "double space yields empty attribute token",
			// The split is on single spaces, so "x,y  k=v" leaves a
			// leading empty token in the attribute section.
			input:     "s1 connected 10.0.0.1:443,198.51.100.7  session_age_ms=5\nEND\n",
			wantError: "missing '='",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			records, err := DecodeSessions(strings.NewReader(test.input))
			if err == nil {
				t.Fatalf("DecodeSessions = %+v, want error containing %q", records, test.wantError)
			}
			if !strings.Contains(err.Error(), test.wantError) {
				t.Errorf("error %q does not contain %q", err, test.wantError)
			}
		})
	}
}

func TestDecodeSessionLineEmptyAttributeSection(t *testing.T) {
	t.Parallel()

	// A four-field split with an empty fourth field means zero extras,
	// not a parse error. The listing path trims lines before splitting
	// so this shape only arises through the split itself.
	record, ok, err := decodeSessionLine("s1 connected 10.0.0.1:443,198.51.100.7 ")
	if err != nil {
		t.Fatalf("decodeSessionLine: %v", err)
	}
	if !ok {
		t.Fatal("decodeSessionLine: record rejected, want accepted")
	}
	if record.Extras != nil {
		t.Errorf("Extras = %v, want nil", record.Extras)
	}
	if record.ID != "s1" || record.State != "connected" {
		t.Errorf("record = %+v, want s1/connected", record)
	}
}

func TestDecodeSessionLineCountsEmptyFields(t *testing.T) {
	t.Parallel()

	// Consecutive spaces produce empty fields that count toward the
	// four, mirroring a literal single-space split.
	record, ok, err := decodeSessionLine("s1 connected  backend_name=b1")
	if err != nil {
		t.Fatalf("decodeSessionLine: %v", err)
	}
	if !ok {
		t.Fatal("decodeSessionLine: record rejected, want accepted")
	}
	if record.LocalSockInfo != "" {
		t.Errorf("LocalSockInfo = %q, want empty", record.LocalSockInfo)
	}
	if record.BackendName != "b1" {
		t.Errorf("BackendName = %q, want %q", record.BackendName, "b1")
	}
}

func TestParseMillisecondsRoundTrip(t *testing.T) {
	t.Parallel()

	// The decoded duration must reproduce the wire's millisecond count
	// exactly, including values past a day where naive float math
	// loses precision.
	milliseconds := []int64{
		0,
		1,
		999,
		1000,
		5000,
		3700000,
		86399999,
		86400000,
		86400001,
		172800001,
		9000000000000,
	}
	for _, ms := range milliseconds {
		decoded, err := parseMilliseconds("session_age_ms", strconv.FormatInt(ms, 10))
		if err != nil {
			t.Fatalf("parseMilliseconds(%d): %v", ms, err)
		}
		if got := decoded.Milliseconds(); got != ms {
			t.Errorf("parseMilliseconds(%d).Milliseconds() = %d, want %d", ms, got, ms)
		}
	}
}

func TestDecodeExtraDeclaredKinds(t *testing.T) {
	t.Parallel()

	// The declared-kind table drives typed decoding for attributes
	// outside the fixed schema.
	duration, err := decodeExtra("last_xmit_ago_ms", "1500")
	if err != nil {
		t.Fatalf("decodeExtra: %v", err)
	}
	if duration != DurationValue(1500*time.Millisecond) {
		t.Errorf("decodeExtra(last_xmit_ago_ms) = %v, want %v", duration, DurationValue(1500*time.Millisecond))
	}

	raw, err := decodeExtra("backend_connect_latency_ms_p99", "17")
	if err != nil {
		t.Fatalf("decodeExtra: %v", err)
	}
	if raw != StringValue("17") {
		t.Errorf("decodeExtra(undeclared) = %v, want %v", raw, StringValue("17"))
	}
}
