/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package feed

import "testing"

// frame builds one [pad, length, type, payload...] record
func frame(msgType byte, payload []byte) []byte {
	out := []byte{0, byte(len(payload) + 1), msgType}
	return append(out, payload...)
}

func TestReader_SingleRecord(t *testing.T) {
	buf := frame('T', be32(30000))
	r := NewReader(buf)

	if r.Done() {
		t.Fatalf("expected reader to have data")
	}
	mt, payload, err := r.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mt != 'T' || len(payload) != 4 {
		t.Fatalf("unexpected frame: type=%q len=%d", mt, len(payload))
	}
	if !r.Done() {
		t.Fatalf("expected reader to be exhausted")
	}
}

func TestReader_MultipleRecords(t *testing.T) {
	var buf []byte
	buf = append(buf, frame('T', be32(1))...)
	buf = append(buf, frame('D', be64(1))...)

	r := NewReader(buf)
	var seen []byte
	for !r.Done() {
		mt, _, err := r.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen = append(seen, mt)
	}
	if string(seen) != "TD" {
		t.Fatalf("expected types T then D, got %q", seen)
	}
}

func TestReader_TruncatedHeader(t *testing.T) {
	r := NewReader([]byte{0, 5}) // header claims a type+payload that isn't there
	if _, _, err := r.Next(); err != ErrTruncatedFrame {
		t.Fatalf("expected ErrTruncatedFrame, got %v", err)
	}
}

func TestReader_TruncatedPayload(t *testing.T) {
	// length says 10 bytes of payload follow the type byte, but only 2 are present.
	buf := []byte{0, 11, 'A', 1, 2}
	r := NewReader(buf)
	if _, _, err := r.Next(); err != ErrTruncatedFrame {
		t.Fatalf("expected ErrTruncatedFrame, got %v", err)
	}
}

func TestReader_PayloadAliasesBuffer(t *testing.T) {
	buf := frame('T', be32(42))
	r := NewReader(buf)
	_, payload, _ := r.Next()
	// Mutating the underlying buffer should be visible through payload -
	// Next does not copy (hot-path no-allocation contract).
	buf[3] = 0xFF
	if payload[0] != 0xFF {
		t.Fatalf("expected payload to alias the source buffer")
	}
}
