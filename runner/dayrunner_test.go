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

package runner

import (
	"encoding/binary"
	"testing"

	"github.com/sixmd/imibook/constants"
)

func TestDateFromFileName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"sixmd_2024_03_15.bin", "2024-03-15"},
		{"/data/feeds/sixmd_2024_03_15.bin", "2024-03-15"},
		{"short.bin", "short.bin"},
	}
	for _, tt := range tests {
		if got := DateFromFileName(tt.name); got != tt.want {
			t.Fatalf("DateFromFileName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func be32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func be64(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func frame(msgType byte, payload []byte) []byte {
	out := []byte{0, byte(len(payload) + 1), msgType}
	return append(out, payload...)
}

// directoryPayload builds a minimal R record payload for book id.
func directoryPayload(book uint32) []byte {
	var p []byte
	p = append(p, be32(0)...)     // ms
	p = append(p, be32(book)...)  // book
	p = append(p, 0)              // price_type
	p = append(p, make([]byte, 12)...) // isin
	p = append(p, make([]byte, 3)...)  // currency
	p = append(p, make([]byte, 8)...)  // group
	p = append(p, be32(1)...)     // min_qty
	p = append(p, be32(0)...)     // qty_tick_id
	p = append(p, be32(0)...)     // price_tick_id
	p = append(p, be32(2)...)     // price_decimals
	p = append(p, be32(0)...)     // delist_date
	p = append(p, be32(0)...)     // delist_time
	return p
}

func addOrderPayload(ms uint32, orderID uint64, side byte, qty, book uint32, price int32) []byte {
	var p []byte
	p = append(p, be32(ms)...)
	p = append(p, be64(orderID)...)
	p = append(p, side)
	p = append(p, be32(qty)...)
	p = append(p, be32(book)...)
	p = append(p, be32(uint32(price))...)
	return p
}

// TestDayRunner_Run exercises the decode-to-manager loop end to end over a
// hand-built buffer replicating a single-sided add on an empty book.
func TestDayRunner_Run(t *testing.T) {
	var buf []byte
	buf = append(buf, frame(constants.MsgOrderbookDirectory, directoryPayload(42))...)
	buf = append(buf, frame(constants.MsgTimestampSeconds, be32(30000))...)
	buf = append(buf, frame(constants.MsgAddOrder, addOrderPayload(100, 1, constants.SideBid, 100, 42, 9990))...)

	r := NewDayRunner(constants.SnapshotWindowStartSeconds, constants.SnapshotWindowEndSeconds)
	res := r.Run("sixmd_2024_03_15.bin", buf)

	if res.Date != "2024-03-15" {
		t.Fatalf("unexpected date: %s", res.Date)
	}
	bs, ok := res.Books[42]
	if !ok {
		t.Fatalf("expected book 42 to be registered")
	}
	if len(bs.BestBidAsk) != 1 || bs.BestBidAsk[0].Price != 9990 {
		t.Fatalf("unexpected best-price events: %+v", bs.BestBidAsk)
	}
	if res.Errors.Framing != 0 || res.Errors.Decoding != 0 {
		t.Fatalf("unexpected errors: %+v", res.Errors)
	}
}

// TestDayRunner_Run_TruncatedFrameEndsCleanly verifies a truncated
// trailing frame ends the day with whatever was accumulated, not a panic.
func TestDayRunner_Run_TruncatedFrameEndsCleanly(t *testing.T) {
	var buf []byte
	buf = append(buf, frame(constants.MsgOrderbookDirectory, directoryPayload(42))...)
	buf = append(buf, []byte{0, 20, constants.MsgAddOrder, 1, 2, 3}...) // claims 20 payload bytes, only has 3

	r := NewDayRunner(constants.SnapshotWindowStartSeconds, constants.SnapshotWindowEndSeconds)
	res := r.Run("sixmd_2024_03_15.bin", buf)

	if res.Errors.Framing != 1 {
		t.Fatalf("expected one framing error, got %d", res.Errors.Framing)
	}
	if _, ok := res.Books[42]; !ok {
		t.Fatalf("expected the directory record processed before truncation to survive")
	}
}
