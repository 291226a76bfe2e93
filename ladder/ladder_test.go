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

package ladder

import "testing"

func TestLadder_EmptyPeeksNull(t *testing.T) {
	l := New(Bid)
	if _, _, ok := l.Peek(); ok {
		t.Fatalf("expected empty ladder to peek null")
	}
	if l.Depth() != 0 {
		t.Fatalf("expected depth 0, got %d", l.Depth())
	}
}

func TestLadder_BidOrdersDescending(t *testing.T) {
	l := New(Bid)
	l.Add(100, 10)
	l.Add(110, 5)
	l.Add(90, 20)

	price, qty, ok := l.Peek()
	if !ok || price != 110 || qty != 5 {
		t.Fatalf("expected best (110, 5), got (%d, %d, %v)", price, qty, ok)
	}
}

func TestLadder_AskOrdersAscending(t *testing.T) {
	l := New(Ask)
	l.Add(100, 10)
	l.Add(110, 5)
	l.Add(90, 20)

	price, qty, ok := l.Peek()
	if !ok || price != 90 || qty != 20 {
		t.Fatalf("expected best (90, 20), got (%d, %d, %v)", price, qty, ok)
	}
}

func TestLadder_AddAggregatesAtSamePrice(t *testing.T) {
	l := New(Bid)
	l.Add(100, 10)
	l.Add(100, 5)

	qty, ok := l.QtyAt(100)
	if !ok || qty != 15 {
		t.Fatalf("expected aggregate 15, got %d (ok=%v)", qty, ok)
	}
}

func TestLadder_SubRemovesZeroLevel(t *testing.T) {
	l := New(Bid)
	l.Add(100, 10)
	if !l.Sub(100, 10) {
		t.Fatalf("expected Sub to succeed")
	}
	if _, ok := l.QtyAt(100); ok {
		t.Fatalf("expected level to be removed once its aggregate hits zero")
	}
	if _, _, ok := l.Peek(); ok {
		t.Fatalf("expected ladder to peek null after its only level is removed")
	}
}

func TestLadder_SubPartialLeavesLevel(t *testing.T) {
	l := New(Bid)
	l.Add(100, 10)
	if !l.Sub(100, 4) {
		t.Fatalf("expected Sub to succeed")
	}
	qty, ok := l.QtyAt(100)
	if !ok || qty != 6 {
		t.Fatalf("expected remaining 6, got %d (ok=%v)", qty, ok)
	}
}

func TestLadder_SubBelowZeroSignalsFalse(t *testing.T) {
	l := New(Bid)
	l.Add(100, 10)
	if l.Sub(100, 11) {
		t.Fatalf("expected Sub to report failure on underflow")
	}
	// The level must be left untouched so the caller's poison path is the
	// only thing that changes state.
	qty, ok := l.QtyAt(100)
	if !ok || qty != 10 {
		t.Fatalf("expected level unchanged at 10, got %d (ok=%v)", qty, ok)
	}
}

func TestLadder_SubUnknownPriceSignalsFalse(t *testing.T) {
	l := New(Bid)
	if l.Sub(100, 1) {
		t.Fatalf("expected Sub against an absent price to report failure")
	}
}

func TestLadder_ContainsBest(t *testing.T) {
	l := New(Ask)
	l.Add(100, 10)
	l.Add(90, 5)
	if !l.ContainsBest(90) {
		t.Fatalf("expected 90 to be best")
	}
	if l.ContainsBest(100) {
		t.Fatalf("expected 100 not to be best")
	}
}

func TestLadder_DepthTracksDistinctLevels(t *testing.T) {
	l := New(Bid)
	l.Add(100, 10)
	l.Add(90, 10)
	l.Add(100, 5)
	if l.Depth() != 2 {
		t.Fatalf("expected 2 distinct levels, got %d", l.Depth())
	}
	l.Sub(90, 10)
	if l.Depth() != 1 {
		t.Fatalf("expected 1 distinct level after removal, got %d", l.Depth())
	}
}
