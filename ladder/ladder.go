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

// Package ladder implements one side of one order book: an ordered map of
// price to aggregate resting quantity, with O(log n) best-level inspection.
//
// Ordering is a binary heap of price levels plus a flat map from price to
// the same *level nodes for O(1) add/sub lookups - the aggregate-level
// generalization of the per-order bid/ask heaps in a conventional matching
// engine, where levels rather than individual orders are the heap entries.
//
// Ladder is not safe for concurrent use. Each book's ladders are owned
// exclusively by the single worker goroutine processing that day file.
package ladder

import "container/heap"

// Side fixes a ladder's ordering at construction: Bid levels sort by
// descending price (highest bid first), Ask levels by ascending price
// (lowest ask first).
type Side int

const (
	Bid Side = iota
	Ask
)

type level struct {
	price int32
	qty   uint64
	index int
}

// levelHeap implements container/heap.Interface over *level, ordered by
// the ladder's Side. It supports heap.Remove at an arbitrary index because
// Delete/Replace can touch any resting level, not only the top.
type levelHeap struct {
	levels []*level
	less   func(a, b int32) bool
}

func (h *levelHeap) Len() int { return len(h.levels) }
func (h *levelHeap) Less(i, j int) bool {
	return h.less(h.levels[i].price, h.levels[j].price)
}
func (h *levelHeap) Swap(i, j int) {
	h.levels[i], h.levels[j] = h.levels[j], h.levels[i]
	h.levels[i].index = i
	h.levels[j].index = j
}
func (h *levelHeap) Push(x any) {
	l := x.(*level)
	l.index = len(h.levels)
	h.levels = append(h.levels, l)
}
func (h *levelHeap) Pop() any {
	old := h.levels
	n := len(old)
	l := old[n-1]
	old[n-1] = nil
	h.levels = old[:n-1]
	return l
}

// Ladder is one side of one order book.
type Ladder struct {
	side    Side
	byPrice map[int32]*level
	heap    *levelHeap
}

// New constructs an empty ladder ordered for side.
func New(side Side) *Ladder {
	var less func(a, b int32) bool
	if side == Bid {
		less = func(a, b int32) bool { return a > b }
	} else {
		less = func(a, b int32) bool { return a < b }
	}
	return &Ladder{
		side:    side,
		byPrice: make(map[int32]*level),
		heap:    &levelHeap{less: less},
	}
}

// Add aggregates qty at price. O(log n).
func (l *Ladder) Add(price int32, qty uint64) {
	if lv, ok := l.byPrice[price]; ok {
		lv.qty += qty
		heap.Fix(l.heap, lv.index)
		return
	}
	lv := &level{price: price, qty: qty}
	l.byPrice[price] = lv
	heap.Push(l.heap, lv)
}

// Sub decrements the aggregate at price by qty. If the result is exactly
// zero the level is removed. If qty exceeds the level's aggregate (or the
// price is not present), Sub returns false: the caller (BookManager) must
// treat this as InconsistentLadder and poison the book.
func (l *Ladder) Sub(price int32, qty uint64) bool {
	lv, ok := l.byPrice[price]
	if !ok || qty > lv.qty {
		return false
	}
	lv.qty -= qty
	if lv.qty == 0 {
		heap.Remove(l.heap, lv.index)
		delete(l.byPrice, price)
		return true
	}
	heap.Fix(l.heap, lv.index)
	return true
}

// Peek returns the best level, or ok=false for an empty ladder. The
// empty case is represented here as a boolean flag rather than a NaN
// price since Price is an integer type.
func (l *Ladder) Peek() (price int32, qty uint64, ok bool) {
	if l.heap.Len() == 0 {
		return 0, 0, false
	}
	best := l.heap.levels[0]
	return best.price, best.qty, true
}

// ContainsBest reports whether price is the current best under this
// ladder's ordering.
func (l *Ladder) ContainsBest(price int32) bool {
	best, _, ok := l.Peek()
	return ok && best == price
}

// Depth returns the number of distinct price levels currently resting.
func (l *Ladder) Depth() int { return l.heap.Len() }

// QtyAt returns the aggregate quantity at price, and whether the level
// exists at all.
func (l *Ladder) QtyAt(price int32) (uint64, bool) {
	lv, ok := l.byPrice[price]
	if !ok {
		return 0, false
	}
	return lv.qty, true
}
