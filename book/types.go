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

// Package book is the core: per-book state (two price ladders, an order
// lifecycle table, and message counters) plus the event streams that
// state transitions publish to. Manager applies decoded feed.Events in
// file order and is the only component that mutates ladders, the order
// index, or a book's streams.
package book

import "github.com/sixmd/imibook/ladder"

// BestPriceEvent is emitted only when a side's best price strictly
// changes.
type BestPriceEvent struct {
	Timestamp uint64
	Book      uint32
	Side      byte
	Price     int32
	Null      bool // true when the side became (or remained observed as) empty
}

// BestDepthEvent is emitted whenever the aggregate value at the best
// level changes, including on a price change.
type BestDepthEvent struct {
	Timestamp uint64
	Book      uint32
	Side      byte
	Value     uint64 // qty * price at the best level; 0 when the side is empty
}

// Execution is one resting-order fill. BestBid/BestAsk reflect the book
// immediately around the match: the touched side's price is captured
// before any level-emptying removal, its quantity after the subtraction.
type Execution struct {
	Timestamp   uint64
	Book        uint32
	Price       int32
	Size        uint64
	Aggressor   byte
	BestBid     int32
	BestBidOK   bool
	BestBidQty  uint64
	BestAsk     int32
	BestAskOK   bool
	BestAskQty  uint64
	AuctionExec bool // true for C prints, which carry their own exec price
}

// Snapshot is a per-second top-of-book observation.
type Snapshot struct {
	Book       uint32
	Second     uint32
	BestBid    int32
	BestBidOK  bool
	BestBidQty uint64
	BestAsk    int32
	BestAskOK  bool
	BestAskQty uint64
}

// TradingActionRecord is an H record appended verbatim to its book's
// stream.
type TradingActionRecord struct {
	Timestamp     uint64
	Book          uint32
	TradingState  byte
	BookCondition byte
}

// SystemEventRecord is an S record appended verbatim to its book's
// stream.
type SystemEventRecord struct {
	Timestamp uint64
	Group     [8]byte
	EventCode byte
	Book      uint32
}

// OpenCloseRecord is an auction print's own execution price, recorded
// separately from the resting-order ladder adjustment.
type OpenCloseRecord struct {
	Timestamp uint64
	Book      uint32
	ExecPrice int32
}

// OrderLifecycleRecord tracks one order from Add/Replace-new through its
// removal.
type OrderLifecycleRecord struct {
	OrderID            uint64
	Book               uint32
	Side               byte
	EntryTime          uint64
	EntryPrice         int32
	BestPriceAtEntry   int32
	BestPriceAtEntryOK bool
	QuantityEntered    uint64
	QuantityFilled     uint64
	FirstFillTime      uint64
	FirstFillSet       bool
	RemoveTime         uint64
	RemoveSet          bool
}

// BookState is one instrument's full reconstructed state: the two
// trading ladders, an auction/market-order sink ladder, message
// counters, and the book's slice of every event stream.
type BookState struct {
	Book    uint32
	Bid     *ladder.Ladder
	Ask     *ladder.Ladder
	Auction *ladder.Ladder

	openLifecycles map[uint64]*OrderLifecycleRecord

	BestBidAsk     []BestPriceEvent
	BestDepths     []BestDepthEvent
	Transactions   []Execution
	OrderStats     []OrderLifecycleRecord
	Snapshots      []Snapshot
	TradingActions []TradingActionRecord
	SystemEvents   []SystemEventRecord
	OpenClose      []OpenCloseRecord
	MessageCounts  map[string]int64

	Poisoned    bool
	PoisonedWhy string
}

func newBookState(bookID uint32) *BookState {
	return &BookState{
		Book:           bookID,
		Bid:            ladder.New(ladder.Bid),
		Ask:            ladder.New(ladder.Ask),
		Auction:        ladder.New(ladder.Bid), // ordering is irrelevant for the sink ladder
		openLifecycles: make(map[uint64]*OrderLifecycleRecord),
		MessageCounts:  make(map[string]int64),
	}
}

// ErrorCounts is the per-category error tally carried in the day result.
type ErrorCounts struct {
	Framing   int64
	Decoding  int64
	Reference int64
	Invariant int64
	System    int64
}
