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

package book

import (
	"fmt"

	"github.com/sixmd/imibook/clock"
	"github.com/sixmd/imibook/constants"
	"github.com/sixmd/imibook/feed"
	"github.com/sixmd/imibook/ladder"
	"github.com/sixmd/imibook/orderindex"
	"github.com/sixmd/imibook/static"
)

// Manager applies decoded feed.Events to per-book state.
//
// HOT PATH: Apply is called once per decoded record, the great majority
// of a day's ~10^8 messages. Each call applies all of its ladder,
// OrderIndex and stream changes before returning, so a consumer reading
// streams between calls never observes a half-updated book. The order of
// those three steps inside one call is not fixed: an add inserts into the
// OrderIndex before touching the ladder, and a delete or fill appends its
// stream events before updating the OrderIndex.
//
// Manager is not safe for concurrent use: one Manager, one Clock, and one
// Index belong to exactly one worker processing exactly one day file, no
// shared mutable state crosses workers, which is why none of Manager,
// BookState, ladder.Ladder, or orderindex.Index take a mutex the way a
// client-facing order/trade store would.
type Manager struct {
	books  map[uint32]*BookState
	index  *orderindex.Index
	clock  *clock.Clock
	tables *static.Tables

	snapshotStart uint32
	snapshotEnd   uint32

	Errors ErrorCounts
}

// NewManager constructs a Manager over a fresh Index and Clock and the
// caller's Tables, with a configurable snapshot window.
func NewManager(tables *static.Tables, snapshotStart, snapshotEnd uint32) *Manager {
	return &Manager{
		books:         make(map[uint32]*BookState),
		index:         orderindex.New(),
		clock:         clock.New(),
		tables:        tables,
		snapshotStart: snapshotStart,
		snapshotEnd:   snapshotEnd,
	}
}

// Books returns the manager's per-book state, keyed by book id, for the
// DayRunner to fold into the result bundle at end of day.
func (m *Manager) Books() map[uint32]*BookState { return m.books }

// Apply dispatches one decoded event to the matching state transition.
//
// HOT PATH: the type switch compiles to a jump table, avoiding virtual
// dispatch at the decode-to-manager boundary.
func (m *Manager) Apply(ev feed.Event) error {
	switch e := ev.(type) {
	case feed.TimestampSeconds:
		m.applyTimestamp(e)
	case feed.Directory:
		m.applyDirectory(e)
	case feed.AddOrder:
		return m.applyAddTop(e)
	case feed.DeleteOrder:
		return m.applyDeleteTop(e)
	case feed.ReplaceOrder:
		return m.applyReplace(e)
	case feed.Executed:
		return m.applyExecuted(e)
	case feed.ExecutedWithPrice:
		return m.applyExecutedWithPrice(e)
	case feed.PriceTickSize:
		m.tables.AddPriceTick(e)
	case feed.QuantityTickSize:
		m.tables.AddQuantityTick(e)
	case feed.TradingAction:
		m.applyTradingAction(e)
	case feed.SystemEvent:
		m.applySystemEvent(e)
	default:
		// Unrecognized/ignored event kinds (P/B/I/G) never reach here -
		// Decode already returns nil for them.
	}
	return nil
}

func (m *Manager) applyTimestamp(e feed.TimestampSeconds) {
	m.clock.SetSeconds(e.Seconds)
	if !clock.InSnapshotWindow(e.Seconds, m.snapshotStart, m.snapshotEnd) {
		return
	}
	for _, bs := range m.books {
		snap := Snapshot{Book: bs.Book, Second: e.Seconds}
		if p, q, ok := bs.Bid.Peek(); ok {
			snap.BestBid, snap.BestBidQty, snap.BestBidOK = p, q, true
		}
		if p, q, ok := bs.Ask.Peek(); ok {
			snap.BestAsk, snap.BestAskQty, snap.BestAskOK = p, q, true
		}
		bs.Snapshots = append(bs.Snapshots, snap)
	}
}

func (m *Manager) applyDirectory(e feed.Directory) {
	m.tables.RegisterDirectory(e)
	m.books[e.Book] = newBookState(e.Book)
}

func (m *Manager) bookOf(id uint32) (*BookState, bool) {
	bs, ok := m.books[id]
	if !ok || bs.Poisoned {
		return nil, false
	}
	return bs, true
}

// ladderFor routes an order to the bid/ask ladder it trades on, or to the
// auction sink ladder for an auction-side order or a market-price
// sentinel order. Market-price sentinel orders contribute to the
// auction-side ladder only and never drive best-price events.
func ladderFor(bs *BookState, side byte, price int32) (lad *ladder.Ladder, tracked bool) {
	if side == constants.SideAuction || price == constants.MarketPriceSentinel {
		return bs.Auction, false
	}
	if side == constants.SideBid {
		return bs.Bid, true
	}
	return bs.Ask, true
}

func opposite(side byte) byte {
	if side == constants.SideBid {
		return constants.SideAsk
	}
	if side == constants.SideAsk {
		return constants.SideBid
	}
	return constants.SideAuction
}

func (m *Manager) applyAddTop(e feed.AddOrder) error {
	bs, ok := m.bookOf(e.Book)
	if !ok {
		return nil
	}
	ts := m.clock.Micros(e.Ms)
	m.applyAdd(bs, e.OrderID, e.Side, uint64(e.Qty), e.Price, ts)
	bs.MessageCounts["add_order"]++
	return nil
}

// applyAdd performs the common add-order ladder/index/event work, also
// reused, with side/book/price carried over from the closed order, by
// ReplaceOrder's add-half.
func (m *Manager) applyAdd(bs *BookState, orderID uint64, side byte, qty uint64, price int32, ts uint64) {
	lad, tracked := ladderFor(bs, side, price)

	rec := &OrderLifecycleRecord{
		OrderID:         orderID,
		Book:            bs.Book,
		Side:            side,
		EntryTime:       ts,
		EntryPrice:      price,
		QuantityEntered: qty,
	}
	if tracked {
		if p, _, ok := lad.Peek(); ok {
			rec.BestPriceAtEntry, rec.BestPriceAtEntryOK = p, true
		}
	}
	bs.openLifecycles[orderID] = rec

	m.index.Insert(orderID, orderindex.Order{Book: bs.Book, Side: side, Price: price, Residual: qty})

	lad.Add(price, qty)

	if !tracked {
		return
	}
	bestPrice, bestQty, ok := lad.Peek()
	if !ok || price != bestPrice {
		return
	}
	// BestPrice precedes BestDepth whenever both fire together; qty ==
	// bestQty means this order alone just created the level, i.e. the
	// price itself is new.
	if qty == bestQty {
		bs.BestBidAsk = append(bs.BestBidAsk, BestPriceEvent{
			Timestamp: ts, Book: bs.Book, Side: side, Price: price,
		})
	}
	bs.BestDepths = append(bs.BestDepths, BestDepthEvent{
		Timestamp: ts, Book: bs.Book, Side: side, Value: bestQty * uint64(priceAbs(bestPrice)),
	})
}

func (m *Manager) applyDeleteTop(e feed.DeleteOrder) error {
	bs, ord, ok := m.lookupForBook(e.OrderID)
	if !ok {
		return nil
	}
	ts := m.clock.Micros(e.Ms)
	if err := m.applyDelete(bs, e.OrderID, ord, ts); err != nil {
		return err
	}
	bs.MessageCounts["delete_order"]++
	return nil
}

// lookupForBook resolves an order id to its Order and BookState, skipping
// (with a reference-error increment) unknown orders and orders belonging
// to an already-poisoned book.
func (m *Manager) lookupForBook(orderID uint64) (*BookState, orderindex.Order, bool) {
	ord, ok := m.index.Lookup(orderID)
	if !ok {
		m.Errors.Reference++
		return nil, orderindex.Order{}, false
	}
	bs, ok := m.books[ord.Book]
	if !ok || bs.Poisoned {
		return nil, orderindex.Order{}, false
	}
	return bs, ord, true
}

// applyDelete performs the common delete-order ladder/index/event work
// (also reused by ReplaceOrder's delete-half). ord is the pre-delete
// snapshot of the order being removed.
func (m *Manager) applyDelete(bs *BookState, orderID uint64, ord orderindex.Order, ts uint64) error {
	lad, tracked := ladderFor(bs, ord.Side, ord.Price)
	wasBest := tracked && lad.ContainsBest(ord.Price)

	if !lad.Sub(ord.Price, ord.Residual) {
		m.poison(bs, fmt.Sprintf("delete: InconsistentLadder book=%d price=%d qty=%d", bs.Book, ord.Price, ord.Residual))
		return nil
	}

	if wasBest {
		_, stillThere := lad.QtyAt(ord.Price)
		newPrice, newQty, newOk := lad.Peek()
		if !stillThere {
			ev := BestPriceEvent{Timestamp: ts, Book: bs.Book, Side: ord.Side}
			if newOk {
				ev.Price = newPrice
			} else {
				ev.Null = true
			}
			bs.BestBidAsk = append(bs.BestBidAsk, ev)
		}
		depth := BestDepthEvent{Timestamp: ts, Book: bs.Book, Side: ord.Side}
		if newOk {
			depth.Value = newQty * uint64(priceAbs(newPrice))
		}
		bs.BestDepths = append(bs.BestDepths, depth)
	}

	m.closeLifecycle(bs, orderID, ts)
	_ = m.index.Remove(orderID)
	return nil
}

func (m *Manager) closeLifecycle(bs *BookState, orderID uint64, ts uint64) {
	rec, ok := bs.openLifecycles[orderID]
	if !ok {
		return
	}
	rec.RemoveTime = ts
	rec.RemoveSet = true
	bs.OrderStats = append(bs.OrderStats, *rec)
	delete(bs.openLifecycles, orderID)
}

// applyReplace replaces one order with another, carrying over side/book
// and moving price/qty. A naive sequential delete-then-add over-emits:
// deleting the sole level at a price fires BestPrice(null) even though
// the add a moment later restores the same price. BestPrice only fires
// when the price strictly changes; otherwise only BestDepth is emitted.
// When old and new both land on the same ladder, the two halves are
// collapsed into one comparison of best-before vs. best-after, so a
// same-price replace produces only a depth event.
func (m *Manager) applyReplace(e feed.ReplaceOrder) error {
	bs, ord, ok := m.lookupForBook(e.OldID)
	if !ok {
		return nil
	}
	ts := m.clock.Micros(e.Ms)

	oldLad, oldTracked := ladderFor(bs, ord.Side, ord.Price)
	newLad, newTracked := ladderFor(bs, ord.Side, e.Price)

	if oldTracked && newTracked && oldLad == newLad {
		m.applyReplaceCollapsed(bs, e, ord, oldLad, ts)
	} else {
		if err := m.applyDelete(bs, e.OldID, ord, ts); err != nil {
			return err
		}
		if bs.Poisoned {
			return nil
		}
		m.applyAdd(bs, e.NewID, ord.Side, uint64(e.Qty), e.Price, ts)
	}
	bs.MessageCounts["replace_order"]++
	return nil
}

func (m *Manager) applyReplaceCollapsed(bs *BookState, e feed.ReplaceOrder, ord orderindex.Order, lad *ladder.Ladder, ts uint64) {
	wasBest := lad.ContainsBest(ord.Price)
	oldBestPrice, _, oldBestOK := lad.Peek()

	if !lad.Sub(ord.Price, ord.Residual) {
		m.poison(bs, fmt.Sprintf("replace: InconsistentLadder book=%d price=%d qty=%d", bs.Book, ord.Price, ord.Residual))
		return
	}
	m.closeLifecycle(bs, e.OldID, ts)
	_ = m.index.Remove(e.OldID)

	lad.Add(e.Price, uint64(e.Qty))
	m.index.Insert(e.NewID, orderindex.Order{Book: bs.Book, Side: ord.Side, Price: e.Price, Residual: uint64(e.Qty)})
	rec := &OrderLifecycleRecord{
		OrderID: e.NewID, Book: bs.Book, Side: ord.Side,
		EntryTime: ts, EntryPrice: e.Price, QuantityEntered: uint64(e.Qty),
	}
	if oldBestOK {
		rec.BestPriceAtEntry, rec.BestPriceAtEntryOK = oldBestPrice, true
	}
	bs.openLifecycles[e.NewID] = rec

	finalPrice, finalQty, finalOK := lad.Peek()
	touched := wasBest || lad.ContainsBest(e.Price)
	if !touched {
		return
	}
	priceChanged := finalOK != oldBestOK || (finalOK && finalPrice != oldBestPrice)
	if priceChanged {
		ev := BestPriceEvent{Timestamp: ts, Book: bs.Book, Side: ord.Side}
		if finalOK {
			ev.Price = finalPrice
		} else {
			ev.Null = true
		}
		bs.BestBidAsk = append(bs.BestBidAsk, ev)
	}
	depth := BestDepthEvent{Timestamp: ts, Book: bs.Book, Side: ord.Side}
	if finalOK {
		depth.Value = finalQty * uint64(priceAbs(finalPrice))
	}
	bs.BestDepths = append(bs.BestDepths, depth)
}

func (m *Manager) applyExecuted(e feed.Executed) error {
	bs, ord, ok := m.lookupForBook(e.OrderID)
	if !ok {
		return nil
	}
	ts := m.clock.Micros(e.Ms)
	m.execute(bs, e.OrderID, ord, uint64(e.Qty), ts, false, 0)
	bs.MessageCounts["order_executed"]++
	return nil
}

func (m *Manager) applyExecutedWithPrice(e feed.ExecutedWithPrice) error {
	bs, ord, ok := m.lookupForBook(e.OrderID)
	if !ok {
		return nil
	}
	ts := m.clock.Micros(e.Ms)
	m.execute(bs, e.OrderID, ord, uint64(e.Qty), ts, true, e.ExecPrice)
	if e.Printable == constants.PrintableYes {
		bs.OpenClose = append(bs.OpenClose, OpenCloseRecord{Timestamp: ts, Book: bs.Book, ExecPrice: e.ExecPrice})
	}
	bs.MessageCounts["order_executed_with_price"]++
	return nil
}

// execute applies a fill shared by OrderExecuted and
// OrderExecutedWithPrice: ladder adjustment always uses the resting
// order's own posted price; exec_price, when present, only ever reaches
// the open/close stream via the caller.
func (m *Manager) execute(bs *BookState, orderID uint64, ord orderindex.Order, qty uint64, ts uint64, auction bool, execPrice int32) {
	lad, tracked := ladderFor(bs, ord.Side, ord.Price)
	wasBest := tracked && lad.ContainsBest(ord.Price)

	bidPrice, bidQty, bidOK := bs.Bid.Peek()
	askPrice, askQty, askOK := bs.Ask.Peek()

	if !lad.Sub(ord.Price, qty) {
		m.poison(bs, fmt.Sprintf("execute: InconsistentLadder book=%d price=%d qty=%d", bs.Book, ord.Price, qty))
		return
	}

	// Re-read the touched side's level post-subtraction so the
	// Execution carries pre-depletion price with post-subtraction qty.
	if tracked {
		if ord.Side == constants.SideBid {
			if q, ok := lad.QtyAt(bidPrice); ok {
				bidQty = q
			} else {
				bidQty = 0
			}
		} else {
			if q, ok := lad.QtyAt(askPrice); ok {
				askQty = q
			} else {
				askQty = 0
			}
		}
	}

	exec := Execution{
		Timestamp: ts, Book: bs.Book, Price: ord.Price, Size: qty,
		Aggressor: opposite(ord.Side),
		BestBid: bidPrice, BestBidOK: bidOK, BestBidQty: bidQty,
		BestAsk: askPrice, BestAskOK: askOK, BestAskQty: askQty,
		AuctionExec: auction,
	}
	bs.Transactions = append(bs.Transactions, exec)

	if rec, ok := bs.openLifecycles[orderID]; ok {
		rec.QuantityFilled += qty
		if !rec.FirstFillSet {
			rec.FirstFillTime = ts
			rec.FirstFillSet = true
		}
	}

	if wasBest {
		_, stillThere := lad.QtyAt(ord.Price)
		newPrice, newQty, newOk := lad.Peek()
		if !stillThere {
			ev := BestPriceEvent{Timestamp: ts, Book: bs.Book, Side: ord.Side}
			if newOk {
				ev.Price = newPrice
			} else {
				ev.Null = true
			}
			bs.BestBidAsk = append(bs.BestBidAsk, ev)
		}
		depth := BestDepthEvent{Timestamp: ts, Book: bs.Book, Side: ord.Side}
		if newOk {
			depth.Value = newQty * uint64(priceAbs(newPrice))
		}
		bs.BestDepths = append(bs.BestDepths, depth)
	}

	residual, err := m.index.UpdateResidual(orderID, qty)
	if err == orderindex.ErrNegativeResidual {
		// The ladder absorbed the subtraction (other orders at the level
		// covered it) but this order did not have the quantity: the book's
		// residual-sum invariant no longer holds.
		m.poison(bs, fmt.Sprintf("execute: NegativeResidual book=%d order=%d qty=%d", bs.Book, orderID, qty))
		return
	}
	if err != nil {
		return
	}
	if residual == 0 {
		m.closeLifecycle(bs, orderID, ts)
		_ = m.index.Remove(orderID)
	}
}

func (m *Manager) applyTradingAction(e feed.TradingAction) {
	bs, ok := m.bookOf(e.Book)
	if !ok {
		return
	}
	ts := m.clock.Micros(e.Ms)
	bs.TradingActions = append(bs.TradingActions, TradingActionRecord{
		Timestamp: ts, Book: bs.Book, TradingState: e.TradingState, BookCondition: e.BookCondition,
	})
	bs.MessageCounts["orderbook_trading_action"]++
}

func (m *Manager) applySystemEvent(e feed.SystemEvent) {
	bs, ok := m.books[e.Book]
	if !ok {
		// System events may precede a book's R record; they are advisory
		// and dropped rather than treated as a reference error.
		return
	}
	ts := m.clock.Micros(e.Ms)
	bs.SystemEvents = append(bs.SystemEvents, SystemEventRecord{
		Timestamp: ts, Group: e.Group, EventCode: e.EventCode, Book: bs.Book,
	})
	bs.MessageCounts["system_event"]++
}

// poison marks a book fatal: further events for the book are dropped,
// but other books (and the rest of the day) continue unaffected.
func (m *Manager) poison(bs *BookState, why string) {
	bs.Poisoned = true
	bs.PoisonedWhy = why
	m.Errors.Invariant++
}

func priceAbs(p int32) int32 {
	if p < 0 {
		return -p
	}
	return p
}
