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

// Package static holds the per-day reference data that isn't itself part
// of the order-book state machine: the instrument directory (populated by
// R records) and the price/quantity tick tables (populated by L/M
// records). Both are worker-local for the life of one day.
package static

import (
	"strings"

	"github.com/sixmd/imibook/feed"
)

// BookMeta is one instrument's directory entry.
type BookMeta struct {
	Book          uint32
	PriceType     byte
	ISIN          string
	Currency      string
	Group         string
	MinQty        uint32
	QtyTickID     uint32
	PriceTickID   uint32
	PriceDecimals uint32
	DelistDate    uint32
	DelistTime    uint32
}

// TickEntry is one piecewise-constant step of a tick table: from
// PriceStart (inclusive) the minimum increment is TickSize.
type TickEntry struct {
	TickSize   uint32
	PriceStart uint32
}

// Tables is the per-day static reference data bundle.
type Tables struct {
	Directory  map[uint32]BookMeta
	PriceTicks map[uint32][]TickEntry
	QtyTicks   map[uint32][]TickEntry
}

// New returns an empty Tables ready to be populated as R/L/M records are
// decoded over the course of a day.
func New() *Tables {
	return &Tables{
		Directory:  make(map[uint32]BookMeta),
		PriceTicks: make(map[uint32][]TickEntry),
		QtyTicks:   make(map[uint32][]TickEntry),
	}
}

// RegisterDirectory records an R (OrderbookDirectory) record's metadata.
func (t *Tables) RegisterDirectory(d feed.Directory) {
	t.Directory[d.Book] = BookMeta{
		Book:          d.Book,
		PriceType:     d.PriceType,
		ISIN:          trimNulPad(d.ISIN[:]),
		Currency:      trimNulPad(d.Currency[:]),
		Group:         trimNulPad(d.Group[:]),
		MinQty:        d.MinQty,
		QtyTickID:     d.QtyTickID,
		PriceTickID:   d.PriceTickID,
		PriceDecimals: d.PriceDecimals,
		DelistDate:    d.DelistDate,
		DelistTime:    d.DelistTime,
	}
}

// AddPriceTick appends an L (PriceTickSize) entry to its table.
func (t *Tables) AddPriceTick(l feed.PriceTickSize) {
	t.PriceTicks[l.TickTableID] = append(t.PriceTicks[l.TickTableID], TickEntry{
		TickSize:   l.TickSize,
		PriceStart: l.PriceStart,
	})
}

// AddQuantityTick appends an M (QuantityTickSize) entry. These are
// recorded for downstream tooling that wants quantity granularity,
// without letting them influence book reconstruction.
func (t *Tables) AddQuantityTick(m feed.QuantityTickSize) {
	t.QtyTicks[m.QtyTickTableID] = append(t.QtyTicks[m.QtyTickTableID], TickEntry{
		TickSize:   m.QtyTickSize,
		PriceStart: m.QtyStart,
	})
}

// Lookup returns a book's directory entry, if registered.
func (t *Tables) Lookup(book uint32) (BookMeta, bool) {
	m, ok := t.Directory[book]
	return m, ok
}

func trimNulPad(b []byte) string {
	return strings.TrimRight(string(b), "\x00 ")
}
