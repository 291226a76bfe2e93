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

// Package display formats book state for the REPL and CLI summaries.
// The core keeps Price/Quantity as integer exchange units - this
// package is the only place an exchange-unit price is converted to a
// human price using a book's price_decimals metadata, via
// shopspring/decimal so repeated scaling never drifts through float
// rounding.
package display

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sixmd/imibook/book"
	"github.com/sixmd/imibook/static"
)

// FormatPrice renders an exchange-unit price as a decimal string scaled
// by the book's price_decimals, or "-" for a null best.
func FormatPrice(meta static.BookMeta, price int32, ok bool) string {
	if !ok {
		return "-"
	}
	scale := int32(meta.PriceDecimals)
	return decimal.NewFromInt(int64(price)).Shift(-scale).String()
}

// BookSummary renders a fixed-width snapshot of a book's current best
// bid/ask as a box-drawn table, followed by the poison reason if any.
func BookSummary(meta static.BookMeta, bs *book.BookState) string {
	var b strings.Builder
	bidPrice, bidQty, bidOK := bs.Bid.Peek()
	askPrice, askQty, askOK := bs.Ask.Peek()

	fmt.Fprintf(&b, "┌──────────────────────────────────────────────┐\n")
	fmt.Fprintf(&b, "│ book %-8d %-8s                         │\n", meta.Book, meta.ISIN)
	fmt.Fprintf(&b, "├──────────────────────────────────────────────┤\n")
	fmt.Fprintf(&b, "│ bid  %10s  x %-10d                  │\n", FormatPrice(meta, bidPrice, bidOK), bidQty)
	fmt.Fprintf(&b, "│ ask  %10s  x %-10d                  │\n", FormatPrice(meta, askPrice, askOK), askQty)
	fmt.Fprintf(&b, "└──────────────────────────────────────────────┘\n")
	if bs.Poisoned {
		fmt.Fprintf(&b, "  ! poisoned: %s\n", bs.PoisonedWhy)
	}
	return b.String()
}
