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

package static

import (
	"testing"

	"github.com/sixmd/imibook/feed"
)

func TestTables_RegisterDirectoryTrimsPadding(t *testing.T) {
	tbl := New()
	var d feed.Directory
	d.Book = 42
	copy(d.ISIN[:], "CH0012345678")
	copy(d.Currency[:], "CHF")
	copy(d.Group[:], "EQ")
	d.PriceDecimals = 2
	tbl.RegisterDirectory(d)

	meta, ok := tbl.Lookup(42)
	if !ok {
		t.Fatalf("expected book 42 to be registered")
	}
	if meta.ISIN != "CH0012345678" || meta.Currency != "CHF" || meta.Group != "EQ" {
		t.Fatalf("unexpected trimmed fields: %+v", meta)
	}
	if meta.PriceDecimals != 2 {
		t.Fatalf("expected price decimals 2, got %d", meta.PriceDecimals)
	}
}

func TestTables_LookupUnknown(t *testing.T) {
	tbl := New()
	if _, ok := tbl.Lookup(999); ok {
		t.Fatalf("expected unknown book lookup to fail")
	}
}

func TestTables_PriceTicksAccumulate(t *testing.T) {
	tbl := New()
	tbl.AddPriceTick(feed.PriceTickSize{TickTableID: 1, TickSize: 5, PriceStart: 0})
	tbl.AddPriceTick(feed.PriceTickSize{TickTableID: 1, TickSize: 10, PriceStart: 100000})

	entries := tbl.PriceTicks[1]
	if len(entries) != 2 {
		t.Fatalf("expected 2 tick entries, got %d", len(entries))
	}
	if entries[0].TickSize != 5 || entries[1].PriceStart != 100000 {
		t.Fatalf("unexpected tick entries: %+v", entries)
	}
}
