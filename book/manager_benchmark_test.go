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

// Benchmarks for the book manager's apply loop, the dominant per-message
// cost once decoding is paid.
// Run with: go test -bench=Apply -benchmem ./book/
package book

import (
	"testing"

	"github.com/sixmd/imibook/constants"
	"github.com/sixmd/imibook/feed"
	"github.com/sixmd/imibook/static"
)

// BenchmarkApply_AddDelete measures the add-then-delete round trip that
// makes up the bulk of a day's order flow.
func BenchmarkApply_AddDelete(b *testing.B) {
	benchCases := []struct {
		name  string
		books int
	}{
		{"1Book", 1},
		{"100Books", 100},
	}

	for _, bc := range benchCases {
		b.Run(bc.name, func(b *testing.B) {
			m := NewManager(static.New(), constants.SnapshotWindowStartSeconds, constants.SnapshotWindowEndSeconds)
			for i := 0; i < bc.books; i++ {
				if err := m.Apply(feed.Directory{Book: uint32(i)}); err != nil {
					b.Fatal(err)
				}
			}
			if err := m.Apply(feed.TimestampSeconds{Seconds: 30000}); err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				id := uint64(i + 1)
				book := uint32(i % bc.books)
				price := int32(9900 + i%100)
				if err := m.Apply(feed.AddOrder{OrderID: id, Side: constants.SideBid, Qty: 100, Book: book, Price: price, Ms: uint32(i)}); err != nil {
					b.Fatal(err)
				}
				if err := m.Apply(feed.DeleteOrder{OrderID: id, Ms: uint32(i)}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkApply_PartialExecutions measures repeated partial fills against
// a deep resting level.
func BenchmarkApply_PartialExecutions(b *testing.B) {
	m := NewManager(static.New(), constants.SnapshotWindowStartSeconds, constants.SnapshotWindowEndSeconds)
	if err := m.Apply(feed.Directory{Book: 42}); err != nil {
		b.Fatal(err)
	}
	if err := m.Apply(feed.TimestampSeconds{Seconds: 30000}); err != nil {
		b.Fatal(err)
	}
	if err := m.Apply(feed.AddOrder{OrderID: 1, Side: constants.SideBid, Qty: 1 << 31, Book: 42, Price: 9990, Ms: 0}); err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Zero-quantity fills keep the resting order alive for the whole
		// run while still exercising the full execution path.
		if err := m.Apply(feed.Executed{OrderID: 1, Qty: 0, Ms: uint32(i)}); err != nil {
			b.Fatal(err)
		}
	}
}
