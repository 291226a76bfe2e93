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

// Benchmarks for the order index. A day peaks at ~10^6 live orders, so
// insert/lookup/update cost at that population is what matters.
// Run with: go test -bench=Index -benchmem ./orderindex/
package orderindex

import "testing"

func prefill(ix *Index, n int) {
	for i := 0; i < n; i++ {
		ix.Insert(uint64(i), Order{Book: 42, Side: 'B', Price: int32(9000 + i%1000), Residual: 100})
	}
}

// BenchmarkIndex_Insert measures adding a new order at varying populations.
func BenchmarkIndex_Insert(b *testing.B) {
	benchCases := []struct {
		name     string
		prefillN int
	}{
		{"EmptyIndex", 0},
		{"10KOrders", 10_000},
		{"1MOrders", 1_000_000},
	}

	for _, bc := range benchCases {
		b.Run(bc.name, func(b *testing.B) {
			ix := New()
			prefill(ix, bc.prefillN)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				ix.Insert(uint64(bc.prefillN+i), Order{Book: 42, Side: 'B', Price: 9990, Residual: 100})
			}
		})
	}
}

// BenchmarkIndex_Lookup measures resolving an order id, the first step of
// every D/U/E/C message.
func BenchmarkIndex_Lookup(b *testing.B) {
	benchCases := []struct {
		name     string
		prefillN int
	}{
		{"10KOrders", 10_000},
		{"1MOrders", 1_000_000},
	}

	for _, bc := range benchCases {
		b.Run(bc.name, func(b *testing.B) {
			ix := New()
			prefill(ix, bc.prefillN)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, ok := ix.Lookup(uint64(i % bc.prefillN)); !ok {
					b.Fatal("expected order to be present")
				}
			}
		})
	}
}

// BenchmarkIndex_UpdateResidual measures the partial-fill path.
func BenchmarkIndex_UpdateResidual(b *testing.B) {
	ix := New()
	prefill(ix, 100_000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Subtract zero so the residual never crosses to the underflow path
		// and the population stays constant across iterations.
		if _, err := ix.UpdateResidual(uint64(i%100_000), 0); err != nil {
			b.Fatal(err)
		}
	}
}
