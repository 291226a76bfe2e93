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

// Package runner drives the decoder-to-manager loop for one day file
// (DayRunner) and fans a directory of day files across worker goroutines
// (Orchestrator), one worker per day, single-threaded within a day.
package runner

import (
	"github.com/sixmd/imibook/book"
	"github.com/sixmd/imibook/static"
)

// DayResult is the output bundle for one day file: the
// calendar date, the static directory/tick tables, and every registered
// book's reconstructed state and streams. Ownership transfers whole to
// the orchestrator at end of day - no reader observes it while a worker
// still mutates it.
type DayResult struct {
	Date   string
	Tables *static.Tables
	Books  map[uint32]*book.BookState
	Errors book.ErrorCounts

	// PoisonedBooks lists the reason each fatally-invariant-violated book
	// stopped accepting events, keyed by book id.
	PoisonedBooks map[uint32]string
}

func buildResult(date string, tables *static.Tables, mgr *book.Manager) *DayResult {
	res := &DayResult{
		Date:          date,
		Tables:        tables,
		Books:         mgr.Books(),
		Errors:        mgr.Errors,
		PoisonedBooks: make(map[uint32]string),
	}
	for id, bs := range res.Books {
		if bs.Poisoned {
			res.PoisonedBooks[id] = bs.PoisonedWhy
		}
	}
	return res
}
