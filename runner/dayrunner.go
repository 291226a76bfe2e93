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

package runner

import (
	"log"
	"strings"

	"github.com/sixmd/imibook/book"
	"github.com/sixmd/imibook/feed"
	"github.com/sixmd/imibook/static"
)

// DayRunner drives the decode-to-manager loop for exactly one day file,
// synchronously, on the calling goroutine.
type DayRunner struct {
	SnapshotStart uint32
	SnapshotEnd   uint32
}

// NewDayRunner returns a DayRunner using the given snapshot window.
func NewDayRunner(snapshotStart, snapshotEnd uint32) *DayRunner {
	return &DayRunner{SnapshotStart: snapshotStart, SnapshotEnd: snapshotEnd}
}

// Run processes buf (a whole day file already resident in memory) to
// completion or until a framing error truncates it, and returns whatever
// was accumulated.
func (r *DayRunner) Run(fileName string, buf []byte) *DayResult {
	tables := static.New()
	mgr := book.NewManager(tables, r.SnapshotStart, r.SnapshotEnd)
	reader := feed.NewReader(buf)

	for !reader.Done() {
		msgType, payload, err := reader.Next()
		if err != nil {
			mgr.Errors.Framing++
			log.Printf("imibook: %s: %v, day ends with %d bytes unread", fileName, err, len(buf)-reader.Pos())
			break
		}
		ev, err := feed.Decode(msgType, payload)
		if err != nil {
			mgr.Errors.Decoding++
			log.Printf("imibook: %s: decode %q: %v", fileName, msgType, err)
			continue
		}
		if ev == nil {
			continue // unrecognized or intentionally-ignored type
		}
		if err := mgr.Apply(ev); err != nil {
			mgr.Errors.System++
			log.Printf("imibook: %s: apply %q: %v", fileName, msgType, err)
		}
	}

	return buildResult(DateFromFileName(fileName), tables, mgr)
}

// DateFromFileName derives the day's calendar date from a file name
// ending "_YYYY_MM_DD.bin": the date is bytes
// [len-14:len-4] with underscores replaced by dashes.
func DateFromFileName(name string) string {
	if len(name) < 14 {
		return name
	}
	raw := name[len(name)-14 : len(name)-4]
	return strings.ReplaceAll(raw, "_", "-")
}
