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

// Package clock holds the current microsecond-of-day for one DayRunner.
// It is owned by the runner and read by BookManager; there is exactly one
// Clock per worker.
package clock

// Clock tracks the current second-of-day (set by T records) combined with
// the per-message millisecond offset carried on every other record type.
type Clock struct {
	seconds uint32
	hasTime bool
}

// New returns a Clock with no seconds set yet; Seconds before the first T
// record returns (0, false), and Micros counts from second 0.
func New() *Clock {
	return &Clock{}
}

// SetSeconds updates the clock on a T (TimestampSeconds) record.
func (c *Clock) SetSeconds(seconds uint32) {
	c.seconds = seconds
	c.hasTime = true
}

// Seconds returns the current second-of-day and whether a T record has
// been seen yet.
func (c *Clock) Seconds() (uint32, bool) {
	return c.seconds, c.hasTime
}

// Micros combines the current second-of-day with a message-local
// millisecond offset into a microsecond-of-day timestamp:
// microseconds = seconds*1e6 + ms*1e3.
func (c *Clock) Micros(ms uint32) uint64 {
	return uint64(c.seconds)*1_000_000 + uint64(ms)*1_000
}

// InSnapshotWindow reports whether seconds falls in [start, end).
func InSnapshotWindow(seconds, start, end uint32) bool {
	return seconds >= start && seconds < end
}
