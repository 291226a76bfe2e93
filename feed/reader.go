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

package feed

import (
	"errors"

	"github.com/sixmd/imibook/constants"
)

// ErrTruncatedFrame is returned by Next when the framing length byte
// claims more payload than remains in the buffer. The caller (DayRunner)
// treats this as a category-1 framing error: the day ends with whatever
// has been accumulated so far.
var ErrTruncatedFrame = errors.New("feed: truncated frame")

// Reader is a forward cursor over an in-memory day file.
//
// HOT PATH: Next is called once per record, ~10^8 times for a full day.
// It performs no allocation and no I/O; the whole file is expected to
// already be resident in buf (slurped or mmap'd by the caller). There is
// no bufio layer here on purpose - two bounds checks and two byte reads
// per record is cheaper than a buffered reader's copy.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf, which must contain an entire day file's framed
// records back to back with no trailing partial frame (a partial trailing
// frame is itself a TruncatedFrame, surfaced on the call that reaches it).
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Done reports whether the cursor has consumed the whole buffer.
func (r *Reader) Done() bool {
	return r.pos >= len(r.buf)
}

// Pos returns the cursor's current byte offset into the buffer.
func (r *Reader) Pos() int {
	return r.pos
}

// Next returns the type byte and payload slice of the next record and
// advances the cursor past it. Framing: two header bytes
// [pad, length] precede the type byte; the payload is length-1 bytes.
//
// HOT PATH: the returned payload aliases r.buf - it is only valid until
// the next call to Next, and Decode must not retain it past that point.
func (r *Reader) Next() (msgType byte, payload []byte, err error) {
	if r.pos+constants.FrameHeaderBytes+constants.FrameTypeBytes > len(r.buf) {
		return 0, nil, ErrTruncatedFrame
	}
	length := int(r.buf[r.pos+1])
	msgType = r.buf[r.pos+2]
	payloadStart := r.pos + constants.FrameHeaderBytes + constants.FrameTypeBytes
	payloadLen := length - 1
	if payloadLen < 0 || payloadStart+payloadLen > len(r.buf) {
		return 0, nil, ErrTruncatedFrame
	}
	payload = r.buf[payloadStart : payloadStart+payloadLen]
	r.pos = payloadStart + payloadLen
	return msgType, payload, nil
}
