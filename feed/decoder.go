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
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/sixmd/imibook/constants"
)

// ErrShortPayload is returned when a recognized message type's payload is
// shorter than its fixed layout requires. This is a category-2 decoding
// error: the caller logs and skips the record, the day continues.
var ErrShortPayload = errors.New("feed: payload shorter than layout")

// Decode parses payload for msgType into a typed Event. It is a pure
// function: no state is read or mutated. Unrecognized types return
// (nil, nil) - the nil Event with nil error signals "silently ignored,
// not an error", the forward-compatibility policy for new message types.
//
// Decode never allocates beyond the returned Event's boxing; all field
// reads are fixed-offset big-endian extractions directly against payload.
func Decode(msgType byte, payload []byte) (Event, error) {
	switch msgType {
	case constants.MsgTimestampSeconds:
		return decodeTimestampSeconds(payload)
	case constants.MsgOrderbookDirectory:
		return decodeDirectory(payload)
	case constants.MsgAddOrder:
		return decodeAddOrder(payload)
	case constants.MsgDeleteOrder:
		return decodeDeleteOrder(payload)
	case constants.MsgReplaceOrder:
		return decodeReplaceOrder(payload)
	case constants.MsgOrderExecuted:
		return decodeExecuted(payload)
	case constants.MsgOrderExecutedWithPrice:
		return decodeExecutedWithPrice(payload)
	case constants.MsgPriceTickSize:
		return decodePriceTickSize(payload)
	case constants.MsgQuantityTickSize:
		return decodeQuantityTickSize(payload)
	case constants.MsgTradingAction:
		return decodeTradingAction(payload)
	case constants.MsgSystemEvent:
		return decodeSystemEvent(payload)
	case constants.MsgOffBookTrade, constants.MsgBrokenTrade,
		constants.MsgIndicativePrice, constants.MsgGenericEvent:
		// Not required for book reconstruction; skip parsing.
		return nil, nil
	default:
		return nil, nil
	}
}

func need(payload []byte, n int) error {
	if len(payload) < n {
		return fmt.Errorf("%w: need %d, have %d", ErrShortPayload, n, len(payload))
	}
	return nil
}

// T: seconds (i)
func decodeTimestampSeconds(p []byte) (Event, error) {
	if err := need(p, constants.PayloadLenT); err != nil {
		return nil, err
	}
	return TimestampSeconds{Seconds: binary.BigEndian.Uint32(p[0:4])}, nil
}

// R: ms, book, price_type, isin(12), currency(3), group(8), min_qty,
// qty_tick_id, price_tick_id, price_decimals, delist_date, delist_time
func decodeDirectory(p []byte) (Event, error) {
	if err := need(p, constants.PayloadLenR); err != nil {
		return nil, err
	}
	var d Directory
	d.Ms = binary.BigEndian.Uint32(p[0:4])
	d.Book = binary.BigEndian.Uint32(p[4:8])
	d.PriceType = p[8]
	copy(d.ISIN[:], p[9:21])
	copy(d.Currency[:], p[21:24])
	copy(d.Group[:], p[24:32])
	d.MinQty = binary.BigEndian.Uint32(p[32:36])
	d.QtyTickID = binary.BigEndian.Uint32(p[36:40])
	d.PriceTickID = binary.BigEndian.Uint32(p[40:44])
	d.PriceDecimals = binary.BigEndian.Uint32(p[44:48])
	d.DelistDate = binary.BigEndian.Uint32(p[48:52])
	d.DelistTime = binary.BigEndian.Uint32(p[52:56])
	return d, nil
}

// A: ms, order_id, side, qty, book, price
func decodeAddOrder(p []byte) (Event, error) {
	if err := need(p, constants.PayloadLenA); err != nil {
		return nil, err
	}
	var a AddOrder
	a.Ms = binary.BigEndian.Uint32(p[0:4])
	a.OrderID = binary.BigEndian.Uint64(p[4:12])
	a.Side = p[12]
	a.Qty = binary.BigEndian.Uint32(p[13:17])
	a.Book = binary.BigEndian.Uint32(p[17:21])
	a.Price = int32(binary.BigEndian.Uint32(p[21:25]))
	return a, nil
}

// D: ms, order_id
func decodeDeleteOrder(p []byte) (Event, error) {
	if err := need(p, constants.PayloadLenD); err != nil {
		return nil, err
	}
	var d DeleteOrder
	d.Ms = binary.BigEndian.Uint32(p[0:4])
	d.OrderID = binary.BigEndian.Uint64(p[4:12])
	return d, nil
}

// U: ms, old_id, new_id, qty, price
func decodeReplaceOrder(p []byte) (Event, error) {
	if err := need(p, constants.PayloadLenU); err != nil {
		return nil, err
	}
	var u ReplaceOrder
	u.Ms = binary.BigEndian.Uint32(p[0:4])
	u.OldID = binary.BigEndian.Uint64(p[4:12])
	u.NewID = binary.BigEndian.Uint64(p[12:20])
	u.Qty = binary.BigEndian.Uint32(p[20:24])
	u.Price = int32(binary.BigEndian.Uint32(p[24:28]))
	return u, nil
}

// E: ms, order_id, qty, match_no
func decodeExecuted(p []byte) (Event, error) {
	if err := need(p, constants.PayloadLenE); err != nil {
		return nil, err
	}
	var e Executed
	e.Ms = binary.BigEndian.Uint32(p[0:4])
	e.OrderID = binary.BigEndian.Uint64(p[4:12])
	e.Qty = binary.BigEndian.Uint32(p[12:16])
	e.MatchNo = binary.BigEndian.Uint64(p[16:24])
	return e, nil
}

// C: ms, order_id, qty, match_no, printable, exec_price
func decodeExecutedWithPrice(p []byte) (Event, error) {
	if err := need(p, constants.PayloadLenC); err != nil {
		return nil, err
	}
	var c ExecutedWithPrice
	c.Ms = binary.BigEndian.Uint32(p[0:4])
	c.OrderID = binary.BigEndian.Uint64(p[4:12])
	c.Qty = binary.BigEndian.Uint32(p[12:16])
	c.MatchNo = binary.BigEndian.Uint64(p[16:24])
	c.Printable = p[24]
	c.ExecPrice = int32(binary.BigEndian.Uint32(p[25:29]))
	return c, nil
}

// L: ms, tick_table_id, tick_size, price_start
func decodePriceTickSize(p []byte) (Event, error) {
	if err := need(p, constants.PayloadLenL); err != nil {
		return nil, err
	}
	var l PriceTickSize
	l.Ms = binary.BigEndian.Uint32(p[0:4])
	l.TickTableID = binary.BigEndian.Uint32(p[4:8])
	l.TickSize = binary.BigEndian.Uint32(p[8:12])
	l.PriceStart = binary.BigEndian.Uint32(p[12:16])
	return l, nil
}

// M: ms, qty_tick_table_id, qty_tick_size, qty_start
func decodeQuantityTickSize(p []byte) (Event, error) {
	if err := need(p, constants.PayloadLenM); err != nil {
		return nil, err
	}
	var m QuantityTickSize
	m.Ms = binary.BigEndian.Uint32(p[0:4])
	m.QtyTickTableID = binary.BigEndian.Uint32(p[4:8])
	m.QtyTickSize = binary.BigEndian.Uint32(p[8:12])
	m.QtyStart = binary.BigEndian.Uint32(p[12:16])
	return m, nil
}

// H: ms, book, trading_state, book_condition
func decodeTradingAction(p []byte) (Event, error) {
	if err := need(p, constants.PayloadLenH); err != nil {
		return nil, err
	}
	var h TradingAction
	h.Ms = binary.BigEndian.Uint32(p[0:4])
	h.Book = binary.BigEndian.Uint32(p[4:8])
	h.TradingState = p[8]
	h.BookCondition = p[9]
	return h, nil
}

// S: ms, group(8), event_code, book
func decodeSystemEvent(p []byte) (Event, error) {
	if err := need(p, constants.PayloadLenS); err != nil {
		return nil, err
	}
	var s SystemEvent
	s.Ms = binary.BigEndian.Uint32(p[0:4])
	copy(s.Group[:], p[4:12])
	s.EventCode = p[12]
	s.Book = binary.BigEndian.Uint32(p[13:17])
	return s, nil
}
