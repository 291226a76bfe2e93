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

// Package constants collects the wire-level constants for the SIX IMI
// binary market-data dialect: message type codes, side codes, and the
// sentinel values that the decoder and book manager agree on.
package constants

// Message type bytes, as they appear at offset+2 of each framed record.
const (
	MsgTimestampSeconds       byte = 'T'
	MsgOrderbookDirectory     byte = 'R'
	MsgAddOrder               byte = 'A'
	MsgDeleteOrder            byte = 'D'
	MsgReplaceOrder           byte = 'U'
	MsgOrderExecuted          byte = 'E'
	MsgOrderExecutedWithPrice byte = 'C'
	MsgPriceTickSize          byte = 'L'
	MsgQuantityTickSize       byte = 'M'
	MsgTradingAction          byte = 'H'
	MsgSystemEvent            byte = 'S'
	MsgOffBookTrade           byte = 'P'
	MsgBrokenTrade            byte = 'B'
	MsgIndicativePrice        byte = 'I'
	MsgGenericEvent           byte = 'G'
)

// Side codes used on Add-order records and carried on Order/Execution.
const (
	SideBid     byte = 'B'
	SideAsk     byte = 'S'
	SideAuction byte = ' '
)

// MarketPriceSentinel marks an order with no limit price (a market order).
// Such orders are routed to the auction sink ladder and never participate
// in best-price computation.
const MarketPriceSentinel int32 = 0x7FFFFFFF

// PrintableYes is the 'printable' flag value on a C (OrderExecutedWithPrice)
// record that marks the print as eligible for the open/close stream.
const PrintableYes byte = 'Y'

// Trading states reported on H (OrderbookTradingAction) records.
const (
	TradingStateHalted  byte = 'H'
	TradingStateQuoting byte = 'Q'
	TradingStateTrading byte = 'T'
)

// Framing bytes: every record is preceded by a pad byte and a length byte,
// then the type byte, then length-1 bytes of payload.
const (
	FrameHeaderBytes = 2 // pad + length
	FrameTypeBytes   = 1
)

// Per-message fixed payload sizes in bytes, payload meaning length-1 after
// the type byte is stripped. These mirror the byte layout table in §6.1 and
// are asserted by the decoder before any field extraction is attempted.
const (
	PayloadLenT = 4
	PayloadLenR = 4 + 4 + 1 + 12 + 3 + 8 + 4 + 4 + 4 + 4 + 4 + 4
	PayloadLenA = 4 + 8 + 1 + 4 + 4 + 4
	PayloadLenD = 4 + 8
	PayloadLenU = 4 + 8 + 8 + 4 + 4
	PayloadLenE = 4 + 8 + 4 + 8
	PayloadLenC = 4 + 8 + 4 + 8 + 1 + 4
	PayloadLenL = 4 + 4 + 4 + 4
	PayloadLenM = 4 + 4 + 4 + 4
	PayloadLenH = 4 + 4 + 1 + 1
	PayloadLenS = 4 + 8 + 1 + 4
)

// SnapshotWindowStartSeconds and SnapshotWindowEndSeconds bound the
// inclusive-exclusive second-of-day window snapshots are captured in.
// Overridable via runnercfg.Config.
const (
	SnapshotWindowStartSeconds = 8 * 3600
	SnapshotWindowEndSeconds   = 18 * 3600
)
