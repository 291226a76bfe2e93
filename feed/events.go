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

// Package feed decodes the SIX IMI binary market-data dialect: a forward
// cursor over framed records (Reader) and a pure big-endian field extractor
// per message type (Decode). Neither holds state; BookManager is the state.
package feed

import "github.com/sixmd/imibook/constants"

// Event is the tagged-variant decoded events are returned as. BookManager
// type-switches on the concrete type; there is no virtual dispatch in the
// decode path itself.
type Event interface {
	Kind() byte
}

type TimestampSeconds struct {
	Seconds uint32
}

func (TimestampSeconds) Kind() byte { return constants.MsgTimestampSeconds }

type Directory struct {
	Ms            uint32
	Book          uint32
	PriceType     byte
	ISIN          [12]byte
	Currency      [3]byte
	Group         [8]byte
	MinQty        uint32
	QtyTickID     uint32
	PriceTickID   uint32
	PriceDecimals uint32
	DelistDate    uint32
	DelistTime    uint32
}

func (Directory) Kind() byte { return constants.MsgOrderbookDirectory }

type AddOrder struct {
	Ms      uint32
	OrderID uint64
	Side    byte
	Qty     uint32
	Book    uint32
	Price   int32
}

func (AddOrder) Kind() byte { return constants.MsgAddOrder }

type DeleteOrder struct {
	Ms      uint32
	OrderID uint64
}

func (DeleteOrder) Kind() byte { return constants.MsgDeleteOrder }

type ReplaceOrder struct {
	Ms    uint32
	OldID uint64
	NewID uint64
	Qty   uint32
	Price int32
}

func (ReplaceOrder) Kind() byte { return constants.MsgReplaceOrder }

type Executed struct {
	Ms      uint32
	OrderID uint64
	Qty     uint32
	MatchNo uint64
}

func (Executed) Kind() byte { return constants.MsgOrderExecuted }

type ExecutedWithPrice struct {
	Ms        uint32
	OrderID   uint64
	Qty       uint32
	MatchNo   uint64
	Printable byte
	ExecPrice int32
}

func (ExecutedWithPrice) Kind() byte { return constants.MsgOrderExecutedWithPrice }

type PriceTickSize struct {
	Ms          uint32
	TickTableID uint32
	TickSize    uint32
	PriceStart  uint32
}

func (PriceTickSize) Kind() byte { return constants.MsgPriceTickSize }

type QuantityTickSize struct {
	Ms             uint32
	QtyTickTableID uint32
	QtyTickSize    uint32
	QtyStart       uint32
}

func (QuantityTickSize) Kind() byte { return constants.MsgQuantityTickSize }

type TradingAction struct {
	Ms            uint32
	Book          uint32
	TradingState  byte
	BookCondition byte
}

func (TradingAction) Kind() byte { return constants.MsgTradingAction }

type SystemEvent struct {
	Ms        uint32
	Group     [8]byte
	EventCode byte
	Book      uint32
}

func (SystemEvent) Kind() byte { return constants.MsgSystemEvent }
