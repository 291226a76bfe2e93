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

// Package orderindex maps live order ids to their resting location, the
// flat hash-map counterpart to OrderStore in a FIX order-management
// client - here keyed by exchange order id rather than client order id,
// and exclusively owned by BookManager rather than shared with display
// and persistence goroutines.
package orderindex

import "errors"

// ErrUnknownOrder is returned by UpdateResidual and Remove when the id is
// not currently resting. This is a recoverable reference error: the
// caller skips the record and increments a counter.
var ErrUnknownOrder = errors.New("orderindex: unknown order")

// ErrNegativeResidual is returned by UpdateResidual when a fill subtracts
// more than the order has left. The residual is floored at zero so the
// index stays internally coherent, but the caller must treat the order's
// book as invariant-violated (poisoned).
var ErrNegativeResidual = errors.New("orderindex: negative residual")

// Order is the resting state of one live order: which book and side it
// contributes to, its posted price, and its remaining (unfilled) quantity.
type Order struct {
	Book     uint32
	Side     byte
	Price    int32
	Residual uint64
}

// Index is a flat map from order id to Order. It holds no pointers into
// ladder levels.
type Index struct {
	orders map[uint64]*Order
}

// New returns an empty Index sized for a typical day's live-order count.
func New() *Index {
	return &Index{orders: make(map[uint64]*Order, 1<<16)}
}

// Insert records a newly added order. Replaces any prior entry at id.
func (ix *Index) Insert(id uint64, o Order) {
	cp := o
	ix.orders[id] = &cp
}

// Lookup returns the order at id, or ok=false if it is not resting.
func (ix *Index) Lookup(id uint64) (Order, bool) {
	o, ok := ix.orders[id]
	if !ok {
		return Order{}, false
	}
	return *o, true
}

// UpdateResidual decrements the residual of id by qty and reports the
// order's residual after the update. Crossing to zero does not
// automatically remove the entry - BookManager removes explicitly once
// it has finished consulting the pre-removal state (lifecycle bookkeeping
// needs the just-zeroed order's Price/Side). Subtracting past zero floors
// the residual and returns ErrNegativeResidual.
func (ix *Index) UpdateResidual(id uint64, qty uint64) (residual uint64, err error) {
	o, ok := ix.orders[id]
	if !ok {
		return 0, ErrUnknownOrder
	}
	if qty > o.Residual {
		o.Residual = 0
		return 0, ErrNegativeResidual
	}
	o.Residual -= qty
	return o.Residual, nil
}

// Remove deletes id from the index.
func (ix *Index) Remove(id uint64) error {
	if _, ok := ix.orders[id]; !ok {
		return ErrUnknownOrder
	}
	delete(ix.orders, id)
	return nil
}

// Len reports the number of currently live orders.
func (ix *Index) Len() int { return len(ix.orders) }
