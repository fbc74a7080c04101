/*
 * Fastbin - Zero-copy Binary Records
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package models

import (
	"fmt"

	"github.com/onflow/fastbin"
)

// TradeSide is the taker side of a trade.
type TradeSide uint8

const (
	Sell TradeSide = 0
	Buy  TradeSide = 1
)

var tradeSideType = fastbin.EnumType("TradeSide", fastbin.KindUint8)

func (s TradeSide) String() string {
	switch s {
	case Sell:
		return "Sell"
	case Buy:
		return "Buy"
	}
	return fmt.Sprintf("TradeSide(%d)", uint8(s))
}

// TickDirection is the direction of a price change.
type TickDirection uint8

const (
	Unknown TickDirection = 0
	// PlusTick is a price rise.
	PlusTick TickDirection = 1
	// ZeroPlusTick is a trade at the same price as the previous trade,
	// which occurred at a price lower than the trade preceding it.
	ZeroPlusTick TickDirection = 2
	// MinusTick is a price drop.
	MinusTick TickDirection = 3
	// ZeroMinusTick is a trade at the same price as the previous trade,
	// which occurred at a price higher than the trade preceding it.
	ZeroMinusTick TickDirection = 4
)

var tickDirectionType = fastbin.EnumType("TickDirection", fastbin.KindUint8)

func (d TickDirection) String() string {
	switch d {
	case Unknown:
		return "Unknown"
	case PlusTick:
		return "PlusTick"
	case ZeroPlusTick:
		return "ZeroPlusTick"
	case MinusTick:
		return "MinusTick"
	case ZeroMinusTick:
		return "ZeroMinusTick"
	}
	return fmt.Sprintf("TickDirection(%d)", uint8(d))
}

// OrderbookType tells a full snapshot from an incremental update.
type OrderbookType uint8

const (
	Snapshot OrderbookType = 1
	Delta    OrderbookType = 2
)

var orderbookTypeType = fastbin.EnumType("OrderbookType", fastbin.KindUint8)

func (t OrderbookType) String() string {
	switch t {
	case Snapshot:
		return "Snapshot"
	case Delta:
		return "Delta"
	}
	return fmt.Sprintf("OrderbookType(%d)", uint8(t))
}
