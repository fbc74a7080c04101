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
	"iter"

	"github.com/onflow/fastbin"
)

var TradeBatchLayout = fastbin.MustLayout("TradeBatch",
	field("symbol", stringType),
	field("trades", fastbin.ArrayType(StreamTradeLayout)),
)

const (
	tradeBatchSymbol = iota
	tradeBatchTrades
)

// TradeBatch groups trades of one symbol.
type TradeBatch struct {
	model
}

func NewTradeBatch(capacity int) TradeBatch {
	return TradeBatch{model{fastbin.NewRecord(TradeBatchLayout, capacity)}}
}

func OpenTradeBatch(buf fastbin.Buffer) TradeBatch {
	return TradeBatch{model{fastbin.OpenRecord(TradeBatchLayout, buf)}}
}

func (b TradeBatch) Symbol() string {
	return b.rec.GetString(tradeBatchSymbol)
}

func (b TradeBatch) SetSymbol(v string) {
	b.rec.SetString(tradeBatchSymbol, v)
}

// SetTrades writes the trades into the batch in place.
func (b TradeBatch) SetTrades(trades ...StreamTrade) {
	a := b.rec.CreateArrayField(tradeBatchTrades)
	for _, t := range trades {
		a.Append(t.rec)
	}
}

func (b TradeBatch) TradeCount() uint64 {
	return b.rec.ArrayField(tradeBatchTrades).Count()
}

func (b TradeBatch) Trade(i uint64) (StreamTrade, error) {
	rec, err := b.rec.ArrayField(tradeBatchTrades).Get(i)
	if err != nil {
		return StreamTrade{}, err
	}
	return WrapStreamTrade(rec), nil
}

// Trades returns the trades in storage order.
func (b TradeBatch) Trades() iter.Seq2[uint64, StreamTrade] {
	return func(yield func(uint64, StreamTrade) bool) {
		for i, rec := range b.rec.ArrayField(tradeBatchTrades).All() {
			if !yield(i, WrapStreamTrade(rec)) {
				return
			}
		}
	}
}
