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
	"github.com/onflow/fastbin"
)

// StreamOrderbookLayout follows the public order book stream of a crypto exchange.
var StreamOrderbookLayout = fastbin.MustLayout("StreamOrderbook",
	field("server_time", int64Type),
	field("recv_time", int64Type),
	field("cts", int64Type),
	field("type", orderbookTypeType),
	field("depth", uint16Type),
	field("symbol", stringType),
	field("update_id", uint64Type),
	field("seq_num", uint64Type),
	field("bid_prices", fastbin.VectorType(fastbin.KindFloat64)),
	field("bid_quantities", fastbin.VectorType(fastbin.KindFloat64)),
	field("ask_prices", fastbin.VectorType(fastbin.KindFloat64)),
	field("ask_quantities", fastbin.VectorType(fastbin.KindFloat64)),
)

const (
	orderbookServerTime = iota
	orderbookRecvTime
	orderbookCts
	orderbookType
	orderbookDepth
	orderbookSymbol
	orderbookUpdateID
	orderbookSeqNum
	orderbookBidPrices
	orderbookBidQuantities
	orderbookAskPrices
	orderbookAskQuantities
)

// StreamOrderbook is an order book snapshot or delta.
// Fields from Symbol onward must be set in declaration order.
type StreamOrderbook struct {
	model
}

func NewStreamOrderbook(capacity int) StreamOrderbook {
	return StreamOrderbook{model{fastbin.NewRecord(StreamOrderbookLayout, capacity)}}
}

func CreateStreamOrderbook(buf fastbin.Buffer) StreamOrderbook {
	return StreamOrderbook{model{fastbin.CreateRecord(StreamOrderbookLayout, buf)}}
}

func OpenStreamOrderbook(buf fastbin.Buffer) StreamOrderbook {
	return StreamOrderbook{model{fastbin.OpenRecord(StreamOrderbookLayout, buf)}}
}

func (o StreamOrderbook) ServerTime() int64 {
	return fastbin.Field[int64](o.rec, orderbookServerTime)
}

func (o StreamOrderbook) SetServerTime(v int64) {
	fastbin.SetField(o.rec, orderbookServerTime, v)
}

func (o StreamOrderbook) RecvTime() int64 {
	return fastbin.Field[int64](o.rec, orderbookRecvTime)
}

func (o StreamOrderbook) SetRecvTime(v int64) {
	fastbin.SetField(o.rec, orderbookRecvTime, v)
}

func (o StreamOrderbook) Cts() int64 {
	return fastbin.Field[int64](o.rec, orderbookCts)
}

func (o StreamOrderbook) SetCts(v int64) {
	fastbin.SetField(o.rec, orderbookCts, v)
}

func (o StreamOrderbook) Type() OrderbookType {
	return fastbin.Field[OrderbookType](o.rec, orderbookType)
}

func (o StreamOrderbook) SetType(v OrderbookType) {
	fastbin.SetField(o.rec, orderbookType, v)
}

func (o StreamOrderbook) Depth() uint16 {
	return fastbin.Field[uint16](o.rec, orderbookDepth)
}

func (o StreamOrderbook) SetDepth(v uint16) {
	fastbin.SetField(o.rec, orderbookDepth, v)
}

func (o StreamOrderbook) Symbol() string {
	return o.rec.GetString(orderbookSymbol)
}

func (o StreamOrderbook) SetSymbol(v string) {
	o.rec.SetString(orderbookSymbol, v)
}

func (o StreamOrderbook) UpdateID() uint64 {
	return fastbin.Field[uint64](o.rec, orderbookUpdateID)
}

func (o StreamOrderbook) SetUpdateID(v uint64) {
	fastbin.SetField(o.rec, orderbookUpdateID, v)
}

func (o StreamOrderbook) SeqNum() uint64 {
	return fastbin.Field[uint64](o.rec, orderbookSeqNum)
}

func (o StreamOrderbook) SetSeqNum(v uint64) {
	fastbin.SetField(o.rec, orderbookSeqNum, v)
}

// BidPrices returns the bid prices without copying.
func (o StreamOrderbook) BidPrices() []float64 {
	return fastbin.Vector[float64](o.rec, orderbookBidPrices)
}

func (o StreamOrderbook) SetBidPrices(v []float64) {
	fastbin.SetVector(o.rec, orderbookBidPrices, v)
}

// BidQuantities returns the bid quantities without copying.
func (o StreamOrderbook) BidQuantities() []float64 {
	return fastbin.Vector[float64](o.rec, orderbookBidQuantities)
}

func (o StreamOrderbook) SetBidQuantities(v []float64) {
	fastbin.SetVector(o.rec, orderbookBidQuantities, v)
}

// AskPrices returns the ask prices without copying.
func (o StreamOrderbook) AskPrices() []float64 {
	return fastbin.Vector[float64](o.rec, orderbookAskPrices)
}

func (o StreamOrderbook) SetAskPrices(v []float64) {
	fastbin.SetVector(o.rec, orderbookAskPrices, v)
}

// AskQuantities returns the ask quantities without copying.
func (o StreamOrderbook) AskQuantities() []float64 {
	return fastbin.Vector[float64](o.rec, orderbookAskQuantities)
}

func (o StreamOrderbook) SetAskQuantities(v []float64) {
	fastbin.SetVector(o.rec, orderbookAskQuantities, v)
}
