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

// StreamTradeLayout follows the public trade stream of a crypto exchange.
var StreamTradeLayout = fastbin.MustLayout("StreamTrade",
	field("server_time", int64Type),
	field("recv_time", int64Type),
	field("symbol", stringType),
	field("fill_time", int64Type),
	field("side", tradeSideType),
	field("price", float64Type),
	field("price_chg_dir", tickDirectionType),
	field("size", float64Type),
	field("trade_id", stringType),
	field("block_trade", boolType),
)

const (
	streamTradeServerTime = iota
	streamTradeRecvTime
	streamTradeSymbol
	streamTradeFillTime
	streamTradeSide
	streamTradePrice
	streamTradePriceChgDir
	streamTradeSize
	streamTradeTradeID
	streamTradeBlockTrade
)

// StreamTrade is a single public trade.
// Fields from Symbol onward must be set in declaration order.
type StreamTrade struct {
	model
}

func NewStreamTrade(capacity int) StreamTrade {
	return StreamTrade{model{fastbin.NewRecord(StreamTradeLayout, capacity)}}
}

func CreateStreamTrade(buf fastbin.Buffer) StreamTrade {
	return StreamTrade{model{fastbin.CreateRecord(StreamTradeLayout, buf)}}
}

func OpenStreamTrade(buf fastbin.Buffer) StreamTrade {
	return StreamTrade{model{fastbin.OpenRecord(StreamTradeLayout, buf)}}
}

// WrapStreamTrade wraps an existing record, such as an array element.
func WrapStreamTrade(rec *fastbin.Record) StreamTrade {
	return StreamTrade{model{rec}}
}

func (t StreamTrade) ServerTime() int64 {
	return fastbin.Field[int64](t.rec, streamTradeServerTime)
}

func (t StreamTrade) SetServerTime(v int64) {
	fastbin.SetField(t.rec, streamTradeServerTime, v)
}

func (t StreamTrade) RecvTime() int64 {
	return fastbin.Field[int64](t.rec, streamTradeRecvTime)
}

func (t StreamTrade) SetRecvTime(v int64) {
	fastbin.SetField(t.rec, streamTradeRecvTime, v)
}

func (t StreamTrade) Symbol() string {
	return t.rec.GetString(streamTradeSymbol)
}

func (t StreamTrade) SetSymbol(v string) {
	t.rec.SetString(streamTradeSymbol, v)
}

func (t StreamTrade) FillTime() int64 {
	return fastbin.Field[int64](t.rec, streamTradeFillTime)
}

func (t StreamTrade) SetFillTime(v int64) {
	fastbin.SetField(t.rec, streamTradeFillTime, v)
}

func (t StreamTrade) Side() TradeSide {
	return fastbin.Field[TradeSide](t.rec, streamTradeSide)
}

func (t StreamTrade) SetSide(v TradeSide) {
	fastbin.SetField(t.rec, streamTradeSide, v)
}

func (t StreamTrade) Price() float64 {
	return fastbin.Field[float64](t.rec, streamTradePrice)
}

func (t StreamTrade) SetPrice(v float64) {
	fastbin.SetField(t.rec, streamTradePrice, v)
}

func (t StreamTrade) PriceChgDir() TickDirection {
	return fastbin.Field[TickDirection](t.rec, streamTradePriceChgDir)
}

func (t StreamTrade) SetPriceChgDir(v TickDirection) {
	fastbin.SetField(t.rec, streamTradePriceChgDir, v)
}

func (t StreamTrade) Size() float64 {
	return fastbin.Field[float64](t.rec, streamTradeSize)
}

func (t StreamTrade) SetSize(v float64) {
	fastbin.SetField(t.rec, streamTradeSize, v)
}

func (t StreamTrade) TradeID() string {
	return t.rec.GetString(streamTradeTradeID)
}

func (t StreamTrade) SetTradeID(v string) {
	t.rec.SetString(streamTradeTradeID, v)
}

func (t StreamTrade) BlockTrade() bool {
	return fastbin.Field[bool](t.rec, streamTradeBlockTrade)
}

func (t StreamTrade) SetBlockTrade(v bool) {
	fastbin.SetField(t.rec, streamTradeBlockTrade, v)
}
