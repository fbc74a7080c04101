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

package models_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/onflow/fastbin"
	"github.com/onflow/fastbin/models"
	"github.com/onflow/fastbin/storage"
)

const symbol = "BTCUSDT"

var prices = []float64{
	123.45, 123.46, 123.47, 123.48, 123.49, 123.50, 123.51, 123.52, 123.53, 123.54, 123.49,
	123.50, 123.51, 123.52, 123.53, 123.54, 123.49, 123.50, 123.51, 123.52, 123.53, 123.54,
}

var qtys = []float64{
	0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0, 0.1, 0.2, 0.3, 0.4, 0.5,
	0.6, 0.7, 0.8, 0.9, 1.0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0,
}

func newOrderbook(t *testing.T) models.StreamOrderbook {
	ob := models.NewStreamOrderbook(1024)
	t.Cleanup(ob.Release)

	ob.SetType(models.Delta)
	ob.SetServerTime(748949849849)
	ob.SetRecvTime(748949849852)
	ob.SetSymbol(symbol)
	ob.SetUpdateID(335553355335)
	ob.SetSeqNum(9999999999)
	ob.SetBidPrices(prices)
	ob.SetBidQuantities(qtys)
	ob.SetAskPrices(prices)
	ob.SetAskQuantities(qtys)
	ob.Finalize()
	return ob
}

func TestStreamOrderbook(t *testing.T) {
	ob := newOrderbook(t)

	require.Equal(t, ob.Record().ComputeSize(), ob.BinarySize())
	require.Equal(t, 944, ob.BinarySize())

	require.Equal(t, models.Delta, ob.Type())
	require.Equal(t, int64(748949849849), ob.ServerTime())
	require.Equal(t, int64(748949849852), ob.RecvTime())
	require.Equal(t, int64(0), ob.Cts())
	require.Equal(t, uint16(0), ob.Depth())
	require.Equal(t, symbol, ob.Symbol())
	require.Equal(t, uint64(335553355335), ob.UpdateID())
	require.Equal(t, uint64(9999999999), ob.SeqNum())

	require.Equal(t, prices, ob.BidPrices())
	require.Equal(t, qtys, ob.BidQuantities())
	require.Equal(t, prices, ob.AskPrices())
	require.Equal(t, qtys, ob.AskQuantities())

	// Vectors are written by copy and read without one.
	require.NotSame(t, &prices[0], &ob.BidPrices()[0])
	require.Same(t, &ob.BidPrices()[0], &ob.BidPrices()[0])

	rec := ob.Record()
	last := models.StreamOrderbookLayout.NumFields() - 1
	require.Equal(t, ob.BinarySize(), rec.Offset(last)+rec.FieldSize(last))
}

func TestStreamOrderbookReopen(t *testing.T) {
	ob := newOrderbook(t)

	opened := models.OpenStreamOrderbook(fastbin.Borrow(ob.Bytes()))
	require.False(t, opened.Owned())
	require.NoError(t, fastbin.VerifyRecord(models.StreamOrderbookLayout, opened.Bytes()))
	require.Equal(t, symbol, opened.Symbol())
	require.Equal(t, qtys, opened.AskQuantities())

	opened.SetDepth(50)
	require.Equal(t, uint16(50), ob.Depth())
}

func TestParentNestedInPlace(t *testing.T) {
	p := models.NewParent(1024)
	defer p.Release()

	p.SetField1(123)
	p.Child1().SetField1(456)
	p.Child1().SetField2(789)
	c2 := p.Child2()
	c2.SetField1(789)
	c2.SetField2("test")
	c2.Finalize()
	p.SetStr("str")
	p.Finalize()

	require.Equal(t, p.Record().ComputeSize(), p.BinarySize())
	require.Equal(t, 80, p.BinarySize())
	require.Equal(t, int32(123), p.Field1())
	require.Equal(t, int32(456), p.Child1().Field1())
	require.Equal(t, int32(789), p.Child1().Field2())
	require.Equal(t, int32(789), p.Child2().Field1())
	require.Equal(t, "test", p.Child2().Field2())
	require.Equal(t, 32, p.Child2().BinarySize())
	require.Equal(t, "str", p.Str())
}

func TestParentCopiedChildren(t *testing.T) {
	c1 := models.NewChildFixed()
	defer c1.Release()
	c1.SetField1(1)
	c1.SetField2(2)
	c1.Finalize()

	c2 := models.NewChildVar(64)
	defer c2.Release()
	c2.SetField1(3)
	c2.SetField2("four")
	c2.Finalize()

	p := models.NewParent(256)
	defer p.Release()
	p.SetField1(0)
	p.SetChild1(c1)
	p.SetChild2(c2)
	p.SetStr("five")
	p.Finalize()

	require.Equal(t, 80, p.BinarySize())
	require.Equal(t, int32(1), p.Child1().Field1())
	require.Equal(t, int32(2), p.Child1().Field2())
	require.Equal(t, int32(3), p.Child2().Field1())
	require.Equal(t, "four", p.Child2().Field2())
	require.Equal(t, "five", p.Str())
	require.NoError(t, fastbin.VerifyRecord(models.ParentLayout, p.Bytes()))
}

func TestVectorOfUInt32(t *testing.T) {
	v := models.NewVectorOfUInt32(1024)
	defer v.Release()

	values := make([]uint32, 23)
	for i := range values {
		values[i] = uint32(i)
	}
	v.SetValues(values)
	v.SetStr("test")
	v.Finalize()

	require.Equal(t, "test", v.Str())
	require.Equal(t, v.Record().ComputeSize(), v.BinarySize())
	require.Equal(t, 128, v.BinarySize())

	rec := v.Record()
	require.Equal(t, v.BinarySize(), rec.Offset(1)+rec.FieldSize(1))

	got := v.Values()
	require.NotSame(t, &values[0], &got[0])
	require.Equal(t, values, got)

	n := 0
	for i, item := range v.Values() {
		require.Equal(t, values[i], item)
		n++
	}
	require.Equal(t, len(values), n)
}

func newChildren(t *testing.T, n int) []models.ChildFixed {
	children := make([]models.ChildFixed, n)
	for i := range children {
		c := models.NewChildFixed()
		t.Cleanup(c.Release)
		c.SetField1(int32(i))
		c.SetField2(int32(i * 10))
		c.Finalize()
		children[i] = c
	}
	return children
}

func checkVectorOfFixedSizedStructs(t *testing.T, v models.VectorOfFixedSizedStructs, children []models.ChildFixed) {
	arraySize := fastbin.ArrayHeaderSize + len(children)*models.ChildFixedLayout.FixedSize()

	rec := v.Record()
	require.Equal(t, 8, rec.Offset(0))
	require.Equal(t, arraySize, rec.FieldSize(0))
	require.Equal(t, 8+arraySize, rec.Offset(1))
	require.Equal(t, "test", v.Str())
	require.Equal(t, rec.ComputeSize(), v.BinarySize())
	require.Equal(t, v.BinarySize(), rec.Offset(1)+rec.FieldSize(1))

	values := v.Values()
	require.Equal(t, uint64(len(children)), values.Count())
	for i := range children {
		c, err := v.Value(uint64(i))
		require.NoError(t, err)
		require.Equal(t, int32(i), c.Field1())
		require.Equal(t, int32(i*10), c.Field2())
	}

	n := 0
	for i, elem := range values.All() {
		c, err := values.Get(i)
		require.NoError(t, err)
		require.Equal(t, c.Bytes(), elem.Bytes())
		n++
	}
	require.Equal(t, len(children), n)

	_, err := v.Value(uint64(len(children)))
	var oob *fastbin.IndexOutOfBoundsError
	require.ErrorAs(t, err, &oob)
}

func TestVectorOfFixedSizedStructsOwnBuffer(t *testing.T) {
	children := newChildren(t, 3)

	recs := make([]*fastbin.Record, len(children))
	for i, c := range children {
		recs[i] = c.Record()
	}
	arr := fastbin.NewArray(models.ChildFixedLayout, fastbin.CalcArraySize(recs...))
	defer arr.Release()
	for _, rec := range recs {
		arr.Append(rec)
	}
	require.Equal(t, fastbin.CalcArraySize(recs...), arr.BinarySize())

	v := models.NewVectorOfFixedSizedStructs(1024)
	defer v.Release()
	v.SetValues(arr)
	v.SetStr("test")
	v.Finalize()

	checkVectorOfFixedSizedStructs(t, v, children)
	require.Equal(t, 8+arr.BinarySize()+16, v.BinarySize())
}

func TestVectorOfFixedSizedStructsInPlace(t *testing.T) {
	children := newChildren(t, 3)

	v := models.NewVectorOfFixedSizedStructs(1024)
	defer v.Release()
	v.AppendValues(children...)
	v.SetStr("test")
	v.Finalize()

	checkVectorOfFixedSizedStructs(t, v, children)
	require.Equal(t, 88, v.BinarySize())
}

func newTrade(t *testing.T, id string, side models.TradeSide, price float64) models.StreamTrade {
	tr := models.NewStreamTrade(256)
	t.Cleanup(tr.Release)

	tr.SetServerTime(1700000000000)
	tr.SetRecvTime(1700000000003)
	tr.SetSymbol(symbol)
	tr.SetFillTime(1699999999998)
	tr.SetSide(side)
	tr.SetPrice(price)
	tr.SetPriceChgDir(models.ZeroMinusTick)
	tr.SetSize(0.25)
	tr.SetTradeID(id)
	tr.SetBlockTrade(side == models.Buy)
	tr.Finalize()
	return tr
}

func TestStreamTrade(t *testing.T) {
	tr := newTrade(t, "abc-123", models.Buy, 123.45)

	require.Equal(t, 104, tr.BinarySize())
	require.Equal(t, int64(1700000000000), tr.ServerTime())
	require.Equal(t, int64(1700000000003), tr.RecvTime())
	require.Equal(t, symbol, tr.Symbol())
	require.Equal(t, int64(1699999999998), tr.FillTime())
	require.Equal(t, models.Buy, tr.Side())
	require.Equal(t, 123.45, tr.Price())
	require.Equal(t, models.ZeroMinusTick, tr.PriceChgDir())
	require.Equal(t, 0.25, tr.Size())
	require.Equal(t, "abc-123", tr.TradeID())
	require.True(t, tr.BlockTrade())

	copied := tr.Record().Copy()
	defer copied.Release()
	require.Equal(t, tr.Bytes(), copied.Bytes())
	require.Equal(t, "abc-123", models.WrapStreamTrade(copied).TradeID())
}

func TestTradeBatch(t *testing.T) {
	trades := []models.StreamTrade{
		newTrade(t, "t-1", models.Buy, 100.5),
		newTrade(t, "t-2", models.Sell, 100.25),
	}

	b := models.NewTradeBatch(512)
	defer b.Release()
	b.SetSymbol(symbol)
	b.SetTrades(trades...)
	b.Finalize()

	require.Equal(t, 8+16+fastbin.ArrayHeaderSize+2*104, b.BinarySize())
	require.Equal(t, symbol, b.Symbol())
	require.Equal(t, uint64(2), b.TradeCount())

	n := 0
	for i, tr := range b.Trades() {
		require.Equal(t, trades[i].TradeID(), tr.TradeID())
		require.Equal(t, trades[i].Side(), tr.Side())
		require.Equal(t, trades[i].Price(), tr.Price())
		n++
	}
	require.Equal(t, 2, n)

	tr, err := b.Trade(1)
	require.NoError(t, err)
	require.Equal(t, "t-2", tr.TradeID())

	_, err = b.Trade(2)
	require.Error(t, err)

	require.NoError(t, fastbin.VerifyRecord(models.TradeBatchLayout, b.Bytes()))
}

func TestQuote(t *testing.T) {
	t.Run("number", func(t *testing.T) {
		q := models.NewQuote(128)
		defer q.Release()
		q.SetSymbol(symbol)
		q.SetPriceNumber(101.75)
		q.Finalize()

		require.Equal(t, 48, q.BinarySize())
		require.Equal(t, symbol, q.Symbol())

		p, ok := q.PriceNumber()
		require.True(t, ok)
		require.Equal(t, 101.75, p)

		_, ok = q.PriceText()
		require.False(t, ok)

		require.Equal(t, models.QuotePriceNumber, q.Price().Index())
	})

	t.Run("text", func(t *testing.T) {
		q := models.NewQuote(128)
		defer q.Release()
		q.SetSymbol(symbol)
		q.SetPriceText("n/a")
		q.Finalize()

		require.Equal(t, 48, q.BinarySize())

		s, ok := q.PriceText()
		require.True(t, ok)
		require.Equal(t, "n/a", s)

		_, ok = q.PriceNumber()
		require.False(t, ok)
	})

	t.Run("copied variant", func(t *testing.T) {
		v := fastbin.NewVariant(models.QuotePrice, 64)
		defer v.Release()
		v.SetString(models.QuotePriceText, "bid")

		q := models.NewQuote(128)
		defer q.Release()
		q.SetSymbol(symbol)
		q.SetPrice(v)
		q.Finalize()

		require.Equal(t, v.Bytes(), q.Price().Bytes())
		require.NoError(t, fastbin.VerifyRecord(models.QuoteLayout, q.Bytes()))
	})
}

func TestEnumString(t *testing.T) {
	require.Equal(t, "Buy", models.Buy.String())
	require.Equal(t, "Sell", models.Sell.String())
	require.Equal(t, "TradeSide(7)", models.TradeSide(7).String())

	require.Equal(t, "Unknown", models.Unknown.String())
	require.Equal(t, "ZeroPlusTick", models.ZeroPlusTick.String())
	require.Equal(t, "MinusTick", models.MinusTick.String())
	require.Equal(t, "TickDirection(9)", models.TickDirection(9).String())

	require.Equal(t, "Snapshot", models.Snapshot.String())
	require.Equal(t, "Delta", models.Delta.String())
	require.Equal(t, "OrderbookType(0)", models.OrderbookType(0).String())
}

func TestModelsStorageRoundTrip(t *testing.T) {
	ob := newOrderbook(t)

	s := storage.NewStorage(storage.NewInMemBaseStorage(), nil)
	id, err := s.Store(ob.Record())
	require.NoError(t, err)

	entry, err := s.Entry(id)
	require.NoError(t, err)
	require.Equal(t, "StreamOrderbook", entry.TypeName)
	require.Equal(t, ob.BinarySize(), entry.Size)

	rec, err := s.RetrieveRecord(id, models.StreamOrderbookLayout)
	require.NoError(t, err)
	defer rec.Release()

	got := models.OpenStreamOrderbook(fastbin.Borrow(rec.Bytes()))
	require.Equal(t, ob.Bytes(), got.Bytes())
	require.Equal(t, prices, got.BidPrices())
	require.Equal(t, uint64(9999999999), got.SeqNum())
}
