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

// QuotePrice is a price given either as a number or as exchange text.
var QuotePrice = fastbin.MustVariantType("QuotePrice", float64Type, stringType)

const (
	QuotePriceNumber = iota
	QuotePriceText
)

var QuoteLayout = fastbin.MustLayout("Quote",
	field("symbol", stringType),
	field("price", fastbin.VariantFieldType(QuotePrice)),
)

const (
	quoteSymbol = iota
	quotePrice
)

type Quote struct {
	model
}

func NewQuote(capacity int) Quote {
	return Quote{model{fastbin.NewRecord(QuoteLayout, capacity)}}
}

func OpenQuote(buf fastbin.Buffer) Quote {
	return Quote{model{fastbin.OpenRecord(QuoteLayout, buf)}}
}

func (q Quote) Symbol() string {
	return q.rec.GetString(quoteSymbol)
}

func (q Quote) SetSymbol(v string) {
	q.rec.SetString(quoteSymbol, v)
}

// Price returns a view of the price variant.
func (q Quote) Price() *fastbin.Variant {
	return q.rec.VariantField(quotePrice)
}

func (q Quote) SetPrice(v *fastbin.Variant) {
	q.rec.SetVariantField(quotePrice, v)
}

func (q Quote) SetPriceNumber(p float64) {
	v := fastbin.NewVariant(QuotePrice, fastbin.CalcVariantSize(8))
	defer v.Release()
	fastbin.SetAlternative(v, QuotePriceNumber, p)
	q.SetPrice(v)
}

func (q Quote) SetPriceText(s string) {
	v := fastbin.NewVariant(QuotePrice, fastbin.CalcVariantSize(len(s)))
	defer v.Release()
	v.SetString(QuotePriceText, s)
	q.SetPrice(v)
}

// PriceNumber returns the numeric price, if the price is a number.
func (q Quote) PriceNumber() (float64, bool) {
	v := q.Price()
	if !v.HoldsAlternative(QuotePriceNumber) {
		return 0, false
	}
	return fastbin.Alternative[float64](v, QuotePriceNumber), true
}

// PriceText returns the textual price, if the price is text.
func (q Quote) PriceText() (string, bool) {
	v := q.Price()
	if !v.HoldsAlternative(QuotePriceText) {
		return "", false
	}
	return v.GetString(QuotePriceText), true
}
