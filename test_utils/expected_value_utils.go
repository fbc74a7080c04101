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

package test_utils

import (
	"bytes"
	"fmt"
	"math/rand"
	"slices"

	"github.com/onflow/fastbin"
)

// ExpectedRecord holds the values written into a record, one per field in
// layout order. Nested records are ExpectedRecord, arrays are ExpectedArray
// and variants are ExpectedVariant.
type ExpectedRecord struct {
	Layout *fastbin.Layout
	Values []any
}

// ExpectedArray holds the elements appended to an array.
type ExpectedArray struct {
	Elem     *fastbin.Layout
	Elements []ExpectedRecord
}

// ExpectedVariant holds the alternative written into a variant.
// A nil Value means the variant was never set.
type ExpectedVariant struct {
	Type  *fastbin.VariantType
	Index int
	Value any
}

// Generator produces random expected values for layouts and variant types.
type Generator struct {
	r *rand.Rand

	MaxStringLen int
	MaxVectorLen int
	MaxArrayLen  int
}

func NewGenerator(r *rand.Rand) *Generator {
	return &Generator{
		r:            r,
		MaxStringLen: 40,
		MaxVectorLen: 16,
		MaxArrayLen:  6,
	}
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

func (g *Generator) String() string {
	runes := make([]rune, g.r.Intn(g.MaxStringLen+1))
	for i := range runes {
		runes[i] = letters[g.r.Intn(len(letters))]
	}
	return string(runes)
}

func (g *Generator) Bytes() []byte {
	b := make([]byte, g.r.Intn(g.MaxStringLen+1))
	_, _ = g.r.Read(b)
	return b
}

func (g *Generator) Record(l *fastbin.Layout) ExpectedRecord {
	values := make([]any, l.NumFields())
	for i := range values {
		values[i] = g.Value(l.Field(i).Type)
	}
	return ExpectedRecord{Layout: l, Values: values}
}

func (g *Generator) Array(elem *fastbin.Layout) ExpectedArray {
	elements := make([]ExpectedRecord, g.r.Intn(g.MaxArrayLen+1))
	for i := range elements {
		elements[i] = g.Record(elem)
	}
	return ExpectedArray{Elem: elem, Elements: elements}
}

func (g *Generator) Variant(vt *fastbin.VariantType) ExpectedVariant {
	if g.r.Intn(8) == 0 {
		return ExpectedVariant{Type: vt}
	}
	ord := g.r.Intn(vt.NumAlternatives())
	return ExpectedVariant{Type: vt, Index: ord, Value: g.Value(vt.Alternative(ord))}
}

func (g *Generator) Value(t fastbin.Type) any {
	switch t.Kind() {
	case fastbin.KindEnum:
		return g.Primitive(t.Elem())
	case fastbin.KindString:
		return g.String()
	case fastbin.KindBytes:
		return g.Bytes()
	case fastbin.KindVector:
		return g.Vector(t.Elem())
	case fastbin.KindStruct:
		return g.Record(t.Layout())
	case fastbin.KindArray:
		return g.Array(t.Layout())
	case fastbin.KindVariant:
		return g.Variant(t.VariantType())
	}
	return g.Primitive(t.Kind())
}

func (g *Generator) Primitive(k fastbin.Kind) any {
	switch k {
	case fastbin.KindBool:
		return g.r.Intn(2) == 1
	case fastbin.KindInt8:
		return int8(g.r.Uint32())
	case fastbin.KindInt16:
		return int16(g.r.Uint32())
	case fastbin.KindInt32:
		return int32(g.r.Uint32())
	case fastbin.KindInt64:
		return int64(g.r.Uint64())
	case fastbin.KindUint8:
		return uint8(g.r.Uint32())
	case fastbin.KindUint16:
		return uint16(g.r.Uint32())
	case fastbin.KindUint32:
		return g.r.Uint32()
	case fastbin.KindUint64:
		return g.r.Uint64()
	case fastbin.KindFloat32:
		return float32(g.r.NormFloat64())
	case fastbin.KindFloat64:
		return g.r.NormFloat64()
	}
	panic(fmt.Sprintf("not a primitive kind: %s", k))
}

func (g *Generator) Vector(k fastbin.Kind) any {
	n := g.r.Intn(g.MaxVectorLen + 1)
	switch k {
	case fastbin.KindBool:
		return fill[bool](g, k, n)
	case fastbin.KindInt8:
		return fill[int8](g, k, n)
	case fastbin.KindInt16:
		return fill[int16](g, k, n)
	case fastbin.KindInt32:
		return fill[int32](g, k, n)
	case fastbin.KindInt64:
		return fill[int64](g, k, n)
	case fastbin.KindUint8:
		return fill[uint8](g, k, n)
	case fastbin.KindUint16:
		return fill[uint16](g, k, n)
	case fastbin.KindUint32:
		return fill[uint32](g, k, n)
	case fastbin.KindUint64:
		return fill[uint64](g, k, n)
	case fastbin.KindFloat32:
		return fill[float32](g, k, n)
	case fastbin.KindFloat64:
		return fill[float64](g, k, n)
	}
	panic(fmt.Sprintf("not a vector element kind: %s", k))
}

func fill[T any](g *Generator, k fastbin.Kind, n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = g.Primitive(k).(T)
	}
	return out
}

// payloadLen returns the unpadded byte length of an expected value.
func payloadLen(v any) int {
	switch v := v.(type) {
	case bool, int8, uint8:
		return 1
	case int16, uint16:
		return 2
	case int32, uint32, float32:
		return 4
	case int64, uint64, float64:
		return 8
	case string:
		return len(v)
	case []byte:
		return len(v)
	case []bool:
		return len(v)
	case []int8:
		return len(v)
	case []int16:
		return 2 * len(v)
	case []uint16:
		return 2 * len(v)
	case []int32:
		return 4 * len(v)
	case []uint32:
		return 4 * len(v)
	case []float32:
		return 4 * len(v)
	case []int64:
		return 8 * len(v)
	case []uint64:
		return 8 * len(v)
	case []float64:
		return 8 * len(v)
	case ExpectedRecord:
		return v.Size()
	case ExpectedArray:
		return v.Size()
	case ExpectedVariant:
		return v.Size()
	case nil:
		return 0
	}
	panic(fmt.Sprintf("unsupported expected value %T", v))
}

// Size returns the binary size the record must have once written.
func (e ExpectedRecord) Size() int {
	if !e.Layout.IsVariable() {
		return e.Layout.FixedSize()
	}
	size := e.Layout.HeaderSize()
	for i, v := range e.Values {
		switch e.Layout.Field(i).Type.Kind() {
		case fastbin.KindString, fastbin.KindBytes, fastbin.KindVector, fastbin.KindVariant:
			size += fastbin.AlignUp(fastbin.WordSize + payloadLen(v))
		case fastbin.KindStruct, fastbin.KindArray:
			size += payloadLen(v)
		default:
			size += fastbin.WordSize
		}
	}
	return size
}

// Size returns the binary size of the array.
func (e ExpectedArray) Size() int {
	size := fastbin.ArrayHeaderSize
	for _, el := range e.Elements {
		size += el.Size()
	}
	return size
}

// Size returns the binary size of the variant.
func (e ExpectedVariant) Size() int {
	return fastbin.CalcVariantSize(payloadLen(e.Value))
}

// Empty returns true if the written variant has no payload.
func (e ExpectedVariant) Empty() bool {
	return payloadLen(e.Value) == 0
}

// Write sets every field of rec in layout order, building nested records
// and arrays in place, and finalizes rec.
func (e ExpectedRecord) Write(rec *fastbin.Record) {
	for i, v := range e.Values {
		switch e.Layout.Field(i).Type.Kind() {
		case fastbin.KindString:
			rec.SetString(i, v.(string))
		case fastbin.KindBytes:
			rec.SetBytes(i, v.([]byte))
		case fastbin.KindVector:
			setVector(rec, i, v)
		case fastbin.KindStruct:
			v.(ExpectedRecord).Write(rec.Child(i))
		case fastbin.KindArray:
			v.(ExpectedArray).Write(rec.CreateArrayField(i))
		case fastbin.KindVariant:
			variant := v.(ExpectedVariant).Build()
			rec.SetVariantField(i, variant)
			variant.Release()
		default:
			setField(rec, i, v)
		}
	}
	rec.Finalize()
}

// Build allocates an exactly sized record and writes e into it.
func (e ExpectedRecord) Build() *fastbin.Record {
	rec := fastbin.NewRecord(e.Layout, e.Size())
	e.Write(rec)
	return rec
}

// Write appends every element to a.
func (e ExpectedArray) Write(a *fastbin.Array) {
	for _, el := range e.Elements {
		rec := el.Build()
		a.Append(rec)
		rec.Release()
	}
}

// Build allocates an exactly sized array and appends every element.
func (e ExpectedArray) Build() *fastbin.Array {
	a := fastbin.NewArray(e.Elem, e.Size())
	e.Write(a)
	return a
}

// Write sets the expected alternative on v.
func (e ExpectedVariant) Write(v *fastbin.Variant) {
	if e.Value == nil {
		return
	}
	switch e.Type.Alternative(e.Index).Kind() {
	case fastbin.KindString:
		v.SetString(e.Index, e.Value.(string))
	case fastbin.KindBytes:
		v.SetBytes(e.Index, e.Value.([]byte))
	case fastbin.KindVector:
		setVectorAlternative(v, e.Index, e.Value)
	case fastbin.KindStruct:
		rec := e.Value.(ExpectedRecord).Build()
		v.SetRecord(e.Index, rec)
		rec.Release()
	case fastbin.KindArray:
		a := e.Value.(ExpectedArray).Build()
		v.SetArray(e.Index, a)
		a.Release()
	default:
		setAlternative(v, e.Index, e.Value)
	}
}

// Build allocates an exactly sized variant and sets the expected alternative.
func (e ExpectedVariant) Build() *fastbin.Variant {
	v := fastbin.NewVariant(e.Type, e.Size())
	e.Write(v)
	return v
}

// Check returns an error describing the first difference between e and rec.
func (e ExpectedRecord) Check(rec *fastbin.Record) error {
	if rec.Layout() != e.Layout {
		return fmt.Errorf("layout %s, want %s", rec.Layout().Name(), e.Layout.Name())
	}
	if got, want := rec.BinarySize(), e.Size(); got != want {
		return fmt.Errorf("%s binary size %d, want %d", e.Layout.Name(), got, want)
	}
	for i, v := range e.Values {
		if err := checkField(rec, i, e.Layout.Field(i).Type, v); err != nil {
			return fmt.Errorf("%s.%s: %w", e.Layout.Name(), e.Layout.Field(i).Name, err)
		}
	}
	return nil
}

func checkField(rec *fastbin.Record, i int, t fastbin.Type, v any) error {
	switch t.Kind() {
	case fastbin.KindString:
		if got := rec.GetString(i); got != v.(string) {
			return fmt.Errorf("got %q, want %q", got, v)
		}
	case fastbin.KindBytes:
		if got := rec.GetBytes(i); !bytes.Equal(got, v.([]byte)) {
			return fmt.Errorf("got %x, want %x", got, v)
		}
	case fastbin.KindVector:
		return checkVector(rec, i, v)
	case fastbin.KindStruct:
		return v.(ExpectedRecord).Check(rec.Child(i))
	case fastbin.KindArray:
		return v.(ExpectedArray).Check(rec.ArrayField(i))
	case fastbin.KindVariant:
		return v.(ExpectedVariant).Check(rec.VariantField(i))
	default:
		if got := getField(rec, i, v); got != v {
			return fmt.Errorf("got %v, want %v", got, v)
		}
	}
	return nil
}

// Check returns an error describing the first difference between e and a.
func (e ExpectedArray) Check(a *fastbin.Array) error {
	if got, want := a.Count(), uint64(len(e.Elements)); got != want {
		return fmt.Errorf("array<%s> count %d, want %d", e.Elem.Name(), got, want)
	}
	if got, want := a.BinarySize(), e.Size(); got != want {
		return fmt.Errorf("array<%s> binary size %d, want %d", e.Elem.Name(), got, want)
	}
	for i, el := range e.Elements {
		rec, err := a.Get(uint64(i))
		if err != nil {
			return err
		}
		if err := el.Check(rec); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// Check returns an error describing the first difference between e and v.
func (e ExpectedVariant) Check(v *fastbin.Variant) error {
	if got, want := v.BinarySize(), e.Size(); got != want {
		return fmt.Errorf("variant %s binary size %d, want %d", e.Type.Name(), got, want)
	}
	if e.Empty() {
		if !v.Empty() {
			return fmt.Errorf("variant %s holds alternative %d, want empty", e.Type.Name(), v.Index())
		}
		return nil
	}
	if !v.HoldsAlternative(e.Index) {
		return fmt.Errorf("variant %s holds alternative %d, want %d", e.Type.Name(), v.Index(), e.Index)
	}
	switch e.Type.Alternative(e.Index).Kind() {
	case fastbin.KindString:
		if got := v.GetString(e.Index); got != e.Value.(string) {
			return fmt.Errorf("got %q, want %q", got, e.Value)
		}
	case fastbin.KindBytes:
		if got := v.GetBytes(e.Index); !bytes.Equal(got, e.Value.([]byte)) {
			return fmt.Errorf("got %x, want %x", got, e.Value)
		}
	case fastbin.KindVector:
		return checkVectorAlternative(v, e.Index, e.Value)
	case fastbin.KindStruct:
		return e.Value.(ExpectedRecord).Check(v.Record(e.Index))
	case fastbin.KindArray:
		return e.Value.(ExpectedArray).Check(v.Array(e.Index))
	default:
		if got := getAlternative(v, e.Index, e.Value); got != e.Value {
			return fmt.Errorf("got %v, want %v", got, e.Value)
		}
	}
	return nil
}

func compareSlices[T comparable](got, want []T) error {
	if !slices.Equal(got, want) {
		return fmt.Errorf("got %v, want %v", got, want)
	}
	return nil
}
