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

package fastbin

import (
	"fmt"
	"unsafe"
)

// MaxAlternatives is the largest number of alternatives a variant type may declare.
const MaxAlternatives = 255

const (
	variantIndexBits = 8
	variantIndexMask = uint64(1)<<variantIndexBits - 1
)

// VariantType is a closed, ordered set of alternative types.
// Alternatives are identified by their 0-based ordinal.
type VariantType struct {
	name string
	alts []Type
}

// NewVariantType declares a variant type.
func NewVariantType(name string, alts ...Type) (*VariantType, error) {
	if name == "" {
		return nil, NewLayoutError(name, "variant name is empty")
	}
	if len(alts) == 0 || len(alts) > MaxAlternatives {
		return nil, NewLayoutErrorf(name, "variant must declare 1 to %d alternatives, got %d", MaxAlternatives, len(alts))
	}
	for i, t := range alts {
		if t.kind == KindVariant {
			return nil, NewLayoutErrorf(name, "alternative %d: variants cannot nest", i)
		}
		if msg := t.validate(); msg != "" {
			return nil, NewLayoutErrorf(name, "alternative %d: %s", i, msg)
		}
	}
	return &VariantType{name: name, alts: append([]Type(nil), alts...)}, nil
}

// MustVariantType is like NewVariantType but panics on error.
func MustVariantType(name string, alts ...Type) *VariantType {
	vt, err := NewVariantType(name, alts...)
	if err != nil {
		panic(err)
	}
	return vt
}

func (vt *VariantType) Name() string {
	return vt.name
}

// NumAlternatives returns the number of declared alternatives.
func (vt *VariantType) NumAlternatives() int {
	return len(vt.alts)
}

// Alternative returns the type of alternative ord.
func (vt *VariantType) Alternative(ord int) Type {
	return vt.alts[ord]
}

// Variant is a view of a tagged union. The first word packs the total size,
// header included, in its high 56 bits and the active ordinal in its low byte.
// The payload follows without padding.
type Variant struct {
	view
	vtype *VariantType
}

// CreateVariant zero-fills buf and creates an empty variant in it.
func CreateVariant(vt *VariantType, buf Buffer) *Variant {
	v := &Variant{view: createView(buf, WordSize), vtype: vt}
	storeWord(v.buf.data, 0, makeVariantTag(0, WordSize))
	return v
}

// OpenVariant returns a variant over existing bytes without touching them.
func OpenVariant(vt *VariantType, buf Buffer) *Variant {
	return &Variant{view: openView(buf, WordSize), vtype: vt}
}

// NewVariant allocates an owning buffer of at least capacity bytes from the
// default allocator and creates an empty variant in it.
func NewVariant(vt *VariantType, capacity int) *Variant {
	if capacity < WordSize {
		capacity = WordSize
	}
	return CreateVariant(vt, Allocate(nil, capacity))
}

// CalcVariantSize returns the size of a variant holding payloadLen bytes.
func CalcVariantSize(payloadLen int) int {
	return WordSize + payloadLen
}

// CalcVariantRecordSize returns the size of a variant holding rec.
func CalcVariantRecordSize(rec *Record) int {
	return WordSize + rec.BinarySize()
}

func makeVariantTag(ord, total int) uint64 {
	return uint64(total)<<variantIndexBits | uint64(ord)
}

func (v *Variant) tag() uint64 {
	return loadWord(v.buf.data, 0)
}

// Type returns the variant type.
func (v *Variant) Type() *VariantType {
	return v.vtype
}

// TypesCount returns the number of declared alternatives.
func (v *Variant) TypesCount() int {
	return len(v.vtype.alts)
}

// Index returns the ordinal of the active alternative.
func (v *Variant) Index() int {
	return int(v.tag() & variantIndexMask)
}

// BinarySize returns the variant size including the header.
func (v *Variant) BinarySize() int {
	return int(v.tag() >> variantIndexBits)
}

// PayloadSize returns the size of the active alternative.
func (v *Variant) PayloadSize() int {
	return v.BinarySize() - WordSize
}

// Empty returns true if the payload is empty.
func (v *Variant) Empty() bool {
	return v.PayloadSize() == 0
}

// HoldsAlternative returns true if alternative ord is active.
func (v *Variant) HoldsAlternative(ord int) bool {
	return !v.Empty() && v.Index() == ord
}

// Finalize is a no-op: the stored size is updated by every set.
func (v *Variant) Finalize() {}

// Bytes returns the bytes of the variant.
func (v *Variant) Bytes() []byte {
	n := v.BinarySize()
	checkCapacity(n, len(v.buf.data))
	return v.buf.data[:n:n]
}

func (v *Variant) describe(ord int) string {
	if ord < 0 || ord >= len(v.vtype.alts) {
		return fmt.Sprintf("%s alternative %d", v.vtype.name, ord)
	}
	return fmt.Sprintf("%s alternative %d (%s)", v.vtype.name, ord, v.vtype.alts[ord])
}

func (v *Variant) checkAlternative(ord int, k Kind) Type {
	if ord < 0 || ord >= len(v.vtype.alts) {
		fail(NewTypeMismatchError(k.String(), v.describe(ord)))
	}
	t := v.vtype.alts[ord]
	if assertionsEnabled && t.kind != k {
		fail(NewTypeMismatchError(k.String(), v.describe(ord)))
	}
	return t
}

func (v *Variant) set(ord int, payload []byte) {
	total := WordSize + len(payload)
	checkCapacity(total, len(v.buf.data))
	copy(v.buf.data[WordSize:], payload)
	storeWord(v.buf.data, 0, makeVariantTag(ord, total))
}

func (v *Variant) payload(ord int) []byte {
	if assertionsEnabled && !v.HoldsAlternative(ord) {
		actual := "empty " + v.vtype.name
		if !v.Empty() {
			actual = v.describe(v.Index())
		}
		fail(NewTypeMismatchError(v.describe(ord), actual))
	}
	end := v.BinarySize()
	return v.buf.data[WordSize:end:end]
}

// SetAlternative activates fixed-size alternative ord holding x.
func SetAlternative[T Trivial](v *Variant, ord int, x T) {
	if ord < 0 || ord >= len(v.vtype.alts) || v.vtype.alts[ord].valueKind() != kindOf[T]() {
		fail(NewTypeMismatchError(kindOf[T]().String(), v.describe(ord)))
	}
	var raw [WordSize]byte
	Store(raw[:], 0, x)
	v.set(ord, raw[:SizeOf[T]()])
}

// Alternative returns the value of fixed-size alternative ord.
func Alternative[T Trivial](v *Variant, ord int) T {
	p := v.payload(ord)
	if assertionsEnabled && (v.vtype.alts[ord].valueKind() != kindOf[T]() || len(p) != SizeOf[T]()) {
		fail(NewTypeMismatchError(kindOf[T]().String(), v.describe(ord)))
	}
	return Load[T](p, 0)
}

// SetString activates string alternative ord.
func (v *Variant) SetString(ord int, s string) {
	v.checkAlternative(ord, KindString)
	v.set(ord, unsafe.Slice(unsafe.StringData(s), len(s)))
}

// GetString returns a copy of string alternative ord.
func (v *Variant) GetString(ord int) string {
	return string(v.payload(ord))
}

// SetBytes activates bytes alternative ord.
func (v *Variant) SetBytes(ord int, b []byte) {
	v.checkAlternative(ord, KindBytes)
	v.set(ord, b)
}

// GetBytes returns the payload of alternative ord without copying.
func (v *Variant) GetBytes(ord int) []byte {
	return v.payload(ord)
}

// SetVectorAlternative activates vector alternative ord.
func SetVectorAlternative[T Trivial](v *Variant, ord int, vs []T) {
	t := v.checkAlternative(ord, KindVector)
	if assertionsEnabled && t.elem != kindOf[T]() {
		fail(NewTypeMismatchError("vector<"+kindOf[T]().String()+">", v.describe(ord)))
	}
	v.set(ord, bytesOf(vs))
}

// VectorAlternative returns vector alternative ord as a []T aliasing the variant bytes.
func VectorAlternative[T Trivial](v *Variant, ord int) []T {
	p := v.payload(ord)
	if assertionsEnabled && v.vtype.alts[ord].elem != kindOf[T]() {
		fail(NewTypeMismatchError("vector<"+kindOf[T]().String()+">", v.describe(ord)))
	}
	return sliceOf[T](p)
}

// SetRecord activates record alternative ord holding a copy of rec's finalized bytes.
func (v *Variant) SetRecord(ord int, rec *Record) {
	t := v.checkAlternative(ord, KindStruct)
	if assertionsEnabled && t.layout != rec.layout {
		fail(NewTypeMismatchError(t.String(), "struct "+rec.layout.name))
	}
	v.set(ord, rec.Bytes())
}

// Record returns a non-owning view of record alternative ord.
func (v *Variant) Record(ord int) *Record {
	p := v.payload(ord)
	l := v.vtype.alts[ord].layout
	return &Record{view: openView(Borrow(p), l.MinSize()), layout: l}
}

// SetArray activates array alternative ord holding a copy of a.
func (v *Variant) SetArray(ord int, a *Array) {
	t := v.checkAlternative(ord, KindArray)
	if assertionsEnabled && t.layout != a.elem {
		fail(NewTypeMismatchError(t.String(), "array<"+a.elem.name+">"))
	}
	v.set(ord, a.Bytes())
}

// Array returns a non-owning view of array alternative ord.
func (v *Variant) Array(ord int) *Array {
	p := v.payload(ord)
	return &Array{view: openView(Borrow(p), ArrayHeaderSize), elem: v.vtype.alts[ord].layout}
}

// Move transfers the buffer and its ownership to a new view.
// v is left inert.
func (v *Variant) Move() *Variant {
	return &Variant{view: view{buf: v.buf.take()}, vtype: v.vtype}
}

// Copy returns an owning variant holding a copy of the variant bytes.
func (v *Variant) Copy() *Variant {
	return &Variant{view: view{buf: copyOut(v.Bytes())}, vtype: v.vtype}
}

// CopyTo copies the variant bytes to the front of dst and returns a
// non-owning variant over the copy.
func (v *Variant) CopyTo(dst []byte) *Variant {
	return &Variant{view: openView(copyInto(dst, v.Bytes()), WordSize), vtype: v.vtype}
}
