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

// Record is a view of one record laid out by a Layout.
//
// Fixed-size fields may be set in any order. From the first variable-size
// field onward fields must be written in layout order, since each offset is
// derived from the sizes of the fields before it. Finalize stores the total
// size into the record header; fixed layouts have no header.
type Record struct {
	view
	layout *Layout
}

// CreateRecord zero-fills buf and returns a new record over it.
func CreateRecord(l *Layout, buf Buffer) *Record {
	return &Record{view: createView(buf, l.MinSize()), layout: l}
}

// OpenRecord returns a record over existing bytes without touching them.
func OpenRecord(l *Layout, buf Buffer) *Record {
	return &Record{view: openView(buf, l.MinSize()), layout: l}
}

// NewRecord allocates an owning buffer of at least capacity bytes from the
// default allocator and creates a record in it.
func NewRecord(l *Layout, capacity int) *Record {
	if capacity < l.MinSize() {
		capacity = l.MinSize()
	}
	return CreateRecord(l, Allocate(nil, capacity))
}

func (r *Record) Layout() *Layout {
	return r.layout
}

// Offset returns the byte offset of field i. For fields after the first
// variable-size field it walks the stored sizes of the preceding fields.
func (r *Record) Offset(i int) int {
	l := r.layout
	if i <= l.firstVar {
		return l.offsets[i]
	}
	offset := l.offsets[l.firstVar]
	for j := l.firstVar; j < i; j++ {
		offset += r.sizeAt(j, offset)
	}
	return offset
}

// FieldSize returns the number of bytes field i occupies, padding included.
func (r *Record) FieldSize(i int) int {
	return r.sizeAt(i, r.Offset(i))
}

func (r *Record) sizeAt(i, offset int) int {
	t := r.layout.fields[i].Type
	if t.IsFixed() {
		return t.fixedWidth()
	}
	checkCapacity(offset+WordSize, len(r.buf.data))
	// Strings, vectors, variants, nested records and arrays all start with
	// a word whose low 56 bits hold their aligned size.
	n := LoadHeader(r.buf.data, offset).AlignedLen()
	if assertionsEnabled && n == 0 {
		fail(NewContractViolationErrorf("%s was read before it was written", r.describe(i)))
	}
	return n
}

// ComputeSize walks the fields and returns the end offset of the last one.
func (r *Record) ComputeSize() int {
	last := len(r.layout.fields) - 1
	offset := r.Offset(last)
	return offset + r.sizeAt(last, offset)
}

// Finalize stores the computed size into the record header.
// It is a no-op for fixed layouts.
func (r *Record) Finalize() {
	if r.layout.variable {
		storeWord(r.buf.data, 0, uint64(r.ComputeSize()))
	}
}

// BinarySize returns the size stored by Finalize, or the constant size of a
// fixed layout. It is zero for a variable record that was never finalized.
func (r *Record) BinarySize() int {
	if !r.layout.variable {
		return r.layout.fixedSize
	}
	return int(loadWord(r.buf.data, 0))
}

// Bytes returns the finalized bytes of the record.
func (r *Record) Bytes() []byte {
	n := r.BinarySize()
	if assertionsEnabled && n == 0 {
		fail(NewContractViolationErrorf("record %s is not finalized", r.layout.name))
	}
	checkCapacity(n, len(r.buf.data))
	return r.buf.data[:n:n]
}

// Move transfers the buffer and its ownership to a new view.
// r is left inert.
func (r *Record) Move() *Record {
	return &Record{view: view{buf: r.buf.take()}, layout: r.layout}
}

// Copy returns an owning record holding a copy of the finalized bytes.
func (r *Record) Copy() *Record {
	return &Record{view: view{buf: copyOut(r.Bytes())}, layout: r.layout}
}

// CopyTo copies the finalized bytes to the front of dst and returns a
// non-owning record over the copy.
func (r *Record) CopyTo(dst []byte) *Record {
	return &Record{view: openView(copyInto(dst, r.Bytes()), 0), layout: r.layout}
}

func (r *Record) describe(i int) string {
	f := r.layout.fields[i]
	return fmt.Sprintf("%s.%s (%s)", r.layout.name, f.Name, f.Type)
}

func (r *Record) checkKind(i int, k Kind) Type {
	t := r.layout.fields[i].Type
	if assertionsEnabled && t.kind != k {
		fail(NewTypeMismatchError(k.String(), r.describe(i)))
	}
	return t
}

func (r *Record) checkValue(i int, k Kind) {
	if r.layout.fields[i].Type.valueKind() != k {
		fail(NewTypeMismatchError(k.String(), r.describe(i)))
	}
}

func (r *Record) checkVector(i int, k Kind) {
	t := r.layout.fields[i].Type
	if t.kind != KindVector || t.elem != k {
		fail(NewTypeMismatchError("vector<"+k.String()+">", r.describe(i)))
	}
}

// Field reads fixed-size field i as T.
func Field[T Trivial](r *Record, i int) T {
	offset := r.Offset(i)
	if assertionsEnabled {
		r.checkValue(i, kindOf[T]())
		checkCapacity(offset+WordSize, len(r.buf.data))
	}
	return Load[T](r.buf.data, offset)
}

// SetField stores v into fixed-size field i.
func SetField[T Trivial](r *Record, i int, v T) {
	offset := r.Offset(i)
	if assertionsEnabled {
		r.checkValue(i, kindOf[T]())
		checkCapacity(offset+WordSize, len(r.buf.data))
	}
	Store(r.buf.data, offset, v)
}

// GetString returns a copy of string field i.
func (r *Record) GetString(i int) string {
	r.checkKind(i, KindString)
	return string(RegionContent(r.buf.data, r.Offset(i)))
}

// SetString writes string field i.
func (r *Record) SetString(i int, s string) {
	r.checkKind(i, KindString)
	r.writeRegion(i, unsafe.Slice(unsafe.StringData(s), len(s)))
}

// GetBytes returns the content of string or bytes field i without copying.
func (r *Record) GetBytes(i int) []byte {
	if assertionsEnabled {
		if k := r.layout.fields[i].Type.kind; k != KindBytes && k != KindString {
			fail(NewTypeMismatchError(KindBytes.String(), r.describe(i)))
		}
	}
	return RegionContent(r.buf.data, r.Offset(i))
}

// SetBytes writes bytes field i.
func (r *Record) SetBytes(i int, b []byte) {
	r.checkKind(i, KindBytes)
	r.writeRegion(i, b)
}

// Vector returns vector field i as a []T aliasing the record bytes.
func Vector[T Trivial](r *Record, i int) []T {
	if assertionsEnabled {
		r.checkVector(i, kindOf[T]())
	}
	return sliceOf[T](RegionContent(r.buf.data, r.Offset(i)))
}

// SetVector writes vector field i.
func SetVector[T Trivial](r *Record, i int, vs []T) {
	if assertionsEnabled {
		r.checkVector(i, kindOf[T]())
	}
	r.writeRegion(i, bytesOf(vs))
}

// Child returns a non-owning view of nested record field i. A variable child
// that has not been finalized yet spans the rest of the parent buffer so it
// can be built in place.
func (r *Record) Child(i int) *Record {
	t := r.checkKind(i, KindStruct)
	offset := r.Offset(i)
	if !t.layout.variable {
		return &Record{view: view{buf: r.buf.alias(offset, t.layout.fixedSize)}, layout: t.layout}
	}
	checkCapacity(offset+t.layout.MinSize(), len(r.buf.data))
	if n := int(loadWord(r.buf.data, offset)); n != 0 {
		return &Record{view: view{buf: r.buf.alias(offset, n)}, layout: t.layout}
	}
	return &Record{view: view{buf: r.buf.tail(offset)}, layout: t.layout}
}

// SetChild copies the finalized bytes of child into nested record field i.
func (r *Record) SetChild(i int, child *Record) {
	t := r.checkKind(i, KindStruct)
	if assertionsEnabled && child.layout != t.layout {
		fail(NewTypeMismatchError(t.String(), "struct "+child.layout.name))
	}
	r.writeCopy(i, child.Bytes())
}

// ArrayField returns a non-owning view of array field i.
func (r *Record) ArrayField(i int) *Array {
	t := r.checkKind(i, KindArray)
	offset := r.Offset(i)
	n := r.sizeAt(i, offset)
	return &Array{view: view{buf: r.buf.alias(offset, n)}, elem: t.layout}
}

// CreateArrayField starts an empty array at field i. The returned view spans
// the rest of the parent buffer so elements can be appended in place.
func (r *Record) CreateArrayField(i int) *Array {
	t := r.checkKind(i, KindArray)
	offset := r.Offset(i)
	if assertionsEnabled {
		r.checkRewrite(i, offset, ArrayHeaderSize)
	}
	a := &Array{view: openView(r.buf.tail(offset), ArrayHeaderSize), elem: t.layout}
	a.init()
	return a
}

// SetArrayField copies a into array field i.
func (r *Record) SetArrayField(i int, a *Array) {
	t := r.checkKind(i, KindArray)
	if assertionsEnabled && a.elem != t.layout {
		fail(NewTypeMismatchError(t.String(), "array<"+a.elem.name+">"))
	}
	r.writeCopy(i, a.Bytes())
}

// VariantField returns a non-owning view of variant field i.
func (r *Record) VariantField(i int) *Variant {
	t := r.checkKind(i, KindVariant)
	content := RegionContent(r.buf.data, r.Offset(i))
	return &Variant{view: openView(Borrow(content), WordSize), vtype: t.variant}
}

// SetVariantField copies v into variant field i, wrapped in a variable-length region.
func (r *Record) SetVariantField(i int, v *Variant) {
	t := r.checkKind(i, KindVariant)
	if assertionsEnabled && v.vtype != t.variant {
		fail(NewTypeMismatchError(t.String(), "variant "+v.vtype.name))
	}
	r.writeRegion(i, v.Bytes())
}

func (r *Record) writeRegion(i int, content []byte) {
	offset := r.Offset(i)
	if assertionsEnabled {
		r.checkRewrite(i, offset, MakeHeader(len(content)).AlignedLen())
	}
	WriteRegion(r.buf.data, offset, content)
}

func (r *Record) writeCopy(i int, src []byte) {
	offset := r.Offset(i)
	if assertionsEnabled {
		if !r.layout.fields[i].Type.IsFixed() {
			r.checkRewrite(i, offset, len(src))
		}
		checkCapacity(offset+len(src), len(r.buf.data))
	}
	copy(r.buf.data[offset:], src)
}

// checkRewrite asserts that giving field i a region of newLen bytes does
// not shift a later variable-size field that has already been written.
func (r *Record) checkRewrite(i, offset, newLen int) {
	data := r.buf.data
	if offset+WordSize > len(data) {
		return
	}
	oldLen := LoadHeader(data, offset).AlignedLen()
	if oldLen == 0 || oldLen == newLen {
		return
	}
	next := offset + oldLen
	fields := r.layout.fields
	for j := i + 1; j < len(fields); j++ {
		t := fields[j].Type
		if t.IsFixed() {
			next += t.fixedWidth()
			continue
		}
		if next+WordSize <= len(data) && loadWord(data, next) != 0 {
			fail(NewContractViolationErrorf("%s was resized after %s was written", r.describe(i), r.describe(j)))
		}
		return
	}
}
