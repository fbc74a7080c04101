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

import "iter"

// ArrayHeaderSize is the size of the total-size and count words that start every array.
const ArrayHeaderSize = 2 * WordSize

// Array is a view of a length-prefixed sequence of records sharing one layout.
// Elements are packed back to back. Fixed-size elements are indexed in
// constant time; variable-size elements are found by walking their headers.
type Array struct {
	view
	elem *Layout
}

// CreateArray zero-fills buf and starts an empty array in it.
func CreateArray(elem *Layout, buf Buffer) *Array {
	a := &Array{view: createView(buf, ArrayHeaderSize), elem: elem}
	a.init()
	return a
}

// OpenArray returns an array over existing bytes without touching them.
func OpenArray(elem *Layout, buf Buffer) *Array {
	return &Array{view: openView(buf, ArrayHeaderSize), elem: elem}
}

// NewArray allocates an owning buffer of at least capacity bytes from the
// default allocator and creates an empty array in it.
func NewArray(elem *Layout, capacity int) *Array {
	if capacity < ArrayHeaderSize {
		capacity = ArrayHeaderSize
	}
	return CreateArray(elem, Allocate(nil, capacity))
}

// CalcArraySize returns the size of an array holding elems.
func CalcArraySize(elems ...*Record) int {
	size := ArrayHeaderSize
	for _, e := range elems {
		size += e.BinarySize()
	}
	return size
}

func (a *Array) init() {
	storeWord(a.buf.data, 0, ArrayHeaderSize)
	storeWord(a.buf.data, WordSize, 0)
}

// Elem returns the element layout.
func (a *Array) Elem() *Layout {
	return a.elem
}

// Count returns the number of elements.
func (a *Array) Count() uint64 {
	return loadWord(a.buf.data, WordSize)
}

// BinarySize returns the array size including both header words.
func (a *Array) BinarySize() int {
	return int(loadWord(a.buf.data, 0))
}

// Finalize is a no-op: the stored size is updated by every Append.
func (a *Array) Finalize() {}

// Bytes returns the bytes of the array.
func (a *Array) Bytes() []byte {
	n := a.BinarySize()
	checkCapacity(n, len(a.buf.data))
	return a.buf.data[:n:n]
}

// Append copies the finalized bytes of rec to the end of the array.
func (a *Array) Append(rec *Record) {
	if assertionsEnabled && rec.layout != a.elem {
		fail(NewTypeMismatchError("struct "+a.elem.name, "struct "+rec.layout.name))
	}
	src := rec.Bytes()
	end := a.BinarySize()
	checkCapacity(end+len(src), len(a.buf.data))
	copy(a.buf.data[end:], src)
	storeWord(a.buf.data, 0, uint64(end+len(src)))
	storeWord(a.buf.data, WordSize, a.Count()+1)
}

// Get returns a non-owning view of element index.
func (a *Array) Get(index uint64) (*Record, error) {
	count := a.Count()
	if index >= count {
		return nil, NewIndexOutOfBoundsError(index, 0, count)
	}

	var offset, size int
	if !a.elem.variable {
		size = a.elem.fixedSize
		offset = ArrayHeaderSize + int(index)*size
	} else {
		offset = ArrayHeaderSize
		for i := uint64(0); i < index; i++ {
			offset += a.elementSize(offset)
		}
		size = a.elementSize(offset)
	}
	return a.element(offset, size), nil
}

func (a *Array) element(offset, size int) *Record {
	return &Record{view: view{buf: a.buf.alias(offset, size)}, layout: a.elem}
}

// elementSize returns the size of the element stored at offset.
func (a *Array) elementSize(offset int) int {
	if !a.elem.variable {
		return a.elem.fixedSize
	}
	size := int(loadWord(a.buf.data, offset))
	if assertionsEnabled && (size < a.elem.MinSize() || offset+size > a.BinarySize()) {
		fail(NewContractViolationErrorf("array<%s> element at offset %d has invalid size %d", a.elem.name, offset, size))
	}
	return size
}

// Iterator returns a forward iterator over the elements.
func (a *Array) Iterator() *ArrayIterator {
	return &ArrayIterator{
		array:  a,
		count:  a.Count(),
		offset: ArrayHeaderSize,
	}
}

// All returns a sequence of (index, element) pairs in storage order.
func (a *Array) All() iter.Seq2[uint64, *Record] {
	return func(yield func(uint64, *Record) bool) {
		it := a.Iterator()
		for i := uint64(0); ; i++ {
			rec := it.Next()
			if rec == nil || !yield(i, rec) {
				return
			}
		}
	}
}

// Move transfers the buffer and its ownership to a new view.
// a is left inert.
func (a *Array) Move() *Array {
	return &Array{view: view{buf: a.buf.take()}, elem: a.elem}
}

// Copy returns an owning array holding a copy of the array bytes.
func (a *Array) Copy() *Array {
	return &Array{view: view{buf: copyOut(a.Bytes())}, elem: a.elem}
}

// CopyTo copies the array bytes to the front of dst and returns a
// non-owning array over the copy.
func (a *Array) CopyTo(dst []byte) *Array {
	return &Array{view: openView(copyInto(dst, a.Bytes()), ArrayHeaderSize), elem: a.elem}
}
