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

// noCopy marks views that must not be copied by value after first use.
// go vet's copylocks check reports such copies.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Buffer is a byte span plus the allocator that releases it.
// A Buffer with a nil allocator is a non-owning alias.
//
// A Buffer returned by Allocate or Own must be handed to exactly one view.
type Buffer struct {
	data  []byte
	alloc Allocator
}

// Allocate returns an owning buffer of size bytes from alloc, or from the
// default allocator when alloc is nil. The contents are unspecified.
func Allocate(alloc Allocator, size int) Buffer {
	if alloc == nil {
		alloc = DefaultAllocator()
	}
	return Buffer{data: alloc.Allocate(size), alloc: alloc}
}

// Own returns a buffer that releases data to alloc when its view is released.
func Own(data []byte, alloc Allocator) Buffer {
	return Buffer{data: data, alloc: alloc}
}

// Borrow returns a non-owning alias of data.
func Borrow(data []byte) Buffer {
	return Buffer{data: data}
}

// Bytes returns the whole span.
func (b Buffer) Bytes() []byte {
	return b.data
}

// Len returns the span length.
func (b Buffer) Len() int {
	return len(b.data)
}

// Owned returns true if releasing the buffer frees memory.
func (b Buffer) Owned() bool {
	return b.alloc != nil
}

// alias returns a non-owning view of n bytes at offset.
func (b Buffer) alias(offset, n int) Buffer {
	checkCapacity(offset+n, len(b.data))
	end := offset + n
	return Buffer{data: b.data[offset:end:end]}
}

// tail returns a non-owning view from offset to the end of the span.
func (b Buffer) tail(offset int) Buffer {
	checkCapacity(offset, len(b.data))
	return Buffer{data: b.data[offset:]}
}

// take moves b out, leaving an inert zero-length alias behind.
func (b *Buffer) take() Buffer {
	moved := *b
	*b = Buffer{}
	return moved
}

func (b *Buffer) release() {
	if b.alloc != nil && b.data != nil {
		b.alloc.Free(b.data)
	}
	*b = Buffer{}
}

// view holds the buffer and the lifecycle operations shared by records,
// arrays and variants.
type view struct {
	noCopy noCopy
	buf    Buffer
}

// Owned returns true if the view releases its buffer.
func (v *view) Owned() bool {
	return v.buf.Owned()
}

// Cap returns the length of the backing region.
func (v *view) Cap() int {
	return len(v.buf.data)
}

// Raw returns the whole backing region, including bytes past the finalized size.
func (v *view) Raw() []byte {
	return v.buf.data
}

// Release frees the backing buffer if the view owns it and leaves the view inert.
// Releasing an alias or an already released view only detaches it.
func (v *view) Release() {
	v.buf.release()
}

func checkView(buf Buffer, minSize int) {
	checkCapacity(minSize, len(buf.data))
	checkAligned(buf.data)
}

func openView(buf Buffer, minSize int) view {
	checkView(buf, minSize)
	return view{buf: buf}
}

func createView(buf Buffer, minSize int) view {
	checkView(buf, minSize)
	clear(buf.data)
	return view{buf: buf}
}

// copyOut copies src into a fresh owning buffer of exactly len(src) bytes.
func copyOut(src []byte) Buffer {
	buf := Allocate(nil, len(src))
	copy(buf.data, src)
	return buf
}

// copyInto copies src to the front of dst and returns a non-owning alias of the copy.
func copyInto(dst []byte, src []byte) Buffer {
	checkCapacity(len(src), len(dst))
	n := copy(dst, src)
	return Borrow(dst[:n:n])
}
