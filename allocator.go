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
	"math/bits"
	"sync"
)

// Allocator supplies and reclaims the buffers owned by root views.
type Allocator interface {
	// Allocate returns a slice of exactly size bytes. Contents are unspecified.
	Allocate(size int) []byte
	// Free returns a slice obtained from Allocate.
	Free(buf []byte)
}

// HeapAllocator allocates from the Go heap and leaves reclamation to the GC.
type HeapAllocator struct{}

var _ Allocator = HeapAllocator{}

// Allocate rounds the allocation up to a whole word so the runtime hands
// out a word-aligned block even for odd sizes.
func (HeapAllocator) Allocate(size int) []byte {
	return make([]byte, AlignUp(size))[:size]
}

func (HeapAllocator) Free([]byte) {}

const (
	minPoolClass = 6  // 64 B
	maxPoolClass = 20 // 1 MiB
)

// PoolAllocator recycles buffers in power-of-two size classes from 64 B to 1 MiB.
// Larger requests fall through to the heap.
type PoolAllocator struct {
	pools [maxPoolClass - minPoolClass + 1]sync.Pool
}

var _ Allocator = &PoolAllocator{}

// NewPoolAllocator creates an empty PoolAllocator.
func NewPoolAllocator() *PoolAllocator {
	a := &PoolAllocator{}
	for i := range a.pools {
		size := 1 << (minPoolClass + i)
		a.pools[i].New = func() any {
			buf := make([]byte, size)
			return &buf
		}
	}
	return a
}

func sizeClass(size int) int {
	if size <= 1<<minPoolClass {
		return minPoolClass
	}
	return bits.Len(uint(size - 1))
}

func (a *PoolAllocator) Allocate(size int) []byte {
	class := sizeClass(size)
	if class > maxPoolClass {
		return make([]byte, size)
	}
	buf := a.pools[class-minPoolClass].Get().(*[]byte)
	return (*buf)[:size]
}

func (a *PoolAllocator) Free(buf []byte) {
	c := cap(buf)
	if c == 0 || c&(c-1) != 0 {
		return // not from a pool class
	}
	class := bits.Len(uint(c)) - 1
	if class < minPoolClass || class > maxPoolClass {
		return
	}
	buf = buf[:c]
	a.pools[class-minPoolClass].Put(&buf)
}
