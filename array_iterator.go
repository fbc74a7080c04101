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

// ArrayIterator walks array elements front to back.
// It cannot be rewound; start a new iterator instead.
type ArrayIterator struct {
	array  *Array
	index  uint64
	count  uint64
	offset int
}

// Next returns the next element, or nil when the array is exhausted.
func (i *ArrayIterator) Next() *Record {
	if i.index >= i.count {
		return nil
	}
	size := i.array.elementSize(i.offset)
	rec := i.array.element(i.offset, size)
	i.offset += size
	i.index++
	return rec
}

// Index returns the index of the element the next call to Next returns.
func (i *ArrayIterator) Index() uint64 {
	return i.index
}
