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

var defaultAllocator Allocator = HeapAllocator{}

// DefaultAllocator returns the allocator used by NewRecord, NewArray,
// NewVariant and every Copy.
func DefaultAllocator() Allocator {
	return defaultAllocator
}

// SetDefaultAllocator replaces the default allocator and returns the previous one.
func SetDefaultAllocator(alloc Allocator) Allocator {
	prev := defaultAllocator
	if alloc == nil {
		alloc = HeapAllocator{}
	}
	defaultAllocator = alloc
	return prev
}
