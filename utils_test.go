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

package fastbin_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/onflow/fastbin"
)

func newRand(t testing.TB) *rand.Rand {
	seed := time.Now().UnixNano()
	t.Logf("seed: %d", seed)
	return rand.New(rand.NewSource(seed))
}

func requireAssertions(t *testing.T) {
	t.Helper()
	if !fastbin.AssertionsEnabled {
		t.Skip("assertions are compiled out")
	}
}

// requireFatal runs f and requires it to panic with an error of type E.
func requireFatal[E fastbin.Error](t *testing.T, f func()) E {
	t.Helper()

	var got E
	func() {
		defer func() {
			r := recover()
			require.NotNil(t, r, "expected a panic")
			err, ok := r.(error)
			require.True(t, ok, "panic value %v is not an error", r)
			require.ErrorAs(t, err, &got)
		}()
		f()
	}()

	require.True(t, got.IsFatal())
	return got
}

// countingAllocator records every allocation and release.
type countingAllocator struct {
	allocated [][]byte
	freed     [][]byte
}

var _ fastbin.Allocator = &countingAllocator{}

func (a *countingAllocator) Allocate(size int) []byte {
	buf := make([]byte, size)
	a.allocated = append(a.allocated, buf)
	return buf
}

func (a *countingAllocator) Free(buf []byte) {
	a.freed = append(a.freed, buf)
}

func withDefaultAllocator(t *testing.T, alloc fastbin.Allocator) {
	prev := fastbin.SetDefaultAllocator(alloc)
	t.Cleanup(func() {
		fastbin.SetDefaultAllocator(prev)
	})
}
