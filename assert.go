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
	"unsafe"

	"go.uber.org/zap"
)

// fail reports a broken caller contract and panics with err.
func fail(err Error) {
	Logger().Error("fastbin assertion failed", zap.Error(err))
	panic(err)
}

// checkCapacity asserts that required bytes fit into a buffer of the given capacity.
func checkCapacity(required, capacity int) {
	if assertionsEnabled && required > capacity {
		fail(NewCapacityError(required, capacity))
	}
}

// checkAligned asserts that data starts on a word boundary.
func checkAligned(data []byte) {
	if !assertionsEnabled || len(data) == 0 {
		return
	}
	if uintptr(unsafe.Pointer(unsafe.SliceData(data)))%WordSize != 0 {
		fail(NewContractViolationError("buffer is not aligned to 8 bytes"))
	}
}
