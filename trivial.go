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
	"reflect"
	"unsafe"

	flatbuffers "github.com/google/flatbuffers/go"
)

// Trivial is the set of fixed-width, bitwise-copyable value types that can be
// stored in a fixed-size field. Enums declared as named integer types satisfy it.
type Trivial interface {
	~bool | ~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64 | ~float32 | ~float64
}

func init() {
	probe := uint16(1)
	if *(*byte)(unsafe.Pointer(&probe)) != 1 {
		panic("fastbin requires a little-endian host")
	}
}

// SizeOf returns the native width of T in bytes.
func SizeOf[T Trivial]() int {
	var v T
	return int(unsafe.Sizeof(v))
}

// Load reads a T at offset. The read is copy-based and makes no alignment
// assumption. Bounds are the caller's responsibility.
func Load[T Trivial](buf []byte, offset int) T {
	var v T
	p := unsafe.Pointer(&v)
	switch unsafe.Sizeof(v) {
	case 1:
		*(*uint8)(p) = flatbuffers.GetUint8(buf[offset:])
	case 2:
		*(*uint16)(p) = flatbuffers.GetUint16(buf[offset:])
	case 4:
		*(*uint32)(p) = flatbuffers.GetUint32(buf[offset:])
	default:
		*(*uint64)(p) = flatbuffers.GetUint64(buf[offset:])
	}
	return v
}

// Store writes v at offset using a copy-based write.
func Store[T Trivial](buf []byte, offset int, v T) {
	p := unsafe.Pointer(&v)
	switch unsafe.Sizeof(v) {
	case 1:
		flatbuffers.WriteUint8(buf[offset:], *(*uint8)(p))
	case 2:
		flatbuffers.WriteUint16(buf[offset:], *(*uint16)(p))
	case 4:
		flatbuffers.WriteUint32(buf[offset:], *(*uint32)(p))
	default:
		flatbuffers.WriteUint64(buf[offset:], *(*uint64)(p))
	}
}

func loadWord(buf []byte, offset int) uint64 {
	return flatbuffers.GetUint64(buf[offset:])
}

func storeWord(buf []byte, offset int, v uint64) {
	flatbuffers.WriteUint64(buf[offset:], v)
}

// sliceOf reinterprets b as a []T without copying.
func sliceOf[T Trivial](b []byte) []T {
	width := SizeOf[T]()
	n := len(b) / width
	if n == 0 {
		return nil
	}
	p := unsafe.Pointer(unsafe.SliceData(b))
	if assertionsEnabled && uintptr(p)%uintptr(width) != 0 {
		fail(NewContractViolationErrorf("vector data at %p is not aligned to %d bytes", p, width))
	}
	return unsafe.Slice((*T)(p), n)
}

// bytesOf reinterprets vs as raw bytes without copying.
func bytesOf[T Trivial](vs []T) []byte {
	if len(vs) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(vs))), len(vs)*SizeOf[T]())
}

// kindOf maps T to the primitive kind sharing its underlying representation.
func kindOf[T Trivial]() Kind {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Bool:
		return KindBool
	case reflect.Int8:
		return KindInt8
	case reflect.Int16:
		return KindInt16
	case reflect.Int32:
		return KindInt32
	case reflect.Int64:
		return KindInt64
	case reflect.Uint8:
		return KindUint8
	case reflect.Uint16:
		return KindUint16
	case reflect.Uint32:
		return KindUint32
	case reflect.Uint64:
		return KindUint64
	case reflect.Float32:
		return KindFloat32
	case reflect.Float64:
		return KindFloat64
	}
	return KindInvalid
}
