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
	"github.com/fxamacker/circlehash"
	"github.com/zeebo/blake3"
)

// Object is any finalized record, array or variant.
type Object interface {
	Bytes() []byte
	BinarySize() int
}

var (
	_ Object = &Record{}
	_ Object = &Array{}
	_ Object = &Variant{}
)

// checksumSeed is "fastbin\x00" read as a little-endian word.
const checksumSeed = 0x006e696274736166

// Checksum returns the CircleHash64 digest of the finalized bytes of obj.
func Checksum(obj Object) uint64 {
	return ChecksumBytes(obj.Bytes())
}

// ChecksumBytes returns the CircleHash64 digest of b.
func ChecksumBytes(b []byte) uint64 {
	return circlehash.Hash64(b, checksumSeed)
}

// ContentID returns the BLAKE3-256 digest of the finalized bytes of obj.
func ContentID(obj Object) [32]byte {
	return blake3.Sum256(obj.Bytes())
}
