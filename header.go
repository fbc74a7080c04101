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

import "fmt"

const (
	// WordSize is the width of every header word and the alignment of every field.
	WordSize = 8

	sizeBits     = 56
	sizeMask     = uint64(1)<<sizeBits - 1
	padMask      = uint64(0x7)
	reservedMask = ^(sizeMask | padMask<<sizeBits)

	// MaxRegionSize is the largest aligned length a variable-length header can describe.
	MaxRegionSize = int(sizeMask)
)

// AlignUp rounds n up to the next multiple of WordSize.
func AlignUp(n int) int {
	return (n + WordSize - 1) &^ (WordSize - 1)
}

// Header is the 8-byte prefix of a variable-length region. The low 56 bits
// hold the aligned region length including the header, bits 56-58 hold the
// number of padding bytes, and the top 5 bits are reserved and written as zero.
type Header uint64

// MakeHeader returns the header describing contentLen bytes of content.
func MakeHeader(contentLen int) Header {
	unaligned := WordSize + contentLen
	aligned := AlignUp(unaligned)
	if assertionsEnabled && aligned > MaxRegionSize {
		fail(NewCapacityError(aligned, MaxRegionSize))
	}
	return Header(uint64(aligned) | uint64(aligned-unaligned)<<sizeBits)
}

// AlignedLen returns the region length including header and padding.
func (h Header) AlignedLen() int {
	return int(uint64(h) & sizeMask)
}

// Pad returns the number of zero bytes appended after the content.
func (h Header) Pad() int {
	return int(uint64(h) >> sizeBits & padMask)
}

// UnalignedLen returns the region length including the header but not the padding.
func (h Header) UnalignedLen() int {
	return h.AlignedLen() - h.Pad()
}

// ContentLen returns the exact content length.
func (h Header) ContentLen() int {
	return h.UnalignedLen() - WordSize
}

// Reserved returns the reserved top bits.
func (h Header) Reserved() uint8 {
	return uint8(uint64(h) & reservedMask >> (sizeBits + 3))
}

// Validate checks that h could have been produced by MakeHeader.
func (h Header) Validate() error {
	if msg := h.check(); msg != "" {
		return NewVerificationError(0, msg)
	}
	return nil
}

func (h Header) check() string {
	if h.Reserved() != 0 {
		return fmt.Sprintf("header %#x has reserved bits set", uint64(h))
	}
	aligned := h.AlignedLen()
	if aligned%WordSize != 0 {
		return fmt.Sprintf("header length %d is not a multiple of %d", aligned, WordSize)
	}
	if h.UnalignedLen() < WordSize {
		return fmt.Sprintf("header length %d with padding %d is shorter than the header", aligned, h.Pad())
	}
	if AlignUp(h.UnalignedLen()) != aligned {
		return fmt.Sprintf("header padding %d does not round %d up to %d", h.Pad(), h.UnalignedLen(), aligned)
	}
	return ""
}

// LoadHeader reads the header stored at offset.
func LoadHeader(buf []byte, offset int) Header {
	return Header(loadWord(buf, offset))
}

// WriteRegion writes a variable-length region holding content at offset:
// the header, the content, then zero padding up to the next word boundary.
// It returns the aligned region length.
func WriteRegion(buf []byte, offset int, content []byte) int {
	h := MakeHeader(len(content))
	n := h.AlignedLen()
	checkCapacity(offset+n, len(buf))
	storeWord(buf, offset, uint64(h))
	start := offset + WordSize
	copy(buf[start:], content)
	clear(buf[start+len(content) : offset+n])
	return n
}

// RegionContent returns the content of the region at offset without copying.
func RegionContent(buf []byte, offset int) []byte {
	h := LoadHeader(buf, offset)
	start := offset + WordSize
	end := start + h.ContentLen()
	if assertionsEnabled {
		if h.AlignedLen() == 0 {
			fail(NewContractViolationErrorf("region at offset %d was read before it was written", offset))
		}
		checkCapacity(offset+h.AlignedLen(), len(buf))
	}
	return buf[start:end:end]
}
