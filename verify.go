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

// VerifyRecord checks that data holds a well-formed record of layout l.
// Use it before opening bytes that did not come from this process.
func VerifyRecord(l *Layout, data []byte) error {
	_, err := verifyRecord(l, data, 0, len(data))
	return err
}

// VerifyArray checks that data holds a well-formed array of elem records.
func VerifyArray(elem *Layout, data []byte) error {
	_, err := verifyArray(elem, data, 0, len(data))
	return err
}

// VerifyVariant checks that data holds a well-formed variant of type vt.
func VerifyVariant(vt *VariantType, data []byte) error {
	_, err := verifyVariant(vt, data, 0, len(data))
	return err
}

// verifyRecord checks the record starting at offset and ending no later
// than end, and returns its size.
func verifyRecord(l *Layout, data []byte, offset, end int) (int, error) {
	size := l.fixedSize
	if l.variable {
		if offset+WordSize > end {
			return 0, NewVerificationErrorf(offset, "record %s header is truncated", l.name)
		}
		raw := loadWord(data, offset)
		if raw > uint64(end-offset) {
			return 0, NewVerificationErrorf(offset, "record %s size %d exceeds %d available bytes", l.name, raw, end-offset)
		}
		size = int(raw)
		if size < l.MinSize() || size%WordSize != 0 {
			return 0, NewVerificationErrorf(offset, "record %s has invalid size %d", l.name, size)
		}
	} else if size > end-offset {
		return 0, NewVerificationErrorf(offset, "record %s needs %d bytes, %d available", l.name, size, end-offset)
	}

	limit := offset + size
	pos := offset + l.HeaderSize()
	for _, f := range l.fields {
		n, err := verifyField(f.Type, data, pos, limit)
		if err != nil {
			return 0, err
		}
		pos += n
	}
	if pos != limit {
		return 0, NewVerificationErrorf(offset, "record %s fields end at %d, header says %d", l.name, pos-offset, size)
	}
	return size, nil
}

func verifyField(t Type, data []byte, offset, end int) (int, error) {
	switch t.kind {
	case KindStruct:
		if t.layout.variable {
			return verifyRecord(t.layout, data, offset, end)
		}
		if offset+t.layout.fixedSize > end {
			return 0, NewVerificationErrorf(offset, "%s is truncated", t)
		}
		return verifyRecord(t.layout, data, offset, offset+t.layout.fixedSize)

	case KindArray:
		return verifyArray(t.layout, data, offset, end)

	case KindString, KindBytes, KindVector, KindVariant:
		h, err := verifyRegion(data, offset, end)
		if err != nil {
			return 0, err
		}
		start := offset + WordSize
		switch t.kind {
		case KindVector:
			if h.ContentLen()%t.elem.Width() != 0 {
				return 0, NewVerificationErrorf(offset, "%s content length %d is not a multiple of %d", t, h.ContentLen(), t.elem.Width())
			}
		case KindVariant:
			n, err := verifyVariant(t.variant, data, start, start+h.ContentLen())
			if err != nil {
				return 0, err
			}
			if n != h.ContentLen() {
				return 0, NewVerificationErrorf(offset, "%s occupies %d of %d bytes", t, n, h.ContentLen())
			}
		}
		return h.AlignedLen(), nil
	}

	if offset+WordSize > end {
		return 0, NewVerificationErrorf(offset, "%s is truncated", t)
	}
	if t.kind == KindBool && data[offset] > 1 {
		return 0, NewVerificationErrorf(offset, "bool holds %d", data[offset])
	}
	return WordSize, nil
}

func verifyRegion(data []byte, offset, end int) (Header, error) {
	if offset+WordSize > end {
		return 0, NewVerificationError(offset, "region header is truncated")
	}
	h := LoadHeader(data, offset)
	if msg := h.check(); msg != "" {
		return 0, NewVerificationError(offset, msg)
	}
	if h.AlignedLen() > end-offset {
		return 0, NewVerificationErrorf(offset, "region length %d exceeds %d available bytes", h.AlignedLen(), end-offset)
	}
	return h, nil
}

func verifyArray(elem *Layout, data []byte, offset, end int) (int, error) {
	if offset+ArrayHeaderSize > end {
		return 0, NewVerificationErrorf(offset, "array<%s> header is truncated", elem.name)
	}
	raw := loadWord(data, offset)
	count := loadWord(data, offset+WordSize)
	if raw < ArrayHeaderSize || raw > uint64(end-offset) || raw%WordSize != 0 {
		return 0, NewVerificationErrorf(offset, "array<%s> has invalid size %d", elem.name, raw)
	}

	size := int(raw)
	limit := offset + size
	pos := offset + ArrayHeaderSize
	for i := uint64(0); i < count; i++ {
		if pos >= limit {
			return 0, NewVerificationErrorf(offset, "array<%s> declares %d elements, data ends after %d", elem.name, count, i)
		}
		n, err := verifyRecord(elem, data, pos, limit)
		if err != nil {
			return 0, err
		}
		pos += n
	}
	if pos != limit {
		return 0, NewVerificationErrorf(offset, "array<%s> elements end at %d, header says %d", elem.name, pos-offset, size)
	}
	return size, nil
}

func verifyVariant(vt *VariantType, data []byte, offset, end int) (int, error) {
	if offset+WordSize > end {
		return 0, NewVerificationErrorf(offset, "variant %s header is truncated", vt.name)
	}
	tag := loadWord(data, offset)
	total := tag >> variantIndexBits
	ord := int(tag & variantIndexMask)
	if total < WordSize || total > uint64(end-offset) {
		return 0, NewVerificationErrorf(offset, "variant %s has invalid size %d", vt.name, total)
	}
	if ord >= len(vt.alts) {
		return 0, NewVerificationErrorf(offset, "variant %s index %d out of %d alternatives", vt.name, ord, len(vt.alts))
	}

	start := offset + WordSize
	n := int(total) - WordSize
	if n == 0 {
		return int(total), nil
	}

	t := vt.alts[ord]
	switch t.kind {
	case KindString, KindBytes:
	case KindVector:
		if n%t.elem.Width() != 0 {
			return 0, NewVerificationErrorf(start, "%s payload length %d is not a multiple of %d", t, n, t.elem.Width())
		}
	case KindStruct:
		size, err := verifyRecord(t.layout, data, start, start+n)
		if err != nil {
			return 0, err
		}
		if size != n {
			return 0, NewVerificationErrorf(start, "%s occupies %d of %d payload bytes", t, size, n)
		}
	case KindArray:
		size, err := verifyArray(t.layout, data, start, start+n)
		if err != nil {
			return 0, err
		}
		if size != n {
			return 0, NewVerificationErrorf(start, "%s occupies %d of %d payload bytes", t, size, n)
		}
	default:
		if n != t.valueKind().Width() {
			return 0, NewVerificationErrorf(start, "%s payload is %d bytes", t, n)
		}
		if t.kind == KindBool && data[start] > 1 {
			return 0, NewVerificationErrorf(start, "bool holds %d", data[start])
		}
	}
	return int(total), nil
}
