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

package storage

import (
	"fmt"

	"github.com/onflow/fastbin"
)

// ObjectKind is the category of a stored object.
type ObjectKind uint8

const (
	KindUnknown ObjectKind = iota
	KindRecord
	KindArray
	KindVariant
)

func (k ObjectKind) String() string {
	switch k {
	case KindRecord:
		return "record"
	case KindArray:
		return "array"
	case KindVariant:
		return "variant"
	}
	return fmt.Sprintf("ObjectKind(%d)", uint8(k))
}

// Entry describes a stored object. It is kept in front of the object bytes.
type Entry struct {
	Kind      ObjectKind `cbor:"1,keyasint"`
	TypeName  string     `cbor:"2,keyasint"`
	Size      int        `cbor:"3,keyasint"`
	Checksum  uint64     `cbor:"4,keyasint"`
	ContentID [32]byte   `cbor:"5,keyasint"`
}

// NewEntry describes obj, which must be a finalized record, array or variant.
func NewEntry(obj fastbin.Object) (Entry, error) {
	var kind ObjectKind
	var name string
	switch o := obj.(type) {
	case *fastbin.Record:
		kind, name = KindRecord, o.Layout().Name()
	case *fastbin.Array:
		kind, name = KindArray, o.Elem().Name()
	case *fastbin.Variant:
		kind, name = KindVariant, o.Type().Name()
	default:
		return Entry{}, fmt.Errorf("unsupported object type %T", obj)
	}

	return Entry{
		Kind:      kind,
		TypeName:  name,
		Size:      obj.BinarySize(),
		Checksum:  fastbin.Checksum(obj),
		ContentID: fastbin.ContentID(obj),
	}, nil
}

// Describe returns the kind and type name as "record Trade".
func (e Entry) Describe() string {
	return e.Kind.String() + " " + e.TypeName
}

// encodeEnvelope returns the entry, as a CBOR document wrapped in a
// variable-length region, followed by the object bytes. Both start on a
// word boundary.
func encodeEnvelope(entry Entry, payload []byte) ([]byte, error) {
	meta, err := encMode.Marshal(entry)
	if err != nil {
		return nil, err
	}

	head := fastbin.MakeHeader(len(meta)).AlignedLen()
	buf := make([]byte, head+len(payload))
	fastbin.WriteRegion(buf, 0, meta)
	copy(buf[head:], payload)
	return buf, nil
}

// decodeEnvelope splits data into its entry and object bytes. The returned
// payload aliases data.
func decodeEnvelope(data []byte) (Entry, []byte, error) {
	if len(data) < fastbin.WordSize {
		return Entry{}, nil, fmt.Errorf("envelope is %d bytes", len(data))
	}
	h := fastbin.LoadHeader(data, 0)
	if err := h.Validate(); err != nil {
		return Entry{}, nil, err
	}
	if h.AlignedLen() > len(data) {
		return Entry{}, nil, fmt.Errorf("entry region of %d bytes exceeds envelope of %d bytes", h.AlignedLen(), len(data))
	}

	var entry Entry
	if err := decMode.Unmarshal(fastbin.RegionContent(data, 0), &entry); err != nil {
		return Entry{}, nil, err
	}

	payload := data[h.AlignedLen():]
	if len(payload) != entry.Size {
		return Entry{}, nil, fmt.Errorf("object is %d bytes, entry says %d", len(payload), entry.Size)
	}
	return entry, payload, nil
}
