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
	"go.uber.org/zap"

	"github.com/onflow/fastbin"
)

// Storage persists finalized records, arrays and variants in a BaseStorage.
//
// Every object is stored with an Entry recording its kind, type name,
// size, checksum and content ID. Retrieval checks all of them and
// verifies the object structure before handing out a view, so views
// returned by Storage are safe to read even if the backend was tampered
// with.
type Storage struct {
	base    BaseStorage
	metrics *Metrics
}

// NewStorage creates a Storage over base. metrics may be nil.
func NewStorage(base BaseStorage, metrics *Metrics) *Storage {
	return &Storage{base: base, metrics: metrics}
}

// Base returns the underlying BaseStorage.
func (s *Storage) Base() BaseStorage {
	return s.base
}

// Count returns the number of stored objects.
func (s *Storage) Count() int {
	return s.base.Count()
}

// Store copies the finalized bytes of obj under a new ObjectID.
func (s *Storage) Store(obj fastbin.Object) (ObjectID, error) {
	id := NewObjectID()
	if err := s.StoreWithID(id, obj); err != nil {
		return ObjectIDUndefined, err
	}
	return id, nil
}

// StoreWithID copies the finalized bytes of obj under id, replacing any
// object stored there.
func (s *Storage) StoreWithID(id ObjectID, obj fastbin.Object) error {
	entry, err := NewEntry(obj)
	if err != nil {
		return NewStorageErrorf(err, "failed to describe object %s", id)
	}

	data, err := encodeEnvelope(entry, obj.Bytes())
	if err != nil {
		return NewStorageErrorf(err, "failed to encode object %s", id)
	}

	if err := s.base.Store(id, data); err != nil {
		return wrapErrorfAsStorageErrorIfNeeded(err, "failed to store object %s", id)
	}

	s.metrics.stored(entry.Kind, entry.Size)
	Logger().Debug("object stored",
		zap.Stringer("id", id),
		zap.String("object", entry.Describe()),
		zap.Int("size", entry.Size),
	)
	return nil
}

// Entry returns the entry stored with id without checking the object bytes.
func (s *Storage) Entry(id ObjectID) (Entry, error) {
	data, err := s.load(id)
	if err != nil {
		return Entry{}, err
	}
	entry, _, err := decodeEnvelope(data)
	if err != nil {
		s.metrics.integrityFailure(failureEnvelope)
		return Entry{}, NewCorruptedEnvelopeError(id, err)
	}
	return entry, nil
}

// Remove deletes the object stored with id. Removing a missing object is a no-op.
func (s *Storage) Remove(id ObjectID) error {
	if err := s.base.Remove(id); err != nil {
		return wrapErrorfAsStorageErrorIfNeeded(err, "failed to remove object %s", id)
	}
	s.metrics.removed()
	return nil
}

// RetrieveRecord returns an owning record holding a copy of the object stored with id.
func (s *Storage) RetrieveRecord(id ObjectID, l *fastbin.Layout) (*fastbin.Record, error) {
	payload, err := s.retrieve(id, KindRecord, l.Name(), func(data []byte) error {
		return fastbin.VerifyRecord(l, data)
	})
	if err != nil {
		return nil, err
	}
	return fastbin.OpenRecord(l, copyPayload(payload)), nil
}

// RetrieveArray returns an owning array holding a copy of the object stored with id.
func (s *Storage) RetrieveArray(id ObjectID, elem *fastbin.Layout) (*fastbin.Array, error) {
	payload, err := s.retrieve(id, KindArray, elem.Name(), func(data []byte) error {
		return fastbin.VerifyArray(elem, data)
	})
	if err != nil {
		return nil, err
	}
	return fastbin.OpenArray(elem, copyPayload(payload)), nil
}

// RetrieveVariant returns an owning variant holding a copy of the object stored with id.
func (s *Storage) RetrieveVariant(id ObjectID, vt *fastbin.VariantType) (*fastbin.Variant, error) {
	payload, err := s.retrieve(id, KindVariant, vt.Name(), func(data []byte) error {
		return fastbin.VerifyVariant(vt, data)
	})
	if err != nil {
		return nil, err
	}
	return fastbin.OpenVariant(vt, copyPayload(payload)), nil
}

func (s *Storage) load(id ObjectID) ([]byte, error) {
	data, found, err := s.base.Retrieve(id)
	if err != nil {
		return nil, wrapErrorfAsStorageErrorIfNeeded(err, "failed to retrieve object %s", id)
	}
	if !found {
		return nil, NewObjectNotFoundError(id)
	}
	return data, nil
}

func (s *Storage) retrieve(id ObjectID, kind ObjectKind, name string, verify func([]byte) error) ([]byte, error) {
	data, err := s.load(id)
	if err != nil {
		return nil, err
	}

	entry, payload, err := decodeEnvelope(data)
	if err != nil {
		return nil, s.rejected(id, failureEnvelope, NewCorruptedEnvelopeError(id, err))
	}

	if entry.Kind != kind || entry.TypeName != name {
		s.metrics.integrityFailure(failureObjectType)
		return nil, NewObjectTypeError(id, kind.String()+" "+name, entry.Describe())
	}

	if sum := fastbin.ChecksumBytes(payload); sum != entry.Checksum {
		return nil, s.rejected(id, failureChecksum, NewChecksumMismatchError(id, entry.Checksum, sum))
	}

	if err := verify(payload); err != nil {
		return nil, s.rejected(id, failureVerify, NewCorruptedEnvelopeError(id, err))
	}

	s.metrics.retrieved(kind, len(payload))
	return payload, nil
}

func (s *Storage) rejected(id ObjectID, reason string, err error) error {
	s.metrics.integrityFailure(reason)
	Logger().Warn("object rejected",
		zap.Stringer("id", id),
		zap.String("reason", reason),
		zap.Error(err),
	)
	return err
}

// copyPayload copies stored bytes into an owning, word-aligned buffer.
func copyPayload(payload []byte) fastbin.Buffer {
	buf := fastbin.Allocate(nil, len(payload))
	copy(buf.Bytes(), payload)
	return buf
}
