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
	"sync"
)

// BaseStorageUsageReporter reports the bytes moved through a BaseStorage
// since the last reset.
type BaseStorageUsageReporter interface {
	BytesRetrieved() int
	BytesStored() int
	ObjectsReturned() int
	ObjectsUpdated() int
	ResetReporter()
}

// BaseStorage is a key-value store of envelopes.
type BaseStorage interface {
	Store(ObjectID, []byte) error
	Retrieve(ObjectID) ([]byte, bool, error)
	Remove(ObjectID) error
	Count() int // number of objects stored
	BaseStorageUsageReporter
}

// usage implements BaseStorageUsageReporter for the bundled backends.
type usage struct {
	bytesRetrieved  int
	bytesStored     int
	objectsReturned map[ObjectID]struct{}
	objectsUpdated  map[ObjectID]struct{}
}

func newUsage() usage {
	return usage{
		objectsReturned: make(map[ObjectID]struct{}),
		objectsUpdated:  make(map[ObjectID]struct{}),
	}
}

func (u *usage) retrieved(id ObjectID, n int) {
	u.bytesRetrieved += n
	u.objectsReturned[id] = struct{}{}
}

func (u *usage) stored(id ObjectID, n int) {
	u.bytesStored += n
	u.objectsUpdated[id] = struct{}{}
}

func (u *usage) removed(id ObjectID) {
	u.objectsUpdated[id] = struct{}{}
}

// InMemBaseStorage keeps envelopes in a map.
type InMemBaseStorage struct {
	mu      sync.RWMutex
	objects map[ObjectID][]byte
	usage   usage
}

var _ BaseStorage = &InMemBaseStorage{}

func NewInMemBaseStorage() *InMemBaseStorage {
	return NewInMemBaseStorageFromMap(make(map[ObjectID][]byte))
}

func NewInMemBaseStorageFromMap(objects map[ObjectID][]byte) *InMemBaseStorage {
	return &InMemBaseStorage{
		objects: objects,
		usage:   newUsage(),
	}
}

// Retrieve returns the stored bytes. Callers must not modify them.
func (s *InMemBaseStorage) Retrieve(id ObjectID) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.objects[id]
	s.usage.retrieved(id, len(data))
	return data, ok, nil
}

func (s *InMemBaseStorage) Store(id ObjectID, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[id] = append([]byte(nil), data...)
	s.usage.stored(id, len(data))
	return nil
}

func (s *InMemBaseStorage) Remove(id ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.objects, id)
	s.usage.removed(id)
	return nil
}

func (s *InMemBaseStorage) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.objects)
}

// Size returns the total byte size stored.
func (s *InMemBaseStorage) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, data := range s.objects {
		total += len(data)
	}
	return total
}

func (s *InMemBaseStorage) BytesRetrieved() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usage.bytesRetrieved
}

func (s *InMemBaseStorage) BytesStored() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usage.bytesStored
}

func (s *InMemBaseStorage) ObjectsReturned() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.usage.objectsReturned)
}

func (s *InMemBaseStorage) ObjectsUpdated() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.usage.objectsUpdated)
}

func (s *InMemBaseStorage) ResetReporter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usage = newUsage()
}
