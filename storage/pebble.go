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
	"errors"
	"sync"

	"github.com/cockroachdb/pebble"
	"go.uber.org/zap"

	"github.com/onflow/fastbin"
)

var (
	objectKeyPrefix = []byte("o/")
	countKey        = []byte("m/count")
)

func objectKey(id ObjectID) []byte {
	return append(append(make([]byte, 0, len(objectKeyPrefix)+ObjectIDLength), objectKeyPrefix...), id.Bytes()...)
}

// PebbleBaseStorage keeps envelopes in a Pebble database. The object count
// is kept under its own key and updated in the same batch as every write.
type PebbleBaseStorage struct {
	mu        sync.Mutex
	db        *pebble.DB
	writeOpts *pebble.WriteOptions
	count     int
	usage     usage
}

var _ BaseStorage = &PebbleBaseStorage{}

// OpenPebbleBaseStorage opens or creates a database in dir.
// A nil opts uses the Pebble defaults.
func OpenPebbleBaseStorage(dir string, opts *pebble.Options) (*PebbleBaseStorage, error) {
	if opts == nil {
		opts = &pebble.Options{}
	}
	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, NewStorageErrorf(err, "failed to open pebble database %q", dir)
	}

	s := &PebbleBaseStorage{
		db:        db,
		writeOpts: pebble.Sync,
		usage:     newUsage(),
	}

	data, closer, err := db.Get(countKey)
	switch {
	case errors.Is(err, pebble.ErrNotFound):
	case err != nil:
		_ = db.Close()
		return nil, NewStorageErrorf(err, "failed to read object count")
	default:
		if len(data) == 8 {
			s.count = int(fastbin.Load[uint64](data, 0))
		}
		_ = closer.Close()
	}

	Logger().Debug("pebble storage opened", zap.String("dir", dir), zap.Int("objects", s.count))
	return s, nil
}

// SetSync selects whether writes wait for the WAL to reach stable storage.
func (s *PebbleBaseStorage) SetSync(sync bool) {
	if sync {
		s.writeOpts = pebble.Sync
	} else {
		s.writeOpts = pebble.NoSync
	}
}

func (s *PebbleBaseStorage) Retrieve(id ObjectID) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok, err := s.get(objectKey(id))
	if err != nil {
		return nil, false, NewStorageErrorf(err, "failed to retrieve object %s", id)
	}
	s.usage.retrieved(id, len(data))
	return data, ok, nil
}

// get returns a copy of the value, since Pebble reuses the returned buffer
// after the closer is closed.
func (s *PebbleBaseStorage) get(key []byte) ([]byte, bool, error) {
	value, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer closer.Close()
	return append([]byte(nil), value...), true, nil
}

func (s *PebbleBaseStorage) exists(key []byte) (bool, error) {
	_, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, closer.Close()
}

func (s *PebbleBaseStorage) Store(id ObjectID, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := objectKey(id)
	found, err := s.exists(key)
	if err != nil {
		return NewStorageErrorf(err, "failed to store object %s", id)
	}

	count := s.count
	if !found {
		count++
	}

	b := s.db.NewBatch()
	defer b.Close()

	if err := b.Set(key, data, nil); err != nil {
		return NewStorageErrorf(err, "failed to store object %s", id)
	}
	if err := b.Set(countKey, encodeCount(count), nil); err != nil {
		return NewStorageErrorf(err, "failed to store object %s", id)
	}
	if err := b.Commit(s.writeOpts); err != nil {
		return NewStorageErrorf(err, "failed to store object %s", id)
	}

	s.count = count
	s.usage.stored(id, len(data))
	return nil
}

func (s *PebbleBaseStorage) Remove(id ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := objectKey(id)
	found, err := s.exists(key)
	if err != nil {
		return NewStorageErrorf(err, "failed to remove object %s", id)
	}
	if !found {
		return nil
	}

	b := s.db.NewBatch()
	defer b.Close()

	if err := b.Delete(key, nil); err != nil {
		return NewStorageErrorf(err, "failed to remove object %s", id)
	}
	if err := b.Set(countKey, encodeCount(s.count-1), nil); err != nil {
		return NewStorageErrorf(err, "failed to remove object %s", id)
	}
	if err := b.Commit(s.writeOpts); err != nil {
		return NewStorageErrorf(err, "failed to remove object %s", id)
	}

	s.count--
	s.usage.removed(id)
	return nil
}

func encodeCount(n int) []byte {
	b := make([]byte, fastbin.WordSize)
	fastbin.Store(b, 0, uint64(n))
	return b
}

func (s *PebbleBaseStorage) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Close flushes and closes the database.
func (s *PebbleBaseStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Close(); err != nil {
		return NewStorageErrorf(err, "failed to close pebble database")
	}
	return nil
}

func (s *PebbleBaseStorage) BytesRetrieved() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usage.bytesRetrieved
}

func (s *PebbleBaseStorage) BytesStored() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usage.bytesStored
}

func (s *PebbleBaseStorage) ObjectsReturned() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.usage.objectsReturned)
}

func (s *PebbleBaseStorage) ObjectsUpdated() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.usage.objectsUpdated)
}

func (s *PebbleBaseStorage) ResetReporter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usage = newUsage()
}
