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
	"github.com/segmentio/ksuid"
)

// ObjectID identifies a stored object. IDs are K-sortable: IDs created
// later compare greater, so backends keep objects in creation order.
type ObjectID struct {
	id ksuid.KSUID
}

// ObjectIDUndefined is the zero ObjectID.
var ObjectIDUndefined = ObjectID{}

// ObjectIDLength is the binary length of an ObjectID.
const ObjectIDLength = 20

func NewObjectID() ObjectID {
	return ObjectID{id: ksuid.New()}
}

// ParseObjectID parses the string form produced by ObjectID.String.
func ParseObjectID(s string) (ObjectID, error) {
	id, err := ksuid.Parse(s)
	if err != nil {
		return ObjectIDUndefined, NewInvalidObjectIDErrorf("failed to parse object ID %q: %s", s, err)
	}
	return ObjectID{id: id}, nil
}

// ObjectIDFromBytes decodes the binary form produced by ObjectID.Bytes.
func ObjectIDFromBytes(b []byte) (ObjectID, error) {
	id, err := ksuid.FromBytes(b)
	if err != nil {
		return ObjectIDUndefined, NewInvalidObjectIDErrorf("failed to decode object ID %x: %s", b, err)
	}
	return ObjectID{id: id}, nil
}

func (id ObjectID) String() string {
	return id.id.String()
}

func (id ObjectID) Bytes() []byte {
	return id.id.Bytes()
}

func (id ObjectID) Valid() bool {
	return !id.id.IsNil()
}

// Compare returns -1, 0 or 1 ordering id before, equal to or after other.
func (id ObjectID) Compare(other ObjectID) int {
	return ksuid.Compare(id.id, other.id)
}
