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
	"fmt"

	"github.com/onflow/fastbin"
)

// StorageError wraps a failure returned by a BaseStorage.
type StorageError struct {
	err error
	msg string
}

var _ fastbin.Error = &StorageError{}

// NewStorageErrorf constructs a StorageError wrapping err.
func NewStorageErrorf(err error, msg string, args ...interface{}) *StorageError {
	return &StorageError{err: err, msg: fmt.Sprintf(msg, args...)}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s: %s", e.msg, e.err)
}

func (e *StorageError) Unwrap() error {
	return e.err
}

// IsFatal returns true if the error is fatal
func (e *StorageError) IsFatal() bool {
	return true
}

// wrapErrorfAsStorageErrorIfNeeded wraps err in a StorageError unless it
// already is a fastbin.Error.
func wrapErrorfAsStorageErrorIfNeeded(err error, msg string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	var fbErr fastbin.Error
	if errors.As(err, &fbErr) {
		return err
	}
	return NewStorageErrorf(err, msg, args...)
}

// ObjectNotFoundError is returned when no object is stored under an ID.
type ObjectNotFoundError struct {
	id ObjectID
}

var _ fastbin.Error = &ObjectNotFoundError{}

func NewObjectNotFoundError(id ObjectID) *ObjectNotFoundError {
	return &ObjectNotFoundError{id: id}
}

func (e *ObjectNotFoundError) Error() string {
	return fmt.Sprintf("object %s not found", e.id)
}

func (e *ObjectNotFoundError) ID() ObjectID {
	return e.id
}

// IsFatal returns true if the error is fatal
func (e *ObjectNotFoundError) IsFatal() bool {
	return false
}

// ObjectTypeError is returned when a stored object is retrieved as a
// different kind or type than it was stored as.
type ObjectTypeError struct {
	id       ObjectID
	expected string
	actual   string
}

var _ fastbin.Error = &ObjectTypeError{}

func NewObjectTypeError(id ObjectID, expected, actual string) *ObjectTypeError {
	return &ObjectTypeError{id: id, expected: expected, actual: actual}
}

func (e *ObjectTypeError) Error() string {
	return fmt.Sprintf("object %s is %s, expected %s", e.id, e.actual, e.expected)
}

// IsFatal returns true if the error is fatal
func (e *ObjectTypeError) IsFatal() bool {
	return false
}

// ChecksumMismatchError is returned when stored bytes no longer match the
// checksum recorded with them.
type ChecksumMismatchError struct {
	id       ObjectID
	expected uint64
	actual   uint64
}

var _ fastbin.Error = &ChecksumMismatchError{}

func NewChecksumMismatchError(id ObjectID, expected, actual uint64) *ChecksumMismatchError {
	return &ChecksumMismatchError{id: id, expected: expected, actual: actual}
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("object %s checksum %016x, expected %016x", e.id, e.actual, e.expected)
}

// IsFatal returns true if the error is fatal
func (e *ChecksumMismatchError) IsFatal() bool {
	return true
}

// CorruptedEnvelopeError is returned when stored bytes cannot be decoded.
type CorruptedEnvelopeError struct {
	id  ObjectID
	err error
}

var _ fastbin.Error = &CorruptedEnvelopeError{}

func NewCorruptedEnvelopeError(id ObjectID, err error) *CorruptedEnvelopeError {
	return &CorruptedEnvelopeError{id: id, err: err}
}

func (e *CorruptedEnvelopeError) Error() string {
	return fmt.Sprintf("object %s is corrupted: %s", e.id, e.err)
}

func (e *CorruptedEnvelopeError) Unwrap() error {
	return e.err
}

// IsFatal returns true if the error is fatal
func (e *CorruptedEnvelopeError) IsFatal() bool {
	return true
}

// InvalidObjectIDError is returned when an ObjectID cannot be parsed.
type InvalidObjectIDError struct {
	msg string
}

var _ fastbin.Error = &InvalidObjectIDError{}

func NewInvalidObjectIDErrorf(msg string, args ...interface{}) *InvalidObjectIDError {
	return &InvalidObjectIDError{msg: fmt.Sprintf(msg, args...)}
}

func (e *InvalidObjectIDError) Error() string {
	return e.msg
}

// IsFatal returns true if the error is fatal
func (e *InvalidObjectIDError) IsFatal() bool {
	return false
}
