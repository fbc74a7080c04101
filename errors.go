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

type Error interface {
	// returns true if the error is fatal
	IsFatal() bool
	// and anything else that is needed to be an error
	error
}

// IndexOutOfBoundsError is returned when an array element is requested at an index which is out of bounds
type IndexOutOfBoundsError struct {
	index uint64
	min   uint64
	max   uint64
}

// NewIndexOutOfBoundsError constructs a IndexOutOfBoundsError
func NewIndexOutOfBoundsError(index, min, max uint64) *IndexOutOfBoundsError {
	return &IndexOutOfBoundsError{index: index, min: min, max: max}
}

func (e *IndexOutOfBoundsError) Error() string {
	return fmt.Sprintf("the given index %d is not in the acceptable range (%d-%d)", e.index, e.min, e.max)
}

// IsFatal returns true if the error is fatal
func (e *IndexOutOfBoundsError) IsFatal() bool {
	return false
}

// LayoutError is returned when a layout or variant type declaration is malformed
type LayoutError struct {
	name string
	msg  string
}

// NewLayoutError constructs a LayoutError
func NewLayoutError(name string, msg string) *LayoutError {
	return &LayoutError{name: name, msg: msg}
}

// NewLayoutErrorf constructs a LayoutError with a formatted message
func NewLayoutErrorf(name string, msg string, args ...interface{}) *LayoutError {
	return NewLayoutError(name, fmt.Sprintf(msg, args...))
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("invalid layout %q: %s", e.name, e.msg)
}

// IsFatal returns true if the error is fatal
func (e *LayoutError) IsFatal() bool {
	return false
}

// VerificationError is returned when untrusted bytes do not hold a well-formed object
type VerificationError struct {
	offset int
	msg    string
}

// NewVerificationError constructs a VerificationError
func NewVerificationError(offset int, msg string) *VerificationError {
	return &VerificationError{offset: offset, msg: msg}
}

// NewVerificationErrorf constructs a VerificationError with a formatted message
func NewVerificationErrorf(offset int, msg string, args ...interface{}) *VerificationError {
	return NewVerificationError(offset, fmt.Sprintf(msg, args...))
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("malformed data at offset %d: %s", e.offset, e.msg)
}

// Offset returns the byte offset at which verification failed
func (e *VerificationError) Offset() int {
	return e.offset
}

// IsFatal returns true if the error is fatal
func (e *VerificationError) IsFatal() bool {
	return false
}

// ContractViolationError is a fatal error raised when a caller breaks the write order or lifecycle rules
type ContractViolationError struct {
	msg string
}

// NewContractViolationError constructs a ContractViolationError
func NewContractViolationError(msg string) *ContractViolationError {
	return &ContractViolationError{msg: msg}
}

// NewContractViolationErrorf constructs a ContractViolationError with a formatted message
func NewContractViolationErrorf(msg string, args ...interface{}) *ContractViolationError {
	return NewContractViolationError(fmt.Sprintf(msg, args...))
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("contract violation: %s", e.msg)
}

// IsFatal returns true if the error is fatal
func (e *ContractViolationError) IsFatal() bool {
	return true
}

// CapacityError is a fatal error raised when a write would exceed the backing buffer
type CapacityError struct {
	required int
	capacity int
}

// NewCapacityError constructs a CapacityError
func NewCapacityError(required, capacity int) *CapacityError {
	return &CapacityError{required: required, capacity: capacity}
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("buffer too small: %d bytes required, capacity is %d", e.required, e.capacity)
}

// IsFatal returns true if the error is fatal
func (e *CapacityError) IsFatal() bool {
	return true
}

// TypeMismatchError is a fatal error raised when a value is accessed as a type it does not hold
type TypeMismatchError struct {
	expected string
	actual   string
}

// NewTypeMismatchError constructs a TypeMismatchError
func NewTypeMismatchError(expected, actual string) *TypeMismatchError {
	return &TypeMismatchError{expected: expected, actual: actual}
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.expected, e.actual)
}

// IsFatal returns true if the error is fatal
func (e *TypeMismatchError) IsFatal() bool {
	return true
}
