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

// Package models holds typed wrappers over fastbin records for a market
// data schema. Each wrapper pairs a layout with one getter and setter per
// field, the way a schema generator would emit them.
package models

import (
	"github.com/onflow/fastbin"
)

// model is the record view shared by every wrapper.
type model struct {
	rec *fastbin.Record
}

// Record returns the underlying record view.
func (m model) Record() *fastbin.Record {
	return m.rec
}

func (m model) Finalize() {
	m.rec.Finalize()
}

func (m model) BinarySize() int {
	return m.rec.BinarySize()
}

func (m model) Bytes() []byte {
	return m.rec.Bytes()
}

func (m model) Owned() bool {
	return m.rec.Owned()
}

func (m model) Release() {
	m.rec.Release()
}

func field(name string, t fastbin.Type) fastbin.FieldDef {
	return fastbin.FieldDef{Name: name, Type: t}
}

var (
	int32Type   = fastbin.PrimitiveType(fastbin.KindInt32)
	int64Type   = fastbin.PrimitiveType(fastbin.KindInt64)
	uint16Type  = fastbin.PrimitiveType(fastbin.KindUint16)
	uint64Type  = fastbin.PrimitiveType(fastbin.KindUint64)
	float64Type = fastbin.PrimitiveType(fastbin.KindFloat64)
	boolType    = fastbin.PrimitiveType(fastbin.KindBool)
	stringType  = fastbin.StringType()
)
