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

package models

import (
	"github.com/onflow/fastbin"
)

var VectorOfUInt32Layout = fastbin.MustLayout("VectorOfUInt32",
	field("values", fastbin.VectorType(fastbin.KindUint32)),
	field("str", stringType),
)

const (
	vectorOfUInt32Values = iota
	vectorOfUInt32Str
)

type VectorOfUInt32 struct {
	model
}

func NewVectorOfUInt32(capacity int) VectorOfUInt32 {
	return VectorOfUInt32{model{fastbin.NewRecord(VectorOfUInt32Layout, capacity)}}
}

func CreateVectorOfUInt32(buf fastbin.Buffer) VectorOfUInt32 {
	return VectorOfUInt32{model{fastbin.CreateRecord(VectorOfUInt32Layout, buf)}}
}

func OpenVectorOfUInt32(buf fastbin.Buffer) VectorOfUInt32 {
	return VectorOfUInt32{model{fastbin.OpenRecord(VectorOfUInt32Layout, buf)}}
}

// Values returns the values without copying.
func (v VectorOfUInt32) Values() []uint32 {
	return fastbin.Vector[uint32](v.rec, vectorOfUInt32Values)
}

func (v VectorOfUInt32) SetValues(values []uint32) {
	fastbin.SetVector(v.rec, vectorOfUInt32Values, values)
}

func (v VectorOfUInt32) Str() string {
	return v.rec.GetString(vectorOfUInt32Str)
}

func (v VectorOfUInt32) SetStr(s string) {
	v.rec.SetString(vectorOfUInt32Str, s)
}

var VectorOfFixedSizedStructsLayout = fastbin.MustLayout("VectorOfFixedSizedStructs",
	field("values", fastbin.ArrayType(ChildFixedLayout)),
	field("str", stringType),
)

const (
	vectorOfFixedSizedStructsValues = iota
	vectorOfFixedSizedStructsStr
)

type VectorOfFixedSizedStructs struct {
	model
}

func NewVectorOfFixedSizedStructs(capacity int) VectorOfFixedSizedStructs {
	return VectorOfFixedSizedStructs{model{fastbin.NewRecord(VectorOfFixedSizedStructsLayout, capacity)}}
}

func OpenVectorOfFixedSizedStructs(buf fastbin.Buffer) VectorOfFixedSizedStructs {
	return VectorOfFixedSizedStructs{model{fastbin.OpenRecord(VectorOfFixedSizedStructsLayout, buf)}}
}

// Values returns a view of the child array.
func (v VectorOfFixedSizedStructs) Values() *fastbin.Array {
	return v.rec.ArrayField(vectorOfFixedSizedStructsValues)
}

// Value returns child i.
func (v VectorOfFixedSizedStructs) Value(i uint64) (ChildFixed, error) {
	rec, err := v.Values().Get(i)
	if err != nil {
		return ChildFixed{}, err
	}
	return ChildFixed{model{rec}}, nil
}

// SetValues copies a finalized array of ChildFixed.
func (v VectorOfFixedSizedStructs) SetValues(a *fastbin.Array) {
	v.rec.SetArrayField(vectorOfFixedSizedStructsValues, a)
}

// AppendValues writes children into the array field in place.
func (v VectorOfFixedSizedStructs) AppendValues(children ...ChildFixed) {
	a := v.rec.CreateArrayField(vectorOfFixedSizedStructsValues)
	for _, c := range children {
		a.Append(c.rec)
	}
}

func (v VectorOfFixedSizedStructs) Str() string {
	return v.rec.GetString(vectorOfFixedSizedStructsStr)
}

func (v VectorOfFixedSizedStructs) SetStr(s string) {
	v.rec.SetString(vectorOfFixedSizedStructsStr, s)
}
