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

var ChildFixedLayout = fastbin.MustLayout("ChildFixed",
	field("field1", int32Type),
	field("field2", int32Type),
)

const (
	childFixedField1 = iota
	childFixedField2
)

// ChildFixed is a fixed-size record.
type ChildFixed struct {
	model
}

func NewChildFixed() ChildFixed {
	return ChildFixed{model{fastbin.NewRecord(ChildFixedLayout, 0)}}
}

func CreateChildFixed(buf fastbin.Buffer) ChildFixed {
	return ChildFixed{model{fastbin.CreateRecord(ChildFixedLayout, buf)}}
}

func OpenChildFixed(buf fastbin.Buffer) ChildFixed {
	return ChildFixed{model{fastbin.OpenRecord(ChildFixedLayout, buf)}}
}

func (c ChildFixed) Field1() int32 {
	return fastbin.Field[int32](c.rec, childFixedField1)
}

func (c ChildFixed) SetField1(v int32) {
	fastbin.SetField(c.rec, childFixedField1, v)
}

func (c ChildFixed) Field2() int32 {
	return fastbin.Field[int32](c.rec, childFixedField2)
}

func (c ChildFixed) SetField2(v int32) {
	fastbin.SetField(c.rec, childFixedField2, v)
}

var ChildVarLayout = fastbin.MustLayout("ChildVar",
	field("field1", int32Type),
	field("field2", stringType),
)

const (
	childVarField1 = iota
	childVarField2
)

// ChildVar is a variable-size record.
type ChildVar struct {
	model
}

func NewChildVar(capacity int) ChildVar {
	return ChildVar{model{fastbin.NewRecord(ChildVarLayout, capacity)}}
}

func CreateChildVar(buf fastbin.Buffer) ChildVar {
	return ChildVar{model{fastbin.CreateRecord(ChildVarLayout, buf)}}
}

func OpenChildVar(buf fastbin.Buffer) ChildVar {
	return ChildVar{model{fastbin.OpenRecord(ChildVarLayout, buf)}}
}

func (c ChildVar) Field1() int32 {
	return fastbin.Field[int32](c.rec, childVarField1)
}

func (c ChildVar) SetField1(v int32) {
	fastbin.SetField(c.rec, childVarField1, v)
}

func (c ChildVar) Field2() string {
	return c.rec.GetString(childVarField2)
}

func (c ChildVar) SetField2(v string) {
	c.rec.SetString(childVarField2, v)
}

var ParentLayout = fastbin.MustLayout("Parent",
	field("field1", int32Type),
	field("child1", fastbin.StructType(ChildFixedLayout)),
	field("child2", fastbin.StructType(ChildVarLayout)),
	field("str", stringType),
)

const (
	parentField1 = iota
	parentChild1
	parentChild2
	parentStr
)

// Parent nests a fixed and a variable child.
// Child2 must be finalized before Str is set.
type Parent struct {
	model
}

func NewParent(capacity int) Parent {
	return Parent{model{fastbin.NewRecord(ParentLayout, capacity)}}
}

func CreateParent(buf fastbin.Buffer) Parent {
	return Parent{model{fastbin.CreateRecord(ParentLayout, buf)}}
}

func OpenParent(buf fastbin.Buffer) Parent {
	return Parent{model{fastbin.OpenRecord(ParentLayout, buf)}}
}

func (p Parent) Field1() int32 {
	return fastbin.Field[int32](p.rec, parentField1)
}

func (p Parent) SetField1(v int32) {
	fastbin.SetField(p.rec, parentField1, v)
}

// Child1 returns a view of the nested fixed child, writable in place.
func (p Parent) Child1() ChildFixed {
	return ChildFixed{model{p.rec.Child(parentChild1)}}
}

func (p Parent) SetChild1(c ChildFixed) {
	p.rec.SetChild(parentChild1, c.rec)
}

// Child2 returns a view of the nested variable child. Before the child is
// finalized the view spans the rest of the buffer so it can be built in place.
func (p Parent) Child2() ChildVar {
	return ChildVar{model{p.rec.Child(parentChild2)}}
}

func (p Parent) SetChild2(c ChildVar) {
	p.rec.SetChild(parentChild2, c.rec)
}

func (p Parent) Str() string {
	return p.rec.GetString(parentStr)
}

func (p Parent) SetStr(v string) {
	p.rec.SetString(parentStr, v)
}
