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

import (
	"fmt"

	"go.uber.org/zap"
)

// Kind identifies the category of a field or variant alternative.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindEnum
	KindString
	KindBytes
	KindVector
	KindStruct
	KindArray
	KindVariant
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindBool:    "bool",
	KindInt8:    "int8",
	KindInt16:   "int16",
	KindInt32:   "int32",
	KindInt64:   "int64",
	KindUint8:   "uint8",
	KindUint16:  "uint16",
	KindUint32:  "uint32",
	KindUint64:  "uint64",
	KindFloat32: "float32",
	KindFloat64: "float64",
	KindEnum:    "enum",
	KindString:  "string",
	KindBytes:   "bytes",
	KindVector:  "vector",
	KindStruct:  "struct",
	KindArray:   "array",
	KindVariant: "variant",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// IsPrimitive returns true for bool, integer and float kinds.
func (k Kind) IsPrimitive() bool {
	return k >= KindBool && k <= KindFloat64
}

func (k Kind) isInteger() bool {
	return k >= KindInt8 && k <= KindUint64
}

// Width returns the native width of a primitive kind, or 0.
func (k Kind) Width() int {
	switch k {
	case KindBool, KindInt8, KindUint8:
		return 1
	case KindInt16, KindUint16:
		return 2
	case KindInt32, KindUint32, KindFloat32:
		return 4
	case KindInt64, KindUint64, KindFloat64:
		return 8
	}
	return 0
}

// Type describes the type of a field or variant alternative.
type Type struct {
	kind    Kind
	elem    Kind
	name    string
	layout  *Layout
	variant *VariantType
}

// PrimitiveType returns the type of a bool, integer or float field.
func PrimitiveType(k Kind) Type {
	return Type{kind: k}
}

// EnumType returns the type of an enum stored as the given integer kind.
func EnumType(name string, storage Kind) Type {
	return Type{kind: KindEnum, elem: storage, name: name}
}

// StringType returns the type of a UTF-8 string field.
func StringType() Type {
	return Type{kind: KindString}
}

// BytesType returns the type of a raw byte sequence field.
func BytesType() Type {
	return Type{kind: KindBytes}
}

// VectorType returns the type of an array of primitives.
func VectorType(elem Kind) Type {
	return Type{kind: KindVector, elem: elem}
}

// StructType returns the type of a nested record.
func StructType(l *Layout) Type {
	return Type{kind: KindStruct, layout: l}
}

// ArrayType returns the type of an array of records.
func ArrayType(elem *Layout) Type {
	return Type{kind: KindArray, layout: elem}
}

// VariantFieldType returns the type of a variant field.
func VariantFieldType(vt *VariantType) Type {
	return Type{kind: KindVariant, variant: vt}
}

func (t Type) Kind() Kind {
	return t.kind
}

// Elem returns the element kind of a vector or the storage kind of an enum.
func (t Type) Elem() Kind {
	return t.elem
}

// Layout returns the layout of a nested record or of an array's elements.
func (t Type) Layout() *Layout {
	return t.layout
}

func (t Type) VariantType() *VariantType {
	return t.variant
}

// IsFixed returns true if the type occupies a width known before any content is written.
func (t Type) IsFixed() bool {
	switch t.kind {
	case KindEnum:
		return true
	case KindStruct:
		return !t.layout.variable
	}
	return t.kind.IsPrimitive()
}

// valueKind returns the primitive kind holding a fixed value, or KindInvalid.
func (t Type) valueKind() Kind {
	if t.kind == KindEnum {
		return t.elem
	}
	if t.kind.IsPrimitive() {
		return t.kind
	}
	return KindInvalid
}

// fixedWidth returns the aligned width a fixed type occupies in a record.
func (t Type) fixedWidth() int {
	if t.kind == KindStruct {
		return t.layout.fixedSize
	}
	return WordSize
}

func (t Type) String() string {
	switch t.kind {
	case KindEnum:
		return "enum " + t.name
	case KindVector:
		return "vector<" + t.elem.String() + ">"
	case KindStruct:
		if t.layout == nil {
			return "struct"
		}
		return "struct " + t.layout.name
	case KindArray:
		if t.layout == nil {
			return "array"
		}
		return "array<" + t.layout.name + ">"
	case KindVariant:
		if t.variant == nil {
			return "variant"
		}
		return "variant " + t.variant.name
	}
	return t.kind.String()
}

func (t Type) validate() string {
	switch t.kind {
	case KindInvalid:
		return "invalid kind"
	case KindEnum:
		if !t.elem.isInteger() {
			return fmt.Sprintf("enum %s must be stored as an integer, not %s", t.name, t.elem)
		}
	case KindVector:
		if !t.elem.IsPrimitive() {
			return fmt.Sprintf("vector element must be primitive, not %s", t.elem)
		}
	case KindStruct, KindArray:
		if t.layout == nil {
			return fmt.Sprintf("%s has no layout", t.kind)
		}
	case KindVariant:
		if t.variant == nil {
			return "variant has no alternatives"
		}
	case KindString, KindBytes:
	default:
		if !t.kind.IsPrimitive() {
			return fmt.Sprintf("unknown kind %s", t.kind)
		}
	}
	return ""
}

// FieldDef is a named, typed record field.
type FieldDef struct {
	Name string
	Type Type
}

// Layout is the ordered field list of a record type together with the
// offsets that do not depend on content.
type Layout struct {
	name   string
	fields []FieldDef
	index  map[string]int

	// offsets[i] is the constant offset of field i for i <= firstVar.
	offsets   []int
	firstVar  int
	fixedSize int
	variable  bool
}

// NewLayout builds a layout from fields in schema order.
func NewLayout(name string, fields ...FieldDef) (*Layout, error) {
	if name == "" {
		return nil, NewLayoutError(name, "name is empty")
	}
	if len(fields) == 0 {
		return nil, NewLayoutError(name, "no fields declared")
	}

	l := &Layout{
		name:     name,
		fields:   append([]FieldDef(nil), fields...),
		index:    make(map[string]int, len(fields)),
		firstVar: len(fields),
	}

	for i, f := range l.fields {
		if f.Name == "" {
			return nil, NewLayoutErrorf(name, "field %d has no name", i)
		}
		if _, ok := l.index[f.Name]; ok {
			return nil, NewLayoutErrorf(name, "duplicate field %q", f.Name)
		}
		if msg := f.Type.validate(); msg != "" {
			return nil, NewLayoutErrorf(name, "field %q: %s", f.Name, msg)
		}
		l.index[f.Name] = i
		if !f.Type.IsFixed() && l.firstVar == len(fields) {
			l.firstVar = i
		}
	}

	l.variable = l.firstVar < len(fields)

	l.offsets = make([]int, 0, l.firstVar+1)
	offset := 0
	if l.variable {
		offset = WordSize
	}
	l.offsets = append(l.offsets, offset)
	for i := 0; i < l.firstVar; i++ {
		offset += l.fields[i].Type.fixedWidth()
		l.offsets = append(l.offsets, offset)
	}
	if !l.variable {
		l.fixedSize = offset
	}

	Logger().Debug("layout created",
		zap.String("layout", name),
		zap.Int("fields", len(fields)),
		zap.Bool("variable", l.variable),
		zap.Int("fixed_size", l.fixedSize),
	)

	return l, nil
}

// MustLayout is like NewLayout but panics on error.
func MustLayout(name string, fields ...FieldDef) *Layout {
	l, err := NewLayout(name, fields...)
	if err != nil {
		panic(err)
	}
	return l
}

func (l *Layout) Name() string {
	return l.name
}

func (l *Layout) NumFields() int {
	return len(l.fields)
}

func (l *Layout) Field(i int) FieldDef {
	return l.fields[i]
}

// FieldIndex returns the position of the named field.
func (l *Layout) FieldIndex(name string) (int, bool) {
	i, ok := l.index[name]
	return i, ok
}

// IsVariable returns true if records of this layout carry a self-size header.
func (l *Layout) IsVariable() bool {
	return l.variable
}

// FixedSize returns the constant size of a fixed layout, or 0 for a variable one.
func (l *Layout) FixedSize() int {
	return l.fixedSize
}

// HeaderSize returns the offset of the first field.
func (l *Layout) HeaderSize() int {
	return l.offsets[0]
}

// FirstVariableField returns the index of the first variable-size field,
// or NumFields for a fixed layout. Offsets of fields up to and including
// this index are constant.
func (l *Layout) FirstVariableField() int {
	return l.firstVar
}

// MinSize returns the smallest region a record of this layout can occupy.
func (l *Layout) MinSize() int {
	return l.offsets[l.firstVar]
}

func (l *Layout) String() string {
	return l.name
}
