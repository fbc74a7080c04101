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

package test_utils

import (
	"github.com/onflow/fastbin"
)

func field(name string, t fastbin.Type) fastbin.FieldDef {
	return fastbin.FieldDef{Name: name, Type: t}
}

var (
	// ScenarioLayout is (a int32, s string, v vector<int32>).
	ScenarioLayout = fastbin.MustLayout("Scenario",
		field("a", fastbin.PrimitiveType(fastbin.KindInt32)),
		field("s", fastbin.StringType()),
		field("v", fastbin.VectorType(fastbin.KindInt32)),
	)

	// PointLayout is a fixed 16-byte record.
	PointLayout = fastbin.MustLayout("Point",
		field("x", fastbin.PrimitiveType(fastbin.KindInt64)),
		field("y", fastbin.PrimitiveType(fastbin.KindInt64)),
	)

	// ScalarsLayout holds one fixed field of every primitive kind and an enum.
	ScalarsLayout = fastbin.MustLayout("Scalars",
		field("b", fastbin.PrimitiveType(fastbin.KindBool)),
		field("i8", fastbin.PrimitiveType(fastbin.KindInt8)),
		field("i16", fastbin.PrimitiveType(fastbin.KindInt16)),
		field("i32", fastbin.PrimitiveType(fastbin.KindInt32)),
		field("i64", fastbin.PrimitiveType(fastbin.KindInt64)),
		field("u8", fastbin.PrimitiveType(fastbin.KindUint8)),
		field("u16", fastbin.PrimitiveType(fastbin.KindUint16)),
		field("u32", fastbin.PrimitiveType(fastbin.KindUint32)),
		field("u64", fastbin.PrimitiveType(fastbin.KindUint64)),
		field("f32", fastbin.PrimitiveType(fastbin.KindFloat32)),
		field("f64", fastbin.PrimitiveType(fastbin.KindFloat64)),
		field("color", fastbin.EnumType("Color", fastbin.KindUint8)),
	)

	// TaggedLayout is a small variable-size record.
	TaggedLayout = fastbin.MustLayout("Tagged",
		field("id", fastbin.PrimitiveType(fastbin.KindUint64)),
		field("tag", fastbin.StringType()),
		field("blob", fastbin.BytesType()),
	)

	// NumberOrText is variant {int32, string}.
	NumberOrText = fastbin.MustVariantType("NumberOrText",
		fastbin.PrimitiveType(fastbin.KindInt32),
		fastbin.StringType(),
	)

	// ShapeVariant covers every alternative category.
	ShapeVariant = fastbin.MustVariantType("Shape",
		fastbin.PrimitiveType(fastbin.KindFloat64),
		fastbin.StringType(),
		fastbin.VectorType(fastbin.KindUint16),
		fastbin.StructType(PointLayout),
		fastbin.ArrayType(PointLayout),
		fastbin.StructType(TaggedLayout),
		fastbin.BytesType(),
		fastbin.EnumType("Color", fastbin.KindUint8),
	)

	// DocumentLayout mixes every field category, including a fixed field
	// placed after variable-size fields.
	DocumentLayout = fastbin.MustLayout("Document",
		field("id", fastbin.PrimitiveType(fastbin.KindUint64)),
		field("origin", fastbin.StructType(PointLayout)),
		field("scalars", fastbin.StructType(ScalarsLayout)),
		field("title", fastbin.StringType()),
		field("meta", fastbin.StructType(TaggedLayout)),
		field("points", fastbin.ArrayType(PointLayout)),
		field("tags", fastbin.ArrayType(TaggedLayout)),
		field("shape", fastbin.VariantFieldType(ShapeVariant)),
		field("weights", fastbin.VectorType(fastbin.KindFloat32)),
		field("flag", fastbin.PrimitiveType(fastbin.KindBool)),
		field("payload", fastbin.BytesType()),
	)
)
