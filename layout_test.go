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

package fastbin_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/onflow/fastbin"
	"github.com/onflow/fastbin/test_utils"
)

func TestNewLayout(t *testing.T) {
	t.Run("fixed", func(t *testing.T) {
		l := test_utils.PointLayout
		require.False(t, l.IsVariable())
		require.Equal(t, 16, l.FixedSize())
		require.Equal(t, 0, l.HeaderSize())
		require.Equal(t, 2, l.FirstVariableField())
		require.Equal(t, 16, l.MinSize())
	})

	t.Run("every fixed field takes a word", func(t *testing.T) {
		l := test_utils.ScalarsLayout
		require.False(t, l.IsVariable())
		require.Equal(t, l.NumFields()*fastbin.WordSize, l.FixedSize())
	})

	t.Run("variable", func(t *testing.T) {
		l := test_utils.DocumentLayout
		require.True(t, l.IsVariable())
		require.Equal(t, 0, l.FixedSize())
		require.Equal(t, 8, l.HeaderSize())

		title, ok := l.FieldIndex("title")
		require.True(t, ok)
		require.Equal(t, title, l.FirstVariableField())

		// header + id + origin (16) + scalars (12 words)
		require.Equal(t, 8+8+16+96, l.MinSize())
	})

	t.Run("field lookup", func(t *testing.T) {
		i, ok := test_utils.ScenarioLayout.FieldIndex("v")
		require.True(t, ok)
		require.Equal(t, 2, i)
		require.Equal(t, fastbin.KindVector, test_utils.ScenarioLayout.Field(i).Type.Kind())
		require.Equal(t, "vector<int32>", test_utils.ScenarioLayout.Field(i).Type.String())

		_, ok = test_utils.ScenarioLayout.FieldIndex("missing")
		require.False(t, ok)
	})
}

func TestNewLayoutErrors(t *testing.T) {
	i32 := fastbin.PrimitiveType(fastbin.KindInt32)

	testCases := []struct {
		name   string
		layout string
		fields []fastbin.FieldDef
	}{
		{"no name", "", []fastbin.FieldDef{{Name: "a", Type: i32}}},
		{"no fields", "Empty", nil},
		{"unnamed field", "L", []fastbin.FieldDef{{Type: i32}}},
		{"duplicate field", "L", []fastbin.FieldDef{{Name: "a", Type: i32}, {Name: "a", Type: i32}}},
		{"invalid kind", "L", []fastbin.FieldDef{{Name: "a"}}},
		{"float enum", "L", []fastbin.FieldDef{{Name: "a", Type: fastbin.EnumType("E", fastbin.KindFloat32)}}},
		{"string vector", "L", []fastbin.FieldDef{{Name: "a", Type: fastbin.VectorType(fastbin.KindString)}}},
		{"nil struct", "L", []fastbin.FieldDef{{Name: "a", Type: fastbin.StructType(nil)}}},
		{"nil array", "L", []fastbin.FieldDef{{Name: "a", Type: fastbin.ArrayType(nil)}}},
		{"nil variant", "L", []fastbin.FieldDef{{Name: "a", Type: fastbin.VariantFieldType(nil)}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l, err := fastbin.NewLayout(tc.layout, tc.fields...)
			require.Nil(t, l)

			var layoutErr *fastbin.LayoutError
			require.ErrorAs(t, err, &layoutErr)
			require.False(t, layoutErr.IsFatal())
		})
	}

	require.Panics(t, func() {
		fastbin.MustLayout("Empty")
	})
}

func TestNewVariantTypeErrors(t *testing.T) {
	_, err := fastbin.NewVariantType("V")
	require.Error(t, err)

	alts := make([]fastbin.Type, fastbin.MaxAlternatives+1)
	for i := range alts {
		alts[i] = fastbin.PrimitiveType(fastbin.KindUint8)
	}
	_, err = fastbin.NewVariantType("V", alts...)
	require.Error(t, err)

	vt, err := fastbin.NewVariantType("V", alts[:fastbin.MaxAlternatives]...)
	require.NoError(t, err)
	require.Equal(t, fastbin.MaxAlternatives, vt.NumAlternatives())

	_, err = fastbin.NewVariantType("Nested", fastbin.VariantFieldType(vt))
	var layoutErr *fastbin.LayoutError
	require.ErrorAs(t, err, &layoutErr)
}
