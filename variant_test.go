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

const (
	shapeFloat = iota
	shapeString
	shapeVector
	shapePoint
	shapePoints
	shapeTagged
	shapeBytes
	shapeColor
)

func TestVariantScenario(t *testing.T) {
	v := fastbin.NewVariant(test_utils.NumberOrText, 32)
	defer v.Release()

	v.SetString(1, "test1")

	require.Equal(t, 13, v.BinarySize())
	require.Equal(t, 5, v.PayloadSize())
	require.Equal(t, 1, v.Index())
	require.Equal(t, 2, v.TypesCount())
	require.False(t, v.Empty())
	require.True(t, v.HoldsAlternative(1))
	require.False(t, v.HoldsAlternative(0))
	require.Equal(t, "test1", v.GetString(1))

	raw := v.Bytes()
	require.Len(t, raw, 13)
	require.Equal(t, uint64(13)<<8|1, fastbin.LoadWord(raw, 0))
	require.Equal(t, []byte("test1"), raw[8:])
}

func TestVariantEmpty(t *testing.T) {
	v := fastbin.NewVariant(test_utils.NumberOrText, 32)
	defer v.Release()

	require.True(t, v.Empty())
	require.Equal(t, 8, v.BinarySize())
	require.Equal(t, 0, v.Index())
	require.False(t, v.HoldsAlternative(0))
	require.False(t, v.HoldsAlternative(1))
	require.NoError(t, fastbin.VerifyVariant(test_utils.NumberOrText, v.Bytes()))

	// An empty payload leaves the variant empty whichever alternative was set.
	v.SetString(1, "")
	require.True(t, v.Empty())
	require.Equal(t, 1, v.Index())
	require.False(t, v.HoldsAlternative(1))
}

func TestVariantExclusive(t *testing.T) {
	v := fastbin.NewVariant(test_utils.NumberOrText, 32)
	defer v.Release()

	v.SetString(1, "a longer text value")
	require.True(t, v.HoldsAlternative(1))

	fastbin.SetAlternative(v, 0, int32(-42))
	require.Equal(t, 12, v.BinarySize())
	require.True(t, v.HoldsAlternative(0))
	require.False(t, v.HoldsAlternative(1))
	require.Equal(t, int32(-42), fastbin.Alternative[int32](v, 0))

	v.SetString(1, "x")
	require.Equal(t, 9, v.BinarySize())
	require.False(t, v.HoldsAlternative(0))
	require.Equal(t, "x", v.GetString(1))
}

func TestVariantAlternatives(t *testing.T) {
	v := fastbin.NewVariant(test_utils.ShapeVariant, 256)
	defer v.Release()

	t.Run("float", func(t *testing.T) {
		fastbin.SetAlternative(v, shapeFloat, 3.25)
		require.Equal(t, fastbin.CalcVariantSize(8), v.BinarySize())
		require.Equal(t, 3.25, fastbin.Alternative[float64](v, shapeFloat))
	})

	t.Run("vector", func(t *testing.T) {
		fastbin.SetVectorAlternative(v, shapeVector, []uint16{1, 2, 3})
		require.Equal(t, fastbin.CalcVariantSize(6), v.BinarySize())
		require.Equal(t, []uint16{1, 2, 3}, fastbin.VectorAlternative[uint16](v, shapeVector))
	})

	t.Run("record", func(t *testing.T) {
		p := newPoint(t, 10, 20)
		v.SetRecord(shapePoint, p)
		require.Equal(t, fastbin.CalcVariantRecordSize(p), v.BinarySize())
		require.Equal(t, 24, v.BinarySize())

		got := v.Record(shapePoint)
		require.False(t, got.Owned())
		require.Equal(t, int64(10), fastbin.Field[int64](got, 0))
		require.Equal(t, int64(20), fastbin.Field[int64](got, 1))
	})

	t.Run("variable record", func(t *testing.T) {
		tagged := newTagged(t, 7, "seven")
		v.SetRecord(shapeTagged, tagged)
		require.Equal(t, fastbin.CalcVariantRecordSize(tagged), v.BinarySize())
		require.Equal(t, "seven", v.Record(shapeTagged).GetString(1))
	})

	t.Run("array", func(t *testing.T) {
		a := fastbin.NewArray(test_utils.PointLayout, 64)
		defer a.Release()
		a.Append(newPoint(t, 1, 2))
		a.Append(newPoint(t, 3, 4))

		v.SetArray(shapePoints, a)
		require.Equal(t, fastbin.CalcVariantSize(a.BinarySize()), v.BinarySize())

		got := v.Array(shapePoints)
		require.Equal(t, uint64(2), got.Count())
		rec, err := got.Get(1)
		require.NoError(t, err)
		require.Equal(t, int64(3), fastbin.Field[int64](rec, 0))
	})

	t.Run("bytes", func(t *testing.T) {
		v.SetBytes(shapeBytes, []byte{0xde, 0xad})
		require.Equal(t, []byte{0xde, 0xad}, v.GetBytes(shapeBytes))
	})

	t.Run("enum", func(t *testing.T) {
		fastbin.SetAlternative(v, shapeColor, uint8(3))
		require.Equal(t, fastbin.CalcVariantSize(1), v.BinarySize())
		require.Equal(t, uint8(3), fastbin.Alternative[uint8](v, shapeColor))
	})

	require.NoError(t, fastbin.VerifyVariant(test_utils.ShapeVariant, v.Bytes()))
}

func TestVariantRoundTrip(t *testing.T) {
	g := test_utils.NewGenerator(newRand(t))

	for i := 0; i < 100; i++ {
		expected := g.Variant(test_utils.ShapeVariant)

		v := expected.Build()
		require.NoError(t, expected.Check(v))
		require.Equal(t, expected.Empty(), v.Empty())
		require.NoError(t, fastbin.VerifyVariant(test_utils.ShapeVariant, v.Bytes()))

		c := v.Copy()
		require.NoError(t, expected.Check(c))

		c.Release()
		v.Release()
	}
}

var quoteLayout = fastbin.MustLayout("Quote",
	fastbin.FieldDef{Name: "symbol", Type: fastbin.StringType()},
	fastbin.FieldDef{Name: "price", Type: fastbin.VariantFieldType(test_utils.NumberOrText)},
	fastbin.FieldDef{Name: "seq", Type: fastbin.PrimitiveType(fastbin.KindUint64)},
)

func TestVariantField(t *testing.T) {
	price := fastbin.NewVariant(test_utils.NumberOrText, 32)
	defer price.Release()
	price.SetString(1, "test1")

	rec := fastbin.NewRecord(quoteLayout, 128)
	defer rec.Release()

	rec.SetString(0, "BTC")
	rec.SetVariantField(1, price)
	fastbin.SetField(rec, 2, uint64(9))
	rec.Finalize()

	// The 13-byte variant is padded to 24 bytes inside its region.
	require.Equal(t, 24, rec.FieldSize(1))
	require.Equal(t, 8+16+24+8, rec.BinarySize())

	got := rec.VariantField(1)
	require.False(t, got.Owned())
	require.Equal(t, 1, got.Index())
	require.Equal(t, "test1", got.GetString(1))
	require.Equal(t, price.Bytes(), got.Bytes())
	require.Equal(t, uint64(9), fastbin.Field[uint64](rec, 2))

	require.NoError(t, fastbin.VerifyRecord(quoteLayout, rec.Bytes()))
}

func TestVariantAssertions(t *testing.T) {
	requireAssertions(t)

	t.Run("wrong alternative", func(t *testing.T) {
		v := fastbin.NewVariant(test_utils.NumberOrText, 32)
		defer v.Release()
		v.SetString(1, "text")

		requireFatal[*fastbin.TypeMismatchError](t, func() {
			fastbin.Alternative[int32](v, 0)
		})
	})

	t.Run("read empty", func(t *testing.T) {
		v := fastbin.NewVariant(test_utils.NumberOrText, 32)
		defer v.Release()

		requireFatal[*fastbin.TypeMismatchError](t, func() {
			v.GetString(1)
		})
	})

	t.Run("wrong value type", func(t *testing.T) {
		v := fastbin.NewVariant(test_utils.NumberOrText, 32)
		defer v.Release()

		requireFatal[*fastbin.TypeMismatchError](t, func() {
			fastbin.SetAlternative(v, 0, int64(1))
		})
		requireFatal[*fastbin.TypeMismatchError](t, func() {
			v.SetBytes(1, []byte("x"))
		})
		require.True(t, v.Empty())
	})

	t.Run("ordinal out of range", func(t *testing.T) {
		v := fastbin.NewVariant(test_utils.NumberOrText, 32)
		defer v.Release()

		requireFatal[*fastbin.TypeMismatchError](t, func() {
			v.SetString(2, "x")
		})
	})

	t.Run("wrong record layout", func(t *testing.T) {
		v := fastbin.NewVariant(test_utils.ShapeVariant, 128)
		defer v.Release()

		requireFatal[*fastbin.TypeMismatchError](t, func() {
			v.SetRecord(shapePoint, newTagged(t, 1, "x"))
		})
	})

	t.Run("too small", func(t *testing.T) {
		v := fastbin.NewVariant(test_utils.NumberOrText, 8)
		defer v.Release()

		requireFatal[*fastbin.CapacityError](t, func() {
			v.SetString(1, "x")
		})
	})

	t.Run("wrong variant field type", func(t *testing.T) {
		v := fastbin.NewVariant(test_utils.ShapeVariant, 32)
		defer v.Release()

		rec := fastbin.NewRecord(quoteLayout, 128)
		defer rec.Release()
		rec.SetString(0, "")

		requireFatal[*fastbin.TypeMismatchError](t, func() {
			rec.SetVariantField(1, v)
		})
	})
}
