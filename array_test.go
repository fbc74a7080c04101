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

func newPoint(t *testing.T, x, y int64) *fastbin.Record {
	p := fastbin.NewRecord(test_utils.PointLayout, 0)
	t.Cleanup(p.Release)
	fastbin.SetField(p, 0, x)
	fastbin.SetField(p, 1, y)
	return p
}

func TestArrayEmpty(t *testing.T) {
	a := fastbin.NewArray(test_utils.PointLayout, 0)
	defer a.Release()

	require.Equal(t, uint64(0), a.Count())
	require.Equal(t, fastbin.ArrayHeaderSize, a.BinarySize())
	require.Equal(t, fastbin.CalcArraySize(), a.BinarySize())

	raw := a.Bytes()
	require.Len(t, raw, 16)
	require.Equal(t, uint64(16), fastbin.LoadWord(raw, 0))
	require.Equal(t, uint64(0), fastbin.LoadWord(raw, 8))

	require.Nil(t, a.Iterator().Next())
	for range a.All() {
		require.Fail(t, "empty array yielded an element")
	}

	require.NoError(t, fastbin.VerifyArray(test_utils.PointLayout, raw))
}

func TestArrayGetOutOfBounds(t *testing.T) {
	a := fastbin.NewArray(test_utils.PointLayout, 64)
	defer a.Release()

	a.Append(newPoint(t, 1, 2))

	for _, index := range []uint64{1, 2, 1 << 40} {
		rec, err := a.Get(index)
		require.Nil(t, rec)

		var indexErr *fastbin.IndexOutOfBoundsError
		require.ErrorAs(t, err, &indexErr)
		require.False(t, indexErr.IsFatal())
	}
}

func TestArrayFixedElements(t *testing.T) {
	const n = 10

	a := fastbin.NewArray(test_utils.PointLayout, fastbin.ArrayHeaderSize+n*16)
	defer a.Release()

	points := make([]*fastbin.Record, n)
	for i := range points {
		points[i] = newPoint(t, int64(i), int64(-i))
		a.Append(points[i])
		require.Equal(t, uint64(i+1), a.Count())
	}

	require.Equal(t, fastbin.ArrayHeaderSize+n*16, a.BinarySize())
	require.Equal(t, fastbin.CalcArraySize(points...), a.BinarySize())

	for i := uint64(0); i < n; i++ {
		rec, err := a.Get(i)
		require.NoError(t, err)
		require.False(t, rec.Owned())
		require.Equal(t, int64(i), fastbin.Field[int64](rec, 0))
		require.Equal(t, -int64(i), fastbin.Field[int64](rec, 1))
	}

	// Elements are views: writes show through in the array bytes.
	rec, err := a.Get(3)
	require.NoError(t, err)
	fastbin.SetField(rec, 0, int64(300))
	rec, err = a.Get(3)
	require.NoError(t, err)
	require.Equal(t, int64(300), fastbin.Field[int64](rec, 0))

	require.NoError(t, fastbin.VerifyArray(test_utils.PointLayout, a.Bytes()))
}

func TestArrayVariableElements(t *testing.T) {
	g := test_utils.NewGenerator(newRand(t))

	for i := 0; i < 20; i++ {
		expected := g.Array(test_utils.TaggedLayout)

		a := expected.Build()
		require.Equal(t, uint64(len(expected.Elements)), a.Count())
		require.Equal(t, expected.Size(), a.BinarySize())
		require.NoError(t, expected.Check(a))
		require.NoError(t, fastbin.VerifyArray(test_utils.TaggedLayout, a.Bytes()))

		for j, e := range expected.Elements {
			rec, err := a.Get(uint64(j))
			require.NoError(t, err)
			require.NoError(t, e.Check(rec))
		}

		a.Release()
	}
}

func TestArrayIteration(t *testing.T) {
	g := test_utils.NewGenerator(newRand(t))

	expected := g.Array(test_utils.DocumentLayout)
	for len(expected.Elements) < 3 {
		expected.Elements = append(expected.Elements, g.Record(test_utils.DocumentLayout))
	}

	a := expected.Build()
	defer a.Release()

	t.Run("iterator", func(t *testing.T) {
		it := a.Iterator()
		for i, e := range expected.Elements {
			require.Equal(t, uint64(i), it.Index())
			rec := it.Next()
			require.NotNil(t, rec)
			require.NoError(t, e.Check(rec))
		}
		require.Nil(t, it.Next())
		require.Nil(t, it.Next())
	})

	t.Run("all", func(t *testing.T) {
		var n uint64
		for i, rec := range a.All() {
			require.Equal(t, n, i)
			require.NoError(t, expected.Elements[i].Check(rec))
			n++
		}
		require.Equal(t, a.Count(), n)
	})

	t.Run("all stops early", func(t *testing.T) {
		var n int
		for range a.All() {
			n++
			if n == 2 {
				break
			}
		}
		require.Equal(t, 2, n)
	})

	t.Run("get matches iteration", func(t *testing.T) {
		for i, rec := range a.All() {
			got, err := a.Get(i)
			require.NoError(t, err)
			require.Equal(t, rec.Bytes(), got.Bytes())
		}
	})
}

var batchLayout = fastbin.MustLayout("Batch",
	fastbin.FieldDef{Name: "symbol", Type: fastbin.StringType()},
	fastbin.FieldDef{Name: "tags", Type: fastbin.ArrayType(test_utils.TaggedLayout)},
	fastbin.FieldDef{Name: "count", Type: fastbin.PrimitiveType(fastbin.KindUint32)},
)

func newTagged(t *testing.T, id uint64, tag string) *fastbin.Record {
	rec := fastbin.NewRecord(test_utils.TaggedLayout, 128)
	t.Cleanup(rec.Release)
	fastbin.SetField(rec, 0, id)
	rec.SetString(1, tag)
	rec.SetBytes(2, []byte(tag))
	rec.Finalize()
	return rec
}

func TestArrayField(t *testing.T) {
	tags := []*fastbin.Record{
		newTagged(t, 1, "one"),
		newTagged(t, 2, "two"),
		newTagged(t, 3, "a somewhat longer tag"),
	}

	check := func(t *testing.T, rec *fastbin.Record) {
		require.Equal(t, "BTCUSDT", rec.GetString(0))
		require.Equal(t, uint32(len(tags)), fastbin.Field[uint32](rec, 2))

		a := rec.ArrayField(1)
		require.Equal(t, uint64(len(tags)), a.Count())
		require.Equal(t, fastbin.CalcArraySize(tags...), a.BinarySize())
		for i, rec := range a.All() {
			require.Equal(t, tags[i].Bytes(), rec.Bytes())
		}
		require.NoError(t, fastbin.VerifyRecord(batchLayout, rec.Bytes()))
	}

	t.Run("in place", func(t *testing.T) {
		rec := fastbin.NewRecord(batchLayout, 512)
		defer rec.Release()

		rec.SetString(0, "BTCUSDT")
		a := rec.CreateArrayField(1)
		for _, tag := range tags {
			a.Append(tag)
		}
		fastbin.SetField(rec, 2, uint32(len(tags)))
		rec.Finalize()

		require.Equal(t, 8+16+fastbin.CalcArraySize(tags...)+8, rec.BinarySize())
		check(t, rec)
	})

	t.Run("copied", func(t *testing.T) {
		a := fastbin.NewArray(test_utils.TaggedLayout, 512)
		defer a.Release()
		for _, tag := range tags {
			a.Append(tag)
		}

		rec := fastbin.NewRecord(batchLayout, 512)
		defer rec.Release()

		rec.SetString(0, "BTCUSDT")
		rec.SetArrayField(1, a)
		fastbin.SetField(rec, 2, uint32(len(tags)))
		rec.Finalize()

		check(t, rec)
	})
}

func TestArrayAssertions(t *testing.T) {
	requireAssertions(t)

	t.Run("wrong element layout", func(t *testing.T) {
		a := fastbin.NewArray(test_utils.PointLayout, 64)
		defer a.Release()

		requireFatal[*fastbin.TypeMismatchError](t, func() {
			a.Append(newTagged(t, 1, "x"))
		})
		require.Equal(t, uint64(0), a.Count())
	})

	t.Run("full", func(t *testing.T) {
		a := fastbin.NewArray(test_utils.PointLayout, fastbin.ArrayHeaderSize+16)
		defer a.Release()

		a.Append(newPoint(t, 1, 1))
		requireFatal[*fastbin.CapacityError](t, func() {
			a.Append(newPoint(t, 2, 2))
		})
		require.Equal(t, uint64(1), a.Count())
	})

	t.Run("unfinalized element", func(t *testing.T) {
		a := fastbin.NewArray(test_utils.TaggedLayout, 256)
		defer a.Release()

		rec := fastbin.NewRecord(test_utils.TaggedLayout, 64)
		defer rec.Release()

		requireFatal[*fastbin.ContractViolationError](t, func() {
			a.Append(rec)
		})
	})

	t.Run("wrong array field layout", func(t *testing.T) {
		a := fastbin.NewArray(test_utils.PointLayout, 64)
		defer a.Release()

		rec := fastbin.NewRecord(batchLayout, 256)
		defer rec.Release()
		rec.SetString(0, "")

		requireFatal[*fastbin.TypeMismatchError](t, func() {
			rec.SetArrayField(1, a)
		})
	})
}
