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
	"fmt"

	"github.com/onflow/fastbin"
)

func setField(rec *fastbin.Record, i int, v any) {
	switch v := v.(type) {
	case bool:
		fastbin.SetField(rec, i, v)
	case int8:
		fastbin.SetField(rec, i, v)
	case int16:
		fastbin.SetField(rec, i, v)
	case int32:
		fastbin.SetField(rec, i, v)
	case int64:
		fastbin.SetField(rec, i, v)
	case uint8:
		fastbin.SetField(rec, i, v)
	case uint16:
		fastbin.SetField(rec, i, v)
	case uint32:
		fastbin.SetField(rec, i, v)
	case uint64:
		fastbin.SetField(rec, i, v)
	case float32:
		fastbin.SetField(rec, i, v)
	case float64:
		fastbin.SetField(rec, i, v)
	default:
		panic(fmt.Sprintf("unsupported fixed value %T", v))
	}
}

func getField(rec *fastbin.Record, i int, like any) any {
	switch like.(type) {
	case bool:
		return fastbin.Field[bool](rec, i)
	case int8:
		return fastbin.Field[int8](rec, i)
	case int16:
		return fastbin.Field[int16](rec, i)
	case int32:
		return fastbin.Field[int32](rec, i)
	case int64:
		return fastbin.Field[int64](rec, i)
	case uint8:
		return fastbin.Field[uint8](rec, i)
	case uint16:
		return fastbin.Field[uint16](rec, i)
	case uint32:
		return fastbin.Field[uint32](rec, i)
	case uint64:
		return fastbin.Field[uint64](rec, i)
	case float32:
		return fastbin.Field[float32](rec, i)
	case float64:
		return fastbin.Field[float64](rec, i)
	}
	panic(fmt.Sprintf("unsupported fixed value %T", like))
}

func setVector(rec *fastbin.Record, i int, v any) {
	switch v := v.(type) {
	case []bool:
		fastbin.SetVector(rec, i, v)
	case []int8:
		fastbin.SetVector(rec, i, v)
	case []int16:
		fastbin.SetVector(rec, i, v)
	case []int32:
		fastbin.SetVector(rec, i, v)
	case []int64:
		fastbin.SetVector(rec, i, v)
	case []uint8:
		fastbin.SetVector(rec, i, v)
	case []uint16:
		fastbin.SetVector(rec, i, v)
	case []uint32:
		fastbin.SetVector(rec, i, v)
	case []uint64:
		fastbin.SetVector(rec, i, v)
	case []float32:
		fastbin.SetVector(rec, i, v)
	case []float64:
		fastbin.SetVector(rec, i, v)
	default:
		panic(fmt.Sprintf("unsupported vector %T", v))
	}
}

func checkVector(rec *fastbin.Record, i int, v any) error {
	switch want := v.(type) {
	case []bool:
		return compareSlices(fastbin.Vector[bool](rec, i), want)
	case []int8:
		return compareSlices(fastbin.Vector[int8](rec, i), want)
	case []int16:
		return compareSlices(fastbin.Vector[int16](rec, i), want)
	case []int32:
		return compareSlices(fastbin.Vector[int32](rec, i), want)
	case []int64:
		return compareSlices(fastbin.Vector[int64](rec, i), want)
	case []uint8:
		return compareSlices(fastbin.Vector[uint8](rec, i), want)
	case []uint16:
		return compareSlices(fastbin.Vector[uint16](rec, i), want)
	case []uint32:
		return compareSlices(fastbin.Vector[uint32](rec, i), want)
	case []uint64:
		return compareSlices(fastbin.Vector[uint64](rec, i), want)
	case []float32:
		return compareSlices(fastbin.Vector[float32](rec, i), want)
	case []float64:
		return compareSlices(fastbin.Vector[float64](rec, i), want)
	}
	panic(fmt.Sprintf("unsupported vector %T", v))
}

func setAlternative(v *fastbin.Variant, ord int, x any) {
	switch x := x.(type) {
	case bool:
		fastbin.SetAlternative(v, ord, x)
	case int8:
		fastbin.SetAlternative(v, ord, x)
	case int16:
		fastbin.SetAlternative(v, ord, x)
	case int32:
		fastbin.SetAlternative(v, ord, x)
	case int64:
		fastbin.SetAlternative(v, ord, x)
	case uint8:
		fastbin.SetAlternative(v, ord, x)
	case uint16:
		fastbin.SetAlternative(v, ord, x)
	case uint32:
		fastbin.SetAlternative(v, ord, x)
	case uint64:
		fastbin.SetAlternative(v, ord, x)
	case float32:
		fastbin.SetAlternative(v, ord, x)
	case float64:
		fastbin.SetAlternative(v, ord, x)
	default:
		panic(fmt.Sprintf("unsupported fixed value %T", x))
	}
}

func getAlternative(v *fastbin.Variant, ord int, like any) any {
	switch like.(type) {
	case bool:
		return fastbin.Alternative[bool](v, ord)
	case int8:
		return fastbin.Alternative[int8](v, ord)
	case int16:
		return fastbin.Alternative[int16](v, ord)
	case int32:
		return fastbin.Alternative[int32](v, ord)
	case int64:
		return fastbin.Alternative[int64](v, ord)
	case uint8:
		return fastbin.Alternative[uint8](v, ord)
	case uint16:
		return fastbin.Alternative[uint16](v, ord)
	case uint32:
		return fastbin.Alternative[uint32](v, ord)
	case uint64:
		return fastbin.Alternative[uint64](v, ord)
	case float32:
		return fastbin.Alternative[float32](v, ord)
	case float64:
		return fastbin.Alternative[float64](v, ord)
	}
	panic(fmt.Sprintf("unsupported fixed value %T", like))
}

func setVectorAlternative(v *fastbin.Variant, ord int, x any) {
	switch x := x.(type) {
	case []bool:
		fastbin.SetVectorAlternative(v, ord, x)
	case []int8:
		fastbin.SetVectorAlternative(v, ord, x)
	case []int16:
		fastbin.SetVectorAlternative(v, ord, x)
	case []int32:
		fastbin.SetVectorAlternative(v, ord, x)
	case []int64:
		fastbin.SetVectorAlternative(v, ord, x)
	case []uint8:
		fastbin.SetVectorAlternative(v, ord, x)
	case []uint16:
		fastbin.SetVectorAlternative(v, ord, x)
	case []uint32:
		fastbin.SetVectorAlternative(v, ord, x)
	case []uint64:
		fastbin.SetVectorAlternative(v, ord, x)
	case []float32:
		fastbin.SetVectorAlternative(v, ord, x)
	case []float64:
		fastbin.SetVectorAlternative(v, ord, x)
	default:
		panic(fmt.Sprintf("unsupported vector %T", x))
	}
}

func checkVectorAlternative(v *fastbin.Variant, ord int, x any) error {
	switch want := x.(type) {
	case []bool:
		return compareSlices(fastbin.VectorAlternative[bool](v, ord), want)
	case []int8:
		return compareSlices(fastbin.VectorAlternative[int8](v, ord), want)
	case []int16:
		return compareSlices(fastbin.VectorAlternative[int16](v, ord), want)
	case []int32:
		return compareSlices(fastbin.VectorAlternative[int32](v, ord), want)
	case []int64:
		return compareSlices(fastbin.VectorAlternative[int64](v, ord), want)
	case []uint8:
		return compareSlices(fastbin.VectorAlternative[uint8](v, ord), want)
	case []uint16:
		return compareSlices(fastbin.VectorAlternative[uint16](v, ord), want)
	case []uint32:
		return compareSlices(fastbin.VectorAlternative[uint32](v, ord), want)
	case []uint64:
		return compareSlices(fastbin.VectorAlternative[uint64](v, ord), want)
	case []float32:
		return compareSlices(fastbin.VectorAlternative[float32](v, ord), want)
	case []float64:
		return compareSlices(fastbin.VectorAlternative[float64](v, ord), want)
	}
	panic(fmt.Sprintf("unsupported vector %T", x))
}
