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

package main

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/onflow/fastbin"
	"github.com/onflow/fastbin/models"
	"github.com/onflow/fastbin/storage"
	"github.com/onflow/fastbin/test_utils"
)

var (
	recordLayouts = []*fastbin.Layout{
		test_utils.ScenarioLayout,
		test_utils.ScalarsLayout,
		test_utils.TaggedLayout,
		test_utils.DocumentLayout,
		models.ParentLayout,
		models.StreamTradeLayout,
		models.StreamOrderbookLayout,
		models.VectorOfUInt32Layout,
		models.VectorOfFixedSizedStructsLayout,
		models.TradeBatchLayout,
		models.QuoteLayout,
	}

	elemLayouts = []*fastbin.Layout{
		test_utils.PointLayout,
		test_utils.TaggedLayout,
		models.ChildFixedLayout,
		models.StreamTradeLayout,
	}

	variantTypes = []*fastbin.VariantType{
		test_utils.NumberOrText,
		test_utils.ShapeVariant,
		models.QuotePrice,
	}
)

type object interface {
	fastbin.Object
	Release()
}

type runner struct {
	cfg    *Config
	r      *rand.Rand
	gen    *test_utils.Generator
	store  *storage.Storage
	status *status
	logger *zap.Logger
}

// run calls step until cfg.Count steps have passed, ctx is done or a step
// fails. A zero count runs until ctx is done.
func (r *runner) run(ctx context.Context, step func() error) error {
	for i := uint64(0); r.cfg.Count == 0 || i < r.cfg.Count; i++ {
		if ctx.Err() != nil {
			r.logger.Info("stress run interrupted", zap.Uint64("steps", i))
			return nil
		}
		if err := step(); err != nil {
			return err
		}
	}
	r.logger.Info("stress run completed", zap.Uint64("steps", r.cfg.Count))
	return nil
}

func (r *runner) recordStep() error {
	l := recordLayouts[r.r.Intn(len(recordLayouts))]
	expected := r.gen.Record(l)

	rec := expected.Build()
	defer rec.Release()
	r.status.incBuilt(rec.BinarySize())

	if rec.BinarySize() != expected.Size() {
		return fmt.Errorf("record %s: binary size %d, want %d", l.Name(), rec.BinarySize(), expected.Size())
	}
	if err := expected.Check(rec); err != nil {
		return fmt.Errorf("record %s: %w", l.Name(), err)
	}
	if err := fastbin.VerifyRecord(l, rec.Bytes()); err != nil {
		return fmt.Errorf("record %s: %w", l.Name(), err)
	}

	copied := rec.Copy()
	defer copied.Release()
	if err := compareCopy(rec, copied); err != nil {
		return fmt.Errorf("record %s: %w", l.Name(), err)
	}
	if err := expected.Check(copied); err != nil {
		return fmt.Errorf("record %s copy: %w", l.Name(), err)
	}
	r.status.incVerified()

	return r.roundTrip(rec,
		func(id storage.ObjectID) (object, error) {
			return r.store.RetrieveRecord(id, l)
		},
		func(got object) error {
			return expected.Check(got.(*fastbin.Record))
		},
	)
}

func (r *runner) arrayStep() error {
	elem := elemLayouts[r.r.Intn(len(elemLayouts))]
	expected := r.gen.Array(elem)

	a := expected.Build()
	defer a.Release()
	r.status.incBuilt(a.BinarySize())

	if a.BinarySize() != expected.Size() {
		return fmt.Errorf("array<%s>: binary size %d, want %d", elem.Name(), a.BinarySize(), expected.Size())
	}
	if err := expected.Check(a); err != nil {
		return fmt.Errorf("array<%s>: %w", elem.Name(), err)
	}
	if err := fastbin.VerifyArray(elem, a.Bytes()); err != nil {
		return fmt.Errorf("array<%s>: %w", elem.Name(), err)
	}

	var n uint64
	it := a.Iterator()
	for rec := it.Next(); rec != nil; rec = it.Next() {
		if err := expected.Elements[n].Check(rec); err != nil {
			return fmt.Errorf("array<%s> element %d: %w", elem.Name(), n, err)
		}
		n++
	}
	if n != a.Count() {
		return fmt.Errorf("array<%s>: iterated %d elements, count is %d", elem.Name(), n, a.Count())
	}

	copied := a.Copy()
	defer copied.Release()
	if err := compareCopy(a, copied); err != nil {
		return fmt.Errorf("array<%s>: %w", elem.Name(), err)
	}
	r.status.incVerified()

	return r.roundTrip(a,
		func(id storage.ObjectID) (object, error) {
			return r.store.RetrieveArray(id, elem)
		},
		func(got object) error {
			return expected.Check(got.(*fastbin.Array))
		},
	)
}

func (r *runner) variantStep() error {
	vt := variantTypes[r.r.Intn(len(variantTypes))]
	expected := r.gen.Variant(vt)

	v := expected.Build()
	defer v.Release()
	r.status.incBuilt(v.BinarySize())

	if v.BinarySize() != expected.Size() {
		return fmt.Errorf("variant %s: binary size %d, want %d", vt.Name(), v.BinarySize(), expected.Size())
	}
	if v.Empty() != expected.Empty() {
		return fmt.Errorf("variant %s: empty is %t, want %t", vt.Name(), v.Empty(), expected.Empty())
	}
	if err := expected.Check(v); err != nil {
		return fmt.Errorf("variant %s: %w", vt.Name(), err)
	}
	if err := fastbin.VerifyVariant(vt, v.Bytes()); err != nil {
		return fmt.Errorf("variant %s: %w", vt.Name(), err)
	}

	copied := v.Copy()
	defer copied.Release()
	if err := compareCopy(v, copied); err != nil {
		return fmt.Errorf("variant %s: %w", vt.Name(), err)
	}
	r.status.incVerified()

	return r.roundTrip(v,
		func(id storage.ObjectID) (object, error) {
			return r.store.RetrieveVariant(id, vt)
		},
		func(got object) error {
			return expected.Check(got.(*fastbin.Variant))
		},
	)
}

// roundTrip stores obj, retrieves it and checks the result.
func (r *runner) roundTrip(
	obj fastbin.Object,
	retrieve func(storage.ObjectID) (object, error),
	check func(object) error,
) error {
	id, err := r.store.Store(obj)
	if err != nil {
		return fmt.Errorf("failed to store object: %w", err)
	}
	r.status.incStored()

	got, err := retrieve(id)
	if err != nil {
		return fmt.Errorf("failed to retrieve object %s: %w", id, err)
	}
	defer got.Release()
	r.status.incRetrieved()

	if !bytes.Equal(got.Bytes(), obj.Bytes()) {
		return fmt.Errorf("object %s: retrieved bytes differ from stored bytes", id)
	}
	if err := check(got); err != nil {
		return fmt.Errorf("object %s: %w", id, err)
	}

	if r.cfg.Keep {
		return nil
	}
	if err := r.store.Remove(id); err != nil {
		return fmt.Errorf("failed to remove object %s: %w", id, err)
	}
	return nil
}

func compareCopy(orig, copied fastbin.Object) error {
	if !bytes.Equal(orig.Bytes(), copied.Bytes()) {
		return fmt.Errorf("copy differs from original")
	}
	if fastbin.Checksum(orig) != fastbin.Checksum(copied) {
		return fmt.Errorf("copy checksum differs from original")
	}
	if fastbin.ContentID(orig) != fastbin.ContentID(copied) {
		return fmt.Errorf("copy content id differs from original")
	}
	return nil
}
