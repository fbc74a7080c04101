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

package storage

import (
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Exported internals for testing.
var (
	EncodeEnvelope = encodeEnvelope
	DecodeEnvelope = decodeEnvelope
)

func (m *Metrics) ObjectsStored(kind ObjectKind) float64 {
	return testutil.ToFloat64(m.objectsStored.WithLabelValues(kind.String()))
}

func (m *Metrics) ObjectsRetrieved(kind ObjectKind) float64 {
	return testutil.ToFloat64(m.objectsRetrieved.WithLabelValues(kind.String()))
}

func (m *Metrics) ObjectsRemoved() float64 {
	return testutil.ToFloat64(m.objectsRemoved)
}

func (m *Metrics) BytesStored() float64 {
	return testutil.ToFloat64(m.bytesStored)
}

func (m *Metrics) BytesRetrieved() float64 {
	return testutil.ToFloat64(m.bytesRetrieved)
}

func (m *Metrics) IntegrityFailures(reason string) float64 {
	return testutil.ToFloat64(m.integrityFailures.WithLabelValues(reason))
}
