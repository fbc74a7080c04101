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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "fastbin"
	metricsSubsystem = "storage"

	failureChecksum   = "checksum"
	failureEnvelope   = "envelope"
	failureVerify     = "verify"
	failureObjectType = "type"
)

// Metrics holds the Prometheus metrics of a Storage.
type Metrics struct {
	objectsStored     *prometheus.CounterVec
	objectsRetrieved  *prometheus.CounterVec
	objectsRemoved    prometheus.Counter
	bytesStored       prometheus.Counter
	bytesRetrieved    prometheus.Counter
	integrityFailures *prometheus.CounterVec
	objectSize        prometheus.Histogram
}

// NewMetrics creates the storage metrics and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		objectsStored: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "objects_stored_total",
				Help:      "Total number of objects stored",
			},
			[]string{"kind"},
		),

		objectsRetrieved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "objects_retrieved_total",
				Help:      "Total number of objects retrieved and verified",
			},
			[]string{"kind"},
		),

		objectsRemoved: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "objects_removed_total",
				Help:      "Total number of objects removed",
			},
		),

		bytesStored: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "bytes_stored_total",
				Help:      "Total number of object bytes stored, envelopes excluded",
			},
		),

		bytesRetrieved: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "bytes_retrieved_total",
				Help:      "Total number of object bytes retrieved, envelopes excluded",
			},
		),

		integrityFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "integrity_failures_total",
				Help:      "Total number of retrievals rejected by an integrity check",
			},
			[]string{"reason"},
		),

		objectSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "object_size_bytes",
				Help:      "Size of stored objects in bytes",
				Buckets:   prometheus.ExponentialBuckets(16, 4, 10),
			},
		),
	}
}

func (m *Metrics) stored(kind ObjectKind, size int) {
	if m == nil {
		return
	}
	m.objectsStored.WithLabelValues(kind.String()).Inc()
	m.bytesStored.Add(float64(size))
	m.objectSize.Observe(float64(size))
}

func (m *Metrics) retrieved(kind ObjectKind, size int) {
	if m == nil {
		return
	}
	m.objectsRetrieved.WithLabelValues(kind.String()).Inc()
	m.bytesRetrieved.Add(float64(size))
}

func (m *Metrics) removed() {
	if m == nil {
		return
	}
	m.objectsRemoved.Inc()
}

func (m *Metrics) integrityFailure(reason string) {
	if m == nil {
		return
	}
	m.integrityFailures.WithLabelValues(reason).Inc()
}
