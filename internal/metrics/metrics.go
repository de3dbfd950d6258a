// SPDX-License-Identifier: MIT

// Package metrics exposes Prometheus instrumentation for the roadyaml service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

var (
	// Codec metrics
	codecOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roadyaml_codec_operations_total",
		Help: "Codec operations by kind and outcome",
	}, []string{"op", "outcome"}) // op=parse|dump|merge|validate, outcome=success|failure

	codecDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "roadyaml_codec_duration_seconds",
		Help:    "Time spent in codec operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})

	codecDocumentBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "roadyaml_codec_document_bytes",
		Help:    "Input document sizes in bytes",
		Buckets: prometheus.ExponentialBuckets(64, 4, 8),
	}, []string{"op"})

	// Schema metrics
	schemaValidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roadyaml_schema_validations_total",
		Help: "Schema validation requests by schema and outcome",
	}, []string{"schema", "outcome"}) // outcome=valid|invalid|error

	schemasLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "roadyaml_schemas_loaded",
		Help: "Number of schemas currently available in the registry",
	})

	schemaReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roadyaml_schema_reloads_total",
		Help: "Schema registry reloads by outcome",
	}, []string{"outcome"}) // outcome=success|failure
)

// RecordCodecOp records one codec operation with its duration in seconds.
func RecordCodecOp(op string, err error, seconds float64) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	codecOperations.WithLabelValues(op, outcome).Inc()
	codecDuration.WithLabelValues(op).Observe(seconds)
}

// ObserveDocumentSize records the size of a document handled by op.
func ObserveDocumentSize(op string, bytes int) {
	if bytes > 0 {
		codecDocumentBytes.WithLabelValues(op).Observe(float64(bytes))
	}
}

// RecordSchemaValidation counts one validation request against a named schema.
func RecordSchemaValidation(schema, outcome string) {
	schemaValidations.WithLabelValues(schema, outcome).Inc()
}

// RecordSchemasLoaded sets the current registry size.
func RecordSchemasLoaded(n int) { schemasLoaded.Set(float64(n)) }

// SchemasLoadedValue returns the current value of the registry gauge (for testing).
func SchemasLoadedValue() float64 {
	var m dto.Metric
	if err := schemasLoaded.Write(&m); err != nil {
		return 0
	}
	return m.GetGauge().GetValue()
}

// IncSchemaReload counts one registry reload attempt.
func IncSchemaReload(outcome string) { schemaReloads.WithLabelValues(outcome).Inc() }
