// SPDX-License-Identifier: MIT

package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BlackRoad-OS/roadyaml/internal/metrics"
)

func scrape(t *testing.T) string {
	t.Helper()
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	promhttp.Handler().ServeHTTP(recorder, req)
	return recorder.Body.String()
}

func TestRecordCodecOp(t *testing.T) {
	metrics.RecordCodecOp("parse", nil, 0.002)
	metrics.RecordCodecOp("parse", errors.New("bad input"), 0.001)
	metrics.RecordCodecOp("dump", nil, 0.0005)

	body := scrape(t)

	if !strings.Contains(body, "roadyaml_codec_operations_total") {
		t.Error("expected roadyaml_codec_operations_total metric to be present")
	}
	for _, label := range []string{
		`op="parse",outcome="success"`,
		`op="parse",outcome="failure"`,
		`op="dump",outcome="success"`,
	} {
		if !strings.Contains(body, label) {
			t.Errorf("expected labels %q in metrics output", label)
		}
	}
	if !strings.Contains(body, "roadyaml_codec_duration_seconds") {
		t.Error("expected codec duration histogram to be present")
	}
}

func TestObserveDocumentSize(t *testing.T) {
	metrics.ObserveDocumentSize("parse", 512)
	metrics.ObserveDocumentSize("parse", 0) // ignored

	body := scrape(t)
	if !strings.Contains(body, "roadyaml_codec_document_bytes") {
		t.Error("expected roadyaml_codec_document_bytes metric to be present")
	}
}

func TestSchemaMetrics(t *testing.T) {
	metrics.RecordSchemaValidation("deployment", "valid")
	metrics.RecordSchemaValidation("deployment", "invalid")
	metrics.RecordSchemasLoaded(4)
	metrics.IncSchemaReload("success")

	body := scrape(t)

	if !strings.Contains(body, `schema="deployment"`) {
		t.Error("expected schema label in metrics output")
	}
	if !strings.Contains(body, "roadyaml_schemas_loaded 4") {
		t.Error("expected roadyaml_schemas_loaded gauge to read 4")
	}
	if got := metrics.SchemasLoadedValue(); got != 4 {
		t.Errorf("SchemasLoadedValue() = %v, want 4", got)
	}
	if !strings.Contains(body, "roadyaml_schema_reloads_total") {
		t.Error("expected reload counter to be present")
	}
}
