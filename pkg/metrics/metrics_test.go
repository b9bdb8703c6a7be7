package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe(http.MethodGet, "/leads/{id}", http.StatusOK, 20*time.Millisecond)
	m.Observe(http.MethodGet, "/leads/{id}", http.StatusOK, 10*time.Millisecond)
	m.Observe(http.MethodPost, "", http.StatusNotFound, time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/leads/{id}", "200")); got != 2 {
		t.Fatalf("expected 2 GET requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("POST", "unknown", "404")); got != 1 {
		t.Fatalf("expected empty route to be labelled unknown, got %v", got)
	}
	if count := testutil.CollectAndCount(m.duration); count != 2 {
		t.Fatalf("expected 2 histogram series, got %d", count)
	}
}

func TestCRMMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCRMMetrics(reg)

	m.LeadCreated("doubletick")
	m.ActivityRecorded("WON")
	m.WebhookEvent(WebhookUnassigned)
	m.WebhookEvent(WebhookUnassigned)

	if got := testutil.ToFloat64(m.leadsCreated.WithLabelValues("doubletick")); got != 1 {
		t.Fatalf("expected 1 lead created, got %v", got)
	}
	if got := testutil.ToFloat64(m.activities.WithLabelValues("WON")); got != 1 {
		t.Fatalf("expected 1 activity, got %v", got)
	}
	if got := testutil.ToFloat64(m.webhooks.WithLabelValues(WebhookUnassigned)); got != 2 {
		t.Fatalf("expected 2 unassigned webhooks, got %v", got)
	}
}

func TestNilRegistererIsNoop(t *testing.T) {
	var crm *CRMMetrics
	crm.LeadCreated("x")
	NewCRMMetrics(nil).WebhookEvent(WebhookCreated)
	NewHTTPMetrics(nil).Observe("GET", "/", 200, time.Millisecond)
}
