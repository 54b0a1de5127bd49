package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/auth/login", "POST", 200, 10*time.Millisecond)
	m.RecordRequest("/auth/login", "POST", 200, 5*time.Millisecond)
	m.RecordError("/auth/login", "POST", "INVALID_CREDENTIALS")
	m.RecordTransition("pending", "assigned")
	m.RecordRegistration("developer", "pending")

	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("POST", "/auth/login", "200")); got != 2 {
		t.Errorf("requests_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.errorsTotal.WithLabelValues("POST", "/auth/login", "INVALID_CREDENTIALS")); got != 1 {
		t.Errorf("errors_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.transitions.WithLabelValues("pending", "assigned")); got != 1 {
		t.Errorf("transitions_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.registrations.WithLabelValues("developer", "pending")); got != 1 {
		t.Errorf("registrations_total = %v, want 1", got)
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	m.RecordTransition("a", "b")
	m.RecordRegistration("customer", "ok")
}
