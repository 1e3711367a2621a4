package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRemote_CountsByOutcome(t *testing.T) {
	m := New()
	m.ObserveRemote("get", "ok", time.Millisecond)
	m.ObserveRemote("get", "rate_limited", time.Millisecond)
	m.ObserveRemote("get", "rate_limited", time.Millisecond)

	if got := testutil.ToFloat64(m.RemoteRequests.WithLabelValues("get", "rate_limited")); got != 2 {
		t.Fatalf("expected 2 rate_limited, got %v", got)
	}
	if got := testutil.ToFloat64(m.RemoteRequests.WithLabelValues("get", "ok")); got != 1 {
		t.Fatalf("expected 1 ok, got %v", got)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveRemote("list", "ok", 0)
	m.SetBusy(true)
	m.SetCached(3)
}

func TestBusyGauge(t *testing.T) {
	m := New()
	m.SetBusy(true)
	if got := testutil.ToFloat64(m.Busy); got != 1 {
		t.Fatalf("expected busy 1, got %v", got)
	}
	m.SetBusy(false)
	if got := testutil.ToFloat64(m.Busy); got != 0 {
		t.Fatalf("expected busy 0, got %v", got)
	}
}
