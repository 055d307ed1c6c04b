package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecord(t *testing.T) {
	m := NewMetrics("test")

	m.RecordRequest("/clubs", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/clubs", "GET", 200, 5*time.Millisecond)
	m.RecordError("/memberships", "POST", "CONFLICT")
	m.RecordLedgerOp("membership", "join", "ok")
	m.RecordCascade("membership", 3)

	require.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/clubs", "GET", "200")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.errors.WithLabelValues("/memberships", "POST", "CONFLICT")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ledgerOps.WithLabelValues("membership", "join", "ok")))
	require.Equal(t, 1, testutil.CollectAndCount(m.cascadeDelete))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, time.Second)
		m.RecordError("/", "GET", "X")
		m.RecordLedgerOp("membership", "join", "ok")
		m.RecordCascade("membership", 1)
	})
	require.Nil(t, m.Registry())
}
