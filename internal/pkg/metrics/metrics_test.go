package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCollector_Counts(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordLogin(ResultSuccess)
	c.RecordLogin(ResultFailure)
	c.RecordLogin(ResultFailure)
	c.RecordImageRemoval(ResultFailure)

	require.Equal(t, 1.0, testutil.ToFloat64(c.logins.WithLabelValues(ResultSuccess)))
	require.Equal(t, 2.0, testutil.ToFloat64(c.logins.WithLabelValues(ResultFailure)))
	require.Equal(t, 1.0, testutil.ToFloat64(c.cleanups.WithLabelValues(ResultFailure)))
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *Collector
	c.RecordRegistration(ResultSuccess)
	c.RecordLogin(ResultSuccess)
	c.RecordUpload(ResultRejected)
	c.RecordImageRemoval(ResultSuccess)
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())
	c.RecordRegistration(ResultSuccess)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `profilehub_registrations_total{result="success"} 1`)
}
