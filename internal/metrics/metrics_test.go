package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/restaurant-panel/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCollectorCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)

	c.RecordRequest(http.MethodGet, http.StatusOK)
	c.RecordRequest(http.MethodGet, http.StatusForbidden)
	c.RecordRefresh(true)
	c.RecordRefresh(false)
	c.RecordRetry()

	count, err := testutil.GatherAndCount(reg, "panel_client_requests_total")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(reg, "panel_session_refreshes_total")
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)
	c.RecordServed(http.MethodPost, http.StatusCreated)

	w := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body, _ := io.ReadAll(w.Body)
	require.Contains(t, string(body), "panel_api_requests_served_total")
}
