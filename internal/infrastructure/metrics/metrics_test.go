package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmanager-api/internal/infrastructure/metrics"
)

func TestMetrics_ContadoresYHandler(t *testing.T) {
	m := metrics.New()
	m.MovementRecorded("IN", "ok")
	m.MovementRecorded("IN", "ok")
	m.PartialFailure("stock_in")
	m.BalanceRetry()
	m.BalanceConflict()
	m.BalanceAdjusted(3 * time.Millisecond)
	m.ReadFailure("balances")
	m.MovementDeleted("ok")

	n, err := testutil.GatherAndCount(m.Registry(), "stock_movements_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "una serie por combinación de etiquetas")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(body), `stock_movements_total{direction="IN",outcome="ok"} 2`)
	assert.Contains(t, string(body), "stock_balance_cas_retries_total 1")
	assert.Contains(t, string(body), `stock_read_failures_total{projection="balances"} 1`)
}
