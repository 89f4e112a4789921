package api_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tchain/go-tchain/api"
	tcarrow "github.com/tchain/go-tchain/arrow"
	"github.com/tchain/go-tchain/chain"
)

func newTestServer(t *testing.T) (*httptest.Server, *chain.Ledger, *api.Metrics) {
	t.Helper()

	reg := prometheus.NewRegistry()
	metrics := api.NewMetrics(reg, "tchain")
	ledger := chain.NewLedger()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv := api.NewServer("", reg, ledger, log)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return ts, ledger, metrics
}

func TestHealthz(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "OK", string(body))
}

func TestMetricsEndpoint(t *testing.T) {
	ts, _, metrics := newTestServer(t)
	metrics.UpdatePoolSize(3)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "tchain_pool_size 3")
}

func TestLedgerExport(t *testing.T) {
	ts, ledger, _ := newTestServer(t)
	ledger.Append(chain.Block{Number: 1, Transactions: []chain.Transaction{
		{From: 0x000, To: 0x123},
		{From: 0x001, To: 0x456},
	}})

	resp, err := http.Get(ts.URL + "/v1/ledger")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.apache.arrow.stream", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	record, err := tcarrow.DeserializeFromIPC(body)
	require.NoError(t, err)
	defer record.Release()

	assert.EqualValues(t, 2, record.NumRows())
	assert.True(t, record.Schema().Equal(tcarrow.LedgerSchema()))
}

func TestLedgerExportEmpty(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/ledger")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	record, err := tcarrow.DeserializeFromIPC(body)
	require.NoError(t, err)
	defer record.Release()

	assert.EqualValues(t, 0, record.NumRows())
}
