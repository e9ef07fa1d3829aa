package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordingIsSafeBeforeInit(t *testing.T) {
	if harnessMetrics != nil {
		t.Skip("metrics already initialized by another test")
	}
	RecordSysvarWrite("clock")
	IncreaseBlockhashExpirations(1)
	RecordRPCRequest("getAccountInfo", RPCStatusOK, time.Millisecond)
	assert.Equal(t, 0.0, SysvarWrites("clock"))
}

func TestCountersAfterInit(t *testing.T) {
	InitMetrics()
	InitMetrics()

	before := SysvarWrites("rent")
	RecordSysvarWrite("rent")
	RecordSysvarWrite("rent")
	assert.Equal(t, before+2, SysvarWrites("rent"))

	expBefore := BlockhashExpirations()
	IncreaseBlockhashExpirations(3)
	assert.Equal(t, expBefore+3, BlockhashExpirations())

	RecordRPCRequest("getMultipleAccounts", RPCStatusFailed, 5*time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(harnessMetrics.rpcRequests.WithLabelValues("getMultipleAccounts", "failed")))
}

func TestRegisterMetricsServesExposition(t *testing.T) {
	InitMetrics()
	IncreaseFixtureAccounts(2)

	mux := http.NewServeMux()
	RegisterMetrics(mux)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "svmharness_fixture_accounts_loaded_total")
}
