package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/mezonai/svmharness/logx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

type RPCStatus string

var (
	RPCStatusOK       RPCStatus = "ok"
	RPCStatusRPCError RPCStatus = "rpc_error"
	RPCStatusFailed   RPCStatus = "failed"
)

type harnessPromMetrics struct {
	sysvarWrites         *prometheus.CounterVec
	blockhashExpirations prometheus.Counter
	slotHashEvictions    prometheus.Counter
	rpcRequests          *prometheus.CounterVec
	rpcLatency           *prometheus.HistogramVec
	fixtureAccounts      prometheus.Counter
	panicCount           prometheus.Counter
}

func newHarnessPromMetrics() *harnessPromMetrics {
	return &harnessPromMetrics{
		sysvarWrites: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "svmharness_sysvar_writes_total",
				Help: "Number of sysvar values written, by kind",
			},
			[]string{"kind"},
		),
		blockhashExpirations: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "svmharness_blockhash_expirations_total",
				Help: "Slot hashes synthesized by blockhash expiry or warp",
			},
		),
		slotHashEvictions: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "svmharness_slot_hash_evictions_total",
				Help: "Slot hash entries dropped from the back of the history",
			},
		),
		rpcRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "svmharness_rpc_requests_total",
				Help: "JSON-RPC requests issued by the account fetcher",
			},
			[]string{"method", "status"},
		),
		rpcLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "svmharness_rpc_request_duration_seconds",
				Help: "Latency of account fetcher JSON-RPC requests",
			},
			[]string{"method"},
		),
		fixtureAccounts: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "svmharness_fixture_accounts_loaded_total",
				Help: "Accounts loaded from JSON fixture files",
			},
		),
		panicCount: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "svmharness_panic_count",
				Help: "Recovered goroutine panics",
			},
		),
	}
}

var (
	harnessMetrics *harnessPromMetrics
	initOnce       sync.Once
)

// InitMetrics registers the collectors. Recording before InitMetrics is a no-op.
func InitMetrics() {
	initOnce.Do(func() {
		harnessMetrics = newHarnessPromMetrics()
	})
}

func RegisterMetrics(mux *http.ServeMux) {
	logx.Info("MONITORING", "Registering prometheus metrics")
	mux.Handle("/metrics", promhttp.Handler())
}

func RecordSysvarWrite(kind string) {
	if harnessMetrics == nil {
		return
	}
	harnessMetrics.sysvarWrites.With(prometheus.Labels{"kind": kind}).Inc()
}

func IncreaseBlockhashExpirations(slots int) {
	if harnessMetrics == nil {
		return
	}
	harnessMetrics.blockhashExpirations.Add(float64(slots))
}

func IncreaseSlotHashEvictions(n int) {
	if harnessMetrics == nil || n <= 0 {
		return
	}
	harnessMetrics.slotHashEvictions.Add(float64(n))
}

func RecordRPCRequest(method string, status RPCStatus, duration time.Duration) {
	if harnessMetrics == nil {
		return
	}
	harnessMetrics.rpcRequests.With(prometheus.Labels{
		"method": method,
		"status": string(status),
	}).Inc()
	harnessMetrics.rpcLatency.With(prometheus.Labels{"method": method}).Observe(duration.Seconds())
}

func IncreaseFixtureAccounts(n int) {
	if harnessMetrics == nil {
		return
	}
	harnessMetrics.fixtureAccounts.Add(float64(n))
}

func IncreasePanicCount() {
	if harnessMetrics == nil {
		return
	}
	harnessMetrics.panicCount.Inc()
}

// SysvarWrites reports the current counter value for kind, or 0 before InitMetrics.
func SysvarWrites(kind string) float64 {
	if harnessMetrics == nil {
		return 0
	}
	return counterValue(harnessMetrics.sysvarWrites.With(prometheus.Labels{"kind": kind}))
}

func BlockhashExpirations() float64 {
	if harnessMetrics == nil {
		return 0
	}
	return counterValue(harnessMetrics.blockhashExpirations)
}

func PanicCount() float64 {
	if harnessMetrics == nil {
		return 0
	}
	return counterValue(harnessMetrics.panicCount)
}

func counterValue(c prometheus.Counter) float64 {
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}
