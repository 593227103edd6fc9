package jwkscache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultHit     = "hit"
	resultMiss    = "miss"
	resultSuccess = "success"
	resultError   = "error"
)

var (
	loadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jwks_cache_loads_total",
			Help: "Total number of key set loads from the local cache",
		},
		[]string{"result"}, // result: hit, miss
	)

	fetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jwks_cache_fetches_total",
			Help: "Total number of JWKS fetch attempts",
		},
		[]string{"result"}, // result: success, error
	)

	fetchesSkippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jwks_cache_fetches_skipped_total",
			Help: "Total number of fetches skipped because the cooldown window had not elapsed",
		},
	)
)

func recordLoad(result string) {
	loadsTotal.WithLabelValues(result).Inc()
}

func recordFetch(result string) {
	fetchesTotal.WithLabelValues(result).Inc()
}

func recordFetchSkipped() {
	fetchesSkippedTotal.Inc()
}
