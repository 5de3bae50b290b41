package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tradebridge_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tradebridge_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"method", "path"})

	CollectionTokensIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tradebridge_collection_tokens_issued_total",
		Help: "Collection tokens issued, by flow",
	}, []string{"flow"})

	CollectionTokensRedeemed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tradebridge_collection_tokens_redeemed_total",
		Help: "Collection token redemption attempts, by flow and result",
	}, []string{"flow", "result"})
)
