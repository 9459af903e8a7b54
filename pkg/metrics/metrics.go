// Package metrics 提供 Prometheus 指标采集功能
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "poemtab"
)

var (
	// HTTP 请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "response_size_bytes",
			Help:      "HTTP response size in bytes",
			Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
		},
		[]string{"method", "path"},
	)

	// 上游诗词 API 指标
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Total number of upstream poem API requests",
		},
		[]string{"upstream", "op", "status"}, // status: ok/http_error/format_error/timeout/network_error
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Upstream poem API request duration in seconds",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"upstream", "op"},
	)

	// 业务指标 - 诗词下发
	PoemsServedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "poem",
			Name:      "served_total",
			Help:      "Total number of poems served",
		},
		[]string{"language", "route"}, // route: random/category/index/sample
	)

	PoemFetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "poem",
			Name:      "fetch_failures_total",
			Help:      "Total number of failed poem fetches",
		},
		[]string{"language", "code"},
	)

	// 状态存储指标
	StoreOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "ops_total",
			Help:      "Total number of preference store operations",
		},
		[]string{"op", "status"},
	)
)
