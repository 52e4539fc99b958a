package server

//
// instrumentation.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "shopadmin"

type httpMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	respSize *prometheus.SummaryVec
	inFlight *prometheus.GaugeVec
}

// metrics are shared by all servers; `handler` label distinguish api and web.
//
//nolint:gochecknoglobals
var metrics = sync.OnceValue(func() *httpMetrics {
	labels := []string{"handler", "method", "code"}

	m := &httpMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "Number of handled HTTP requests.",
		}, labels),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencies of HTTP requests.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		}, labels),
		respSize: prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Namespace: metricsNamespace,
			Name:      "http_response_size_bytes",
			Help:      "Size of HTTP responses.",
		}, labels),
		inFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "http_in_flight_requests",
			Help:      "Number of requests currently served.",
		}, []string{"handler"}),
	}

	prometheus.DefaultRegisterer.MustRegister(m.requests, m.duration, m.respSize, m.inFlight)

	return m
})

// newPromMiddleware collect http metrics labeled with handler `name`.
func newPromMiddleware(name string) func(http.Handler) http.Handler {
	m := metrics()
	handlerLabel := prometheus.Labels{"handler": name}

	requests := m.requests.MustCurryWith(handlerLabel)
	duration := m.duration.MustCurryWith(handlerLabel)
	respSize := m.respSize.MustCurryWith(handlerLabel)
	inFlight := m.inFlight.With(handlerLabel)

	return func(next http.Handler) http.Handler {
		h := promhttp.InstrumentHandlerResponseSize(respSize, next)
		h = promhttp.InstrumentHandlerDuration(duration, h)
		h = promhttp.InstrumentHandlerCounter(requests, h)

		return promhttp.InstrumentHandlerInFlight(inFlight, h)
	}
}

func newMetricsHandler() http.Handler {
	return promhttp.InstrumentMetricHandler(
		prometheus.DefaultRegisterer,
		promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{DisableCompression: true}),
	)
}
