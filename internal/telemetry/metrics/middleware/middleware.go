package middleware

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Middleware instruments wrapped handlers with request count and
// duration metrics, labeled by handler name.
type Middleware struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func New(registry prometheus.Registerer, buckets []float64) *Middleware {
	if buckets == nil {
		buckets = prometheus.ExponentialBuckets(0.1, 1.5, 5)
	}

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Tracks the number of HTTP requests.",
		}, []string{"handler", "method", "code"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Tracks the latencies for HTTP requests.",
			Buckets: buckets,
		},
		[]string{"handler", "method", "code"},
	)

	registry.MustRegister(requestsTotal, requestDuration)

	return &Middleware{
		requestsTotal:   requestsTotal,
		requestDuration: requestDuration,
	}
}

func (m *Middleware) WrapHandler(handlerName string, handler http.Handler) http.Handler {
	handlerLabel := prometheus.Labels{"handler": handlerName}
	return promhttp.InstrumentHandlerCounter(
		m.requestsTotal.MustCurryWith(handlerLabel),
		promhttp.InstrumentHandlerDuration(
			m.requestDuration.MustCurryWith(handlerLabel),
			handler,
		),
	)
}
