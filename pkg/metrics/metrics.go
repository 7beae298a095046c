// Package metrics provides centralized Prometheus metrics registry for the
// Polly client. All metrics are defined in pkg/client via promauto; this
// package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the Polly client.
// All metrics are automatically registered via promauto in pkg/client.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - polly_requests_total{endpoint, status} (Counter): Total requests by
//     endpoint and HTTP status ("network_error" when no response was received)
//   - polly_request_duration_seconds{endpoint} (Histogram): Request duration
//     by endpoint
//   - polly_errors_total{class} (Counter): Errors by class
//     (transport, validation, domain)
//
// Example Prometheus Queries:
//
//   # Request Error Rate
//   rate(polly_errors_total[5m])
//
//   # Domain Rejection Share
//   sum(rate(polly_errors_total{class="domain"}[5m])) /
//   sum(rate(polly_requests_total[5m]))
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(polly_request_duration_seconds_bucket[5m]))
