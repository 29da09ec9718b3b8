// Package metrics provides the centralized Prometheus metrics registry
// for the ledger client. All metrics are defined in their respective
// packages (client, pagination, checkpoint) to maintain modularity and
// avoid circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the ledger client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - ledger_requests_total{path, status} (Counter): Total requests by endpoint path and HTTP status
//   - ledger_request_duration_seconds{path} (Histogram): Request duration by endpoint path
//   - ledger_errors_total{class} (Counter): Errors by class (api, connectivity, decode)
//
// Retry Metrics (pkg/client):
//   - ledger_retries_total{error_class} (Counter): Retry attempts by error class
//   - ledger_retry_backoff_seconds{error_class} (Histogram): Backoff duration by error class
//   - ledger_retry_exhausted_total{error_class} (Counter): Requests that exhausted max retries
//
// Pagination Metrics (pkg/pagination):
//   - ledger_pages_fetched_total{path} (Counter): Pages fetched by endpoint path
//   - ledger_items_fetched_total{path} (Counter): Items received across pages by endpoint path
//
// Checkpoint Metrics (pkg/checkpoint):
//   - ledger_checkpoint_saves_total (Counter): Cursor checkpoints saved
//   - ledger_checkpoint_loads_total (Counter): Cursor checkpoints loaded
//   - ledger_checkpoint_misses_total (Counter): Checkpoint loads that found nothing
//
// Example Prometheus Queries:
//
//   # Request Error Rate
//   rate(ledger_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(ledger_request_duration_seconds_bucket[5m]))
//
//   # Average Items per Page
//   rate(ledger_items_fetched_total[5m]) / rate(ledger_pages_fetched_total[5m])
//
//   # Retry Pressure
//   rate(ledger_retries_total[5m])
