// Package metrics holds the Prometheus collectors exported by coverd on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Resolutions counts finished cover resolutions by the tier which produced
	// the URL: "keyword", "lookup" or "season".
	Resolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coverd_resolutions_total",
			Help: "Total number of cover resolutions by source tier",
		},
		[]string{"source"},
	)

	// LookupAttempts counts attempts of a single lookup strategy such as
	// "wikipedia-fr". Outcome is "found", "not_found" or "failed".
	LookupAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coverd_lookup_attempts_total",
			Help: "Total number of external cover lookup attempts",
		},
		[]string{"lookup", "outcome"},
	)

	// LookupCache counts lookup cache results: "hit", "miss" or "error".
	LookupCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coverd_lookup_cache_total",
			Help: "Total number of lookup cache queries by result",
		},
		[]string{"result"},
	)

	// CircuitBreakerState is 0 for closed, 1 for half-open and 2 for open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "coverd_circuit_breaker_state",
			Help: "Current state of the external API circuit breakers",
		},
		[]string{"name"},
	)

	// HTTPRequests counts served API requests by route and status code.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coverd_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"route", "code"},
	)
)

// Outcome values for LookupAttempts.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeFailed   = "failed"
)
