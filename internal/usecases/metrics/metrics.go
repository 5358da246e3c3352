// Package metrics holds the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MintAttemptsTotal counts finished mint workflows by outcome.
	MintAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "suburbia",
		Name:      "mint_workflows_total",
		Help:      "Mint workflow outcomes",
	}, []string{"outcome"})

	// AirdropsTotal counts devnet airdrop requests by outcome.
	AirdropsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "suburbia",
		Name:      "airdrops_total",
		Help:      "Devnet airdrop request outcomes",
	}, []string{"outcome"})

	// UploadsTotal counts off-chain asset uploads by object kind and outcome.
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "suburbia",
		Name:      "asset_uploads_total",
		Help:      "Off-chain asset upload outcomes",
	}, []string{"kind", "outcome"})

	// HTTPRequestsTotal counts handled HTTP requests.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "suburbia",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, path and status",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration observes request latency per route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "suburbia",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})
)
