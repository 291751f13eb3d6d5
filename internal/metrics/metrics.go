// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts served requests by route pattern and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "circle_http_requests_total",
		Help: "HTTP requests by method, route and status code",
	}, []string{"method", "route", "status"})

	// HTTPDuration tracks request latency by route pattern.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "circle_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
	}, []string{"method", "route"})

	// ReactionToggles counts ledger toggles by requested reaction and result
	// (changed, unchanged, error).
	ReactionToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "circle_reaction_toggles_total",
		Help: "Reaction toggles by requested type and result",
	}, []string{"reaction", "result"})

	// AccessDecisions counts visibility decisions by outcome.
	AccessDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "circle_access_decisions_total",
		Help: "Access gate decisions by outcome",
	}, []string{"decision"})

	// FriendEdges counts friend graph mutations that changed state.
	FriendEdges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "circle_friend_edge_mutations_total",
		Help: "Friend edges added or removed",
	}, []string{"op"})

	// EventsPublished counts broker publishes by subject and result.
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "circle_events_published_total",
		Help: "Events published to the message broker",
	}, []string{"subject", "result"})

	// WSClients is the number of connected websocket clients.
	WSClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "circle_ws_clients",
		Help: "Connected websocket clients",
	})
)
