// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vidhost"

var (
	// EngagementOperationsTotal tracks engagement mutations.
	// Labels:
	//   - operation: add_video, remove_video, add_view, put_like, put_dislike
	//   - status: ok, error
	EngagementOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "engagement_operations_total",
			Help:      "Total number of engagement mutations",
		},
		[]string{"operation", "status"},
	)

	// ReactionConflictRetriesTotal counts optimistic-conflict retries in the
	// reaction engine. A steadily growing value means heavy contention on
	// single (video, user) pairs.
	ReactionConflictRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reaction_conflict_retries_total",
			Help:      "Total number of reaction read-modify-write retries after a conflict",
		},
	)

	// CacheOperationsTotal tracks video cache operations.
	// Labels:
	//   - operation: get, set, delete
	//   - status: hit, miss, success, error
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Total number of cache operations",
		},
		[]string{"operation", "status"},
	)

	// SingleflightRequestsTotal tracks singleflight behavior on video reads.
	// Labels:
	//   - result: initiated (new execution), shared (reused result)
	SingleflightRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "singleflight_requests_total",
			Help:      "Total number of singleflight requests",
		},
		[]string{"result"},
	)

	// EventsPublishedTotal tracks engagement events handed to the broker.
	// Labels:
	//   - type: engagement event type
	//   - status: ok, error
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Total number of engagement events published",
		},
		[]string{"type", "status"},
	)
)

// Operation status constants.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Cache operation status constants.
const (
	CacheStatusHit     = "hit"
	CacheStatusMiss    = "miss"
	CacheStatusSuccess = "success"
	CacheStatusError   = "error"
)

// Cache operation type constants.
const (
	CacheOpGet    = "get"
	CacheOpSet    = "set"
	CacheOpDelete = "delete"
)

// Singleflight result constants.
const (
	SingleflightInitiated = "initiated"
	SingleflightShared    = "shared"
)
