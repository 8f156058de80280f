// Package metrics defines and registers all custom Prometheus metrics for the
// skatespot API. It is the single source of truth for metric names, labels,
// and help strings. Registration happens at import time via promauto against
// the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "skatespot"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "inactive", "deleted", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created.",
	},
)

// TokenRejectionsTotal counts bearer tokens rejected during resolution.
// Label:
//   - reason: "invalid", "expired"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of bearer tokens rejected, by reason.",
	},
	[]string{"reason"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// ParksCreatedTotal counts newly created parks.
// Label:
//   - park_type: "street", "vert", "bowl", "plaza", "diy", "indoor", "hybrid"
var ParksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "parks_created_total",
		Help:      "Total number of parks created, by park type.",
	},
	[]string{"park_type"},
)

// RatingsSubmittedTotal counts rating submissions (new and re-ratings).
var RatingsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratings_submitted_total",
		Help:      "Total number of park ratings submitted.",
	},
)

// ParkCacheTotal counts park-detail cache lookups.
// Label:
//   - result: "hit" or "miss"
var ParkCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "park_cache_total",
		Help:      "Total number of park detail cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)
