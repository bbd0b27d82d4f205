// Package metrics defines the custom Prometheus metrics for the materials
// API. It is the single source of truth for metric names, labels, and help
// strings; HTTP-level metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "materials"

// LoginsTotal counts login attempts by outcome.
// Labels:
//   - result: "success", "invalid_credentials", "deactivated", "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// UsersCreatedTotal counts created accounts by role (admin creation and
// public registration both count here).
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// MaterialsCreatedTotal counts created catalog entries.
var MaterialsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "materials_created_total",
		Help:      "Total number of materials created.",
	},
)

// MaterialsUpdatedTotal counts catalog updates.
var MaterialsUpdatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "materials_updated_total",
		Help:      "Total number of materials updated.",
	},
)

// ImageCleanupRetriesTotal counts retried removals of orphaned image files.
var ImageCleanupRetriesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_cleanup_retries_total",
		Help:      "Total number of retried orphan image removals.",
	},
)

// MaterialsDeletedTotal counts catalog deletions.
var MaterialsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "materials_deleted_total",
		Help:      "Total number of materials deleted.",
	},
)
