// Package metrics defines and registers the custom Prometheus metrics for
// the KLIMATA dashboard. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "klimata"

// LoginsTotal counts login submissions.
// Label:
//   - result: "accepted", "rejected", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login submissions, by result.",
	},
	[]string{"result"},
)

// SignupsTotal counts sign-up submissions.
// Label:
//   - result: "accepted" or "rejected"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of sign-up submissions, by result.",
	},
	[]string{"result"},
)

// PasswordChangesTotal counts password-change submissions.
// Label:
//   - result: "accepted" or "rejected"
var PasswordChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_changes_total",
		Help:      "Total number of password-change submissions, by result.",
	},
	[]string{"result"},
)

// ViewSelectionsTotal counts accepted view activations.
// Label:
//   - view: the activated view name (e.g. "barangay_deep_dive")
var ViewSelectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "view_selections_total",
		Help:      "Total number of accepted view selections, by view.",
	},
	[]string{"view"},
)
