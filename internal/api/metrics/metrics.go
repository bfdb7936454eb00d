// Package metrics defines and registers the custom Prometheus metrics of the
// identity service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry on package init through
// promauto; HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// ── Credential metrics ───────────────────────────────────────────────────────

// CredentialsCreatedTotal counts registered credentials.
var CredentialsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credentials_created_total",
		Help:      "Total number of credentials created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "unauthorized" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Token metrics ────────────────────────────────────────────────────────────

// TokensIssuedTotal counts tokens handed out to callers.
// Label:
//   - kind: "access" or "refresh"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of tokens issued, by kind.",
	},
	[]string{"kind"},
)

// ── Authorization metrics ────────────────────────────────────────────────────

// RoleGateDecisionsTotal counts role gate outcomes.
// Label:
//   - decision: "allow" or "deny"
var RoleGateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_gate_decisions_total",
		Help:      "Total number of role gate decisions, by outcome.",
	},
	[]string{"decision"},
)
