// Package metrics holds the service's domain-level Prometheus
// instruments. HTTP-level request metrics live in the middleware; these
// track what the business actually did.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ScansTotal counts scan attempts by outcome.
	ScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docscan_scans_total",
			Help: "Total number of scan attempts by outcome.",
		},
		[]string{"outcome"},
	)

	// CreditsSpent counts credits debited for scans.
	CreditsSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "docscan_credits_spent_total",
			Help: "Total credits debited for scans.",
		},
	)

	// CreditsGranted counts credits added through approved requests.
	CreditsGranted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "docscan_credits_granted_total",
			Help: "Total credits granted through approved credit requests.",
		},
	)
)

// Scan outcomes.
const (
	OutcomeOK           = "ok"
	OutcomeInvalid      = "invalid_input"
	OutcomeInsufficient = "insufficient_credits"
	OutcomeError        = "error"
)
