package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	registrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Registration attempts by outcome (existing/created/failed).",
		},
		[]string{"outcome"},
	)

	decisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "access_decisions_total",
			Help: "Admin access decisions by action (approved/rejected/stale).",
		},
		[]string{"action"},
	)

	digestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digests_total",
			Help: "Digest runs by outcome (sent/empty/failed).",
		},
		[]string{"outcome"},
	)

	externalErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "external_api_errors_total",
			Help: "Failed calls to upstream APIs by target (supabase/telegram).",
		},
		[]string{"target"},
	)
)

// MustRegister registers collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(
			registrationsTotal,
			decisionsTotal,
			digestsTotal,
			externalErrorsTotal,
		)
	})
}

func IncRegistration(outcome string) {
	registrationsTotal.WithLabelValues(outcome).Inc()
}

func IncDecision(action string) {
	decisionsTotal.WithLabelValues(action).Inc()
}

func IncDigest(outcome string) {
	digestsTotal.WithLabelValues(outcome).Inc()
}

func IncExternalError(target string) {
	externalErrorsTotal.WithLabelValues(target).Inc()
}
