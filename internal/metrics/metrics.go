package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	sourceFetch = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "guest_services",
			Name:      "source_fetch_total",
			Help:      "Count of collaborator fetches by source and outcome.",
		},
		[]string{"source", "outcome"},
	)

	slotClassified = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "guest_services",
			Name:      "slot_classified_total",
			Help:      "Count of classified slots by outcome.",
		},
		[]string{"outcome"},
	)

	resolveDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "guest_services",
			Name:      "resolve_duration_seconds",
			Help:      "Duration of a full availability resolve cycle.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	purchaseSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "guest_services",
			Name:      "purchase_submitted_total",
			Help:      "Count of per-date purchase submissions by result.",
		},
		[]string{"result"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(sourceFetch, slotClassified, resolveDuration, purchaseSubmitted)
	})
}

func IncSourceFetch(source, outcome string) {
	sourceFetch.WithLabelValues(source, outcome).Inc()
}

func IncSlotClassified(outcome string) {
	slotClassified.WithLabelValues(outcome).Inc()
}

func ObserveResolve(d time.Duration) {
	resolveDuration.Observe(d.Seconds())
}

func IncPurchaseSubmitted(result string) {
	purchaseSubmitted.WithLabelValues(result).Inc()
}
