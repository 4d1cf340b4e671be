package querycache

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	hits          *prometheus.CounterVec
	misses        *prometheus.CounterVec
	fetchErrors   *prometheus.CounterVec
	invalidations *prometheus.CounterVec
}

// newMetrics создаёт счётчики по «голове» ключа. Если reg == nil,
// счётчики работают, но нигде не регистрируются (удобно в тестах).
func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wavefeed",
			Subsystem: "querycache",
			Name:      "hits_total",
			Help:      "Reads served from a fresh cache entry.",
		}, []string{"key"}),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wavefeed",
			Subsystem: "querycache",
			Name:      "misses_total",
			Help:      "Reads that required a fetch (missing, stale or expired entry).",
		}, []string{"key"}),
		fetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wavefeed",
			Subsystem: "querycache",
			Name:      "fetch_errors_total",
			Help:      "Fetches that returned an error.",
		}, []string{"key"}),
		invalidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wavefeed",
			Subsystem: "querycache",
			Name:      "invalidations_total",
			Help:      "Entries and in-flight fetches marked stale.",
		}, []string{"key"}),
	}

	if reg != nil {
		reg.MustRegister(m.hits, m.misses, m.fetchErrors, m.invalidations)
	}

	return m
}
