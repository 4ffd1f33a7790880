// Package metrics exposes Prometheus collectors for the classification engine.
// Registration is passive; serving /metrics belongs to the embedding host
// process, not this engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	classificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "budgetwise",
		Name:      "classifications_total",
		Help:      "Classifications completed, by winning signal source",
	}, []string{"source"})

	classificationConfidence = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "budgetwise",
		Name:      "classification_confidence",
		Help:      "Confidence distribution of non-pinned classifications",
		Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
	})

	embeddingFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "budgetwise",
		Name:      "embedding_failures_total",
		Help:      "Embedding provider calls that failed and were degraded to zero signal",
	})
)

// Classification records a completed classification and its confidence.
func Classification(source string, confidence float64) {
	classificationsTotal.WithLabelValues(source).Inc()
	classificationConfidence.Observe(confidence)
}

// EmbeddingFailure records a degraded embedding call.
func EmbeddingFailure() {
	embeddingFailuresTotal.Inc()
}
