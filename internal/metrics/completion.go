package metrics

import "github.com/prometheus/client_golang/prometheus"

// Completion Prometheus metrics.
var (
	CompletionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "orgconnect",
			Name:      "completion_requests_total",
			Help:      "Total number of chat-completion requests",
		},
		[]string{"model", "status"},
	)

	CompletionRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "orgconnect",
			Name:      "completion_request_duration_seconds",
			Help:      "Chat-completion request duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"model"},
	)

	CompletionTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "orgconnect",
			Name:      "completion_tokens_total",
			Help:      "Total completion tokens consumed",
		},
		[]string{"model", "type"}, // type: prompt / completion / total
	)

	CompletionErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "orgconnect",
			Name:      "completion_errors_total",
			Help:      "Total chat-completion errors",
		},
		[]string{"model", "error_type"},
	)

	AnswerCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "orgconnect",
			Name:      "answer_cache_total",
			Help:      "Document answer cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var completionMetricsRegistered bool

// RegisterCompletionMetrics registers completion metrics. Must be called once from main.
func RegisterCompletionMetrics() {
	if completionMetricsRegistered {
		return
	}
	prometheus.MustRegister(CompletionRequestsTotal)
	prometheus.MustRegister(CompletionRequestDuration)
	prometheus.MustRegister(CompletionTokensTotal)
	prometheus.MustRegister(CompletionErrorsTotal)
	prometheus.MustRegister(AnswerCacheTotal)
	completionMetricsRegistered = true
}
