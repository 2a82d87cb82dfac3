// Package metrics holds the Prometheus collectors of the interview API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "interviewprep"

var (
	aiCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ai_calls_total",
		Help:      "AI adapter calls by operation and outcome",
	}, []string{"operation", "outcome"})

	aiLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ai_call_duration_seconds",
		Help:      "Duration of AI adapter calls in seconds, retries included",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
	}, []string{"operation"})

	sessionEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_total",
		Help:      "Interview session lifecycle events",
	}, []string{"event"})

	questionsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "questions_generated_total",
		Help:      "Interview questions persisted from fresh generations",
	})

	unmatchedScores = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "unmatched_question_scores_total",
		Help:      "Question scores returned by analysis that matched no stored question",
	})

	staleStartsReset = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stale_starts_reset_total",
		Help:      "Interviews released by the stale start sweeper",
	})
)

// ObserveAICall records one adapter operation, retries included.
func ObserveAICall(operation, outcome string, elapsed time.Duration) {
	aiCalls.WithLabelValues(operation, outcome).Inc()
	aiLatency.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func SessionEvent(event string) {
	sessionEvents.WithLabelValues(event).Inc()
}

func QuestionsGenerated(n int) {
	questionsGenerated.Add(float64(n))
}

func UnmatchedQuestionScore() {
	unmatchedScores.Inc()
}

func StaleStartsReset(n int64) {
	staleStartsReset.Add(float64(n))
}
