package notify

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	attemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notify_attempts_total",
			Help: "Individual notification send attempts by target and outcome",
		},
		[]string{"target", "outcome"},
	)

	dispatchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notify_dispatch_total",
			Help: "Notification dispatches (including retries) by target and final outcome",
		},
		[]string{"target", "outcome"},
	)

	dispatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notify_dispatch_duration_seconds",
			Help:    "Wall time of a dispatch including retry waits",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"target"},
	)
)

func outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

func observeAttempt(target string, err error) {
	attemptsTotal.WithLabelValues(target, outcome(err)).Inc()
}

func observeDispatch(target string, err error, elapsed time.Duration) {
	dispatchTotal.WithLabelValues(target, outcome(err)).Inc()
	dispatchDuration.WithLabelValues(target).Observe(elapsed.Seconds())
}
