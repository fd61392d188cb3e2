package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Counter for test starts
	testsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_tests_started_total",
			Help: "Total number of test start requests",
		},
		[]string{"status"}, // status: success/rejected/failure
	)

	// Counter for scored submissions
	testsScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_tests_scored_total",
			Help: "Total number of scored submissions",
		},
		[]string{"status"}, // status: success/failure
	)

	// Histogram for submission processing time
	scoringDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assessment_scoring_duration_seconds",
			Help:    "Time spent scoring and persisting a submission",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"},
	)

	// Counter for best-effort writes that did not land
	persistenceFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assessment_persistence_failures_total",
			Help: "Total number of failed answer and snapshot writes",
		},
	)

	// Counter for bulk-imported questions
	importedQuestions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assessment_questions_imported_total",
			Help: "Total number of questions created through bulk import",
		},
	)

	// Gauge for open test sessions
	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "assessment_active_sessions_current",
			Help: "Current number of open test sessions",
		},
	)
)
