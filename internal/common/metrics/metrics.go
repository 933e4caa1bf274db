// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_submissions_total",
			Help: "Total number of submissions by application type and outcome",
		},
		[]string{"application_type", "outcome"},
	)

	SubmissionStatus = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_submission_status_total",
			Help: "Classified internship submissions by status",
		},
		[]string{"status"},
	)

	SubmissionScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "intake_submission_score",
			Help:    "Distribution of internship application scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	SubmissionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "intake_submission_duration_seconds",
			Help: "Duration of submission processing in seconds",
		},
		[]string{"application_type"},
	)

	SinkAppends = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_sink_appends_total",
			Help: "Row appends per destination table and result",
		},
		[]string{"table", "result"},
	)

	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)
)
