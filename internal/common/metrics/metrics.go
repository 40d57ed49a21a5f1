// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
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
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of job processing in seconds",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	LoanDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loan_decisions_total",
			Help: "Eligibility decisions by resulting status",
		},
		[]string{"status"},
	)

	ExtractionFieldMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "document_extraction_field_misses_total",
			Help: "Extracted fields left at their default value, by document type and field",
		},
		[]string{"document_type", "field"},
	)

	OCRFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ocr_failures_total",
			Help: "OCR runs that produced no text, by reason",
		},
		[]string{"reason"},
	)

	FaceVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_face_verifications_total",
			Help: "Video face checks by outcome",
		},
		[]string{"verified"},
	)
)
