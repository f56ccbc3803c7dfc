// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PipelineRunsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_runs_completed_total",
			Help: "Total number of pipeline runs completed",
		},
		[]string{"status"},
	)

	PipelineRunsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_runs_failed_total",
			Help: "Total number of pipeline runs failed",
		},
		[]string{"stage", "error_code"},
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "pipeline_stage_duration_seconds",
			Help: "Duration of each pipeline stage in seconds",
		},
		[]string{"stage"},
	)

	DocumentsExtracted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "documents_extracted_total",
			Help: "Total number of documents extracted by method",
		},
		[]string{"method"},
	)

	AlignmentScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "crosswalk_alignment_score",
			Help:    "Distribution of per-requirement alignment scores",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	GapFindingsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gap_findings",
			Help: "Number of gap findings by severity in the last run",
		},
		[]string{"severity"},
	)
)
