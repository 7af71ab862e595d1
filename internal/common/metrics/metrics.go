// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuestionsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "questions_generated_total",
			Help: "Total number of question batches generated, by winning tier",
		},
		[]string{"tier"},
	)

	TierFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "question_tier_failures_total",
			Help: "Total number of generation tier failures, by tier and error code",
		},
		[]string{"tier", "error_code"},
	)

	ReportsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reports_generated_total",
			Help: "Total number of transparency reports assembled",
		},
	)

	RenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "report_render_duration_seconds",
			Help: "Duration of PDF document rendering in seconds",
		},
	)

	ReportCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_cache_requests_total",
			Help: "Report payload cache lookups, by outcome",
		},
		[]string{"outcome"},
	)
)
