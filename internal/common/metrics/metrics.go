// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DocumentsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitch_documents_generated_total",
			Help: "Total number of pitch documents generated",
		},
		[]string{"level"},
	)

	DocumentsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitch_documents_failed_total",
			Help: "Total number of pitch generation failures",
		},
		[]string{"level", "error_code"},
	)

	DocumentBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "pitch_document_build_duration_seconds",
			Help: "Duration of document assembly in seconds",
		},
		[]string{"level"},
	)

	QuotaRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pitch_quota_rejections_total",
			Help: "Number of requests rejected by the monthly quota",
		},
	)

	OutreachSends = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitch_outreach_sends_total",
			Help: "Total outreach messages delivered by channel",
		},
		[]string{"channel"},
	)
)
