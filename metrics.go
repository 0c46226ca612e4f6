package resumably

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resumably_client",
			Name:      "cache_hits_total",
			Help:      "Reads served from a fresh cache entry.",
		},
		[]string{"key"},
	)

	cacheRefetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resumably_client",
			Name:      "cache_refetch_total",
			Help:      "Reads that triggered a gateway fetch (absent or stale entry).",
		},
		[]string{"key"},
	)

	sessionRevokedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "resumably_client",
			Name:      "session_revoked_total",
			Help:      "Forced teardowns caused by an unauthorized backend reply.",
		},
	)

	pipelineOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resumably_client",
			Name:      "pipeline_ops_total",
			Help:      "Intake pipeline operations by stage and outcome.",
		},
		[]string{"stage", "outcome"},
	)
)

func recordPipelineOp(stage string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	pipelineOpsTotal.WithLabelValues(stage, outcome).Inc()
}
