// Package metrics 定义服务的 Prometheus 指标。
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	SuggestionsServed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "social_suggestions_served_total",
			Help: "Count of suggestion list serves",
		},
		[]string{"source"},
	)
	SuggestionLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "social_suggestion_graph_seconds",
			Help:    "Time taken to compute graph suggestions",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2},
		},
		[]string{"source"},
	)
	FollowOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "social_follow_ops_total",
			Help: "Count of follow state mutations",
		},
		[]string{"op", "result"},
	)
	FramesExtracted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "social_frames_extracted_total",
			Help: "Count of filmstrip frame extractions",
		},
		[]string{"result"},
	)
	FilmstripSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "social_filmstrip_sessions",
			Help: "Current number of live filmstrip sessions",
		},
	)
	InboxApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "social_inbox_applied_total",
			Help: "Count of applied inbox events",
		},
		[]string{"result"},
	)
	OutboxPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "social_outbox_published_total",
			Help: "Count of relayed outbox events",
		},
		[]string{"result"},
	)
)

func Init() {
	prometheus.MustRegister(
		SuggestionsServed,
		SuggestionLatency,
		FollowOps,
		FramesExtracted,
		FilmstripSessions,
		InboxApplied,
		OutboxPublished,
	)
}
