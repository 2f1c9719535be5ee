package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SearchCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wiki_searches_total",
			Help: "Total number of search queries served",
		},
		[]string{"kind"}, // "query" or "browse" (empty query)
	)

	RecommendationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wiki_recommendations_total",
			Help: "Total number of recommendation lists computed",
		},
		[]string{"content_type"},
	)

	ChatFallbackCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wiki_chat_fallbacks_total",
			Help: "Chatbot messages that matched no rule",
		},
	)

	IndexBuildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wiki_index_build_seconds",
			Help:    "Duration of search index construction",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 2},
		},
	)
)

func Init() {
	prometheus.MustRegister(SearchCounter)
	prometheus.MustRegister(RecommendationCounter)
	prometheus.MustRegister(ChatFallbackCounter)
	prometheus.MustRegister(IndexBuildDuration)
}
