package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "agri"

var (
	RemoteFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_fallbacks_total",
			Help:      "Remote provider calls answered with a static fallback, by provider",
		},
		[]string{"provider"},
	)

	ScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scans_total",
			Help:      "Crop scans by final workflow state",
		},
		[]string{"status"},
	)

	AdviceTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "advice_turns_total",
			Help:      "Persisted advisory turns by answer source",
		},
		[]string{"source"},
	)

	ForumLikesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forum_likes_total",
			Help:      "Forum post likes applied",
		},
	)
)
