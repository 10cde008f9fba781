package arena

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	MatchesStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "arena_matches_started_total",
			Help: "Matches that entered the commit phase",
		},
	)
	MatchesFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arena_matches_finished_total",
			Help: "Matches finished, by reason",
		},
		[]string{"reason"},
	)
	RoundsResolved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arena_rounds_resolved_total",
			Help: "Rounds resolved, by outcome",
		},
		[]string{"outcome"},
	)
	ActiveMatches = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "arena_active_matches",
			Help: "Matches currently in flight",
		},
	)
)

func init() {
	prometheus.MustRegister(MatchesStarted)
	prometheus.MustRegister(MatchesFinished)
	prometheus.MustRegister(RoundsResolved)
	prometheus.MustRegister(ActiveMatches)
}
