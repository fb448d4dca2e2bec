package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tictactoe"

// Metrics holds the engine and game collectors.
type Metrics struct {
	Searches       prometheus.Counter
	SearchNodes    prometheus.Histogram
	SearchDuration prometheus.Histogram
	GamesFinished  *prometheus.CounterVec
}

// New registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Searches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "searches_total",
			Help:      "Number of computer move searches.",
		}),
		SearchNodes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "search_nodes",
			Help:      "Minimax nodes visited per search.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		SearchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "search_duration_seconds",
			Help:      "Wall time of a computer move search.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		GamesFinished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "finished_total",
			Help:      "Finished games by outcome.",
		}, []string{"outcome"}),
	}
}
