package command

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts what a Runner executes.
type Metrics struct {
	commandsTotal       *prometheus.CounterVec
	duplicateRidesTotal prometheus.Counter
	skippedLinesTotal   prometheus.Counter
	tripUpdatesTotal    *prometheus.CounterVec
	pendingRides        prometheus.Gauge
}

// NewMetrics creates the runner metrics and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		commandsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gatortaxi",
			Name:      "commands_total",
			Help:      "Total number of commands executed, by operation.",
		}, []string{"op"}),
		duplicateRidesTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: "gatortaxi",
			Name:      "duplicate_rides_total",
			Help:      "Total number of inserts rejected because the ride was already pending.",
		}),
		skippedLinesTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: "gatortaxi",
			Name:      "skipped_lines_total",
			Help:      "Total number of input lines that could not be parsed.",
		}),
		tripUpdatesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gatortaxi",
			Name:      "trip_updates_total",
			Help:      "Total number of trip updates, by outcome.",
		}, []string{"outcome"}),
		pendingRides: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "gatortaxi",
			Name:      "pending_rides",
			Help:      "Number of rides waiting to be dispatched.",
		}),
	}
}
