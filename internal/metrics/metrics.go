package metrics

import (
	"strconv"
	"time"

	"github.com/limaJavier/alignments/pkg/model"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records search activity, it implements model.SearchObserver
type Metrics struct {
	// TrialsTotal counts heuristic trials per slot count and outcome
	TrialsTotal *prometheus.CounterVec
	// SearchSeconds tracks the duration of successful searches
	SearchSeconds *prometheus.HistogramVec
	// Score of the last returned solution
	Score prometheus.Gauge
	// Slots of the last returned solution
	Slots prometheus.Gauge
	// Drops of the last returned solution per reason
	Drops *prometheus.GaugeVec
}

var _ model.SearchObserver = (*Metrics)(nil)

// New creates the metrics and registers them with registerer
func New(registerer prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		TrialsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alignments_trials_total",
				Help: "Total number of heuristic trials run",
			},
			[]string{"slots", "outcome"},
		),
		SearchSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "alignments_search_seconds",
				Help:    "Duration of successful searches",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			[]string{"strategy"},
		),
		Score: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "alignments_score",
			Help: "Placement score of the last solution",
		}),
		Slots: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "alignments_slots",
			Help: "Number of alignments of the last solution",
		}),
		Drops: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "alignments_drops",
				Help: "Unscheduled student choices of the last solution",
			},
			[]string{"reason"},
		),
	}

	registerer.MustRegister(
		metrics.TrialsTotal,
		metrics.SearchSeconds,
		metrics.Score,
		metrics.Slots,
		metrics.Drops,
	)
	return metrics
}

func (metrics *Metrics) ObserveTrial(slots int, succeeded bool) {
	outcome := "failed"
	if succeeded {
		outcome = "succeeded"
	}
	metrics.TrialsTotal.WithLabelValues(strconv.Itoa(slots), outcome).Inc()
}

func (metrics *Metrics) ObserveSolution(strategy model.Strategy, solution model.Solution, elapsed time.Duration) {
	metrics.SearchSeconds.WithLabelValues(string(strategy)).Observe(elapsed.Seconds())
	metrics.Score.Set(float64(solution.Score))
	metrics.Slots.Set(float64(solution.Slots()))

	drops := map[model.DropReason]int{model.MajorConflict: 0, model.ScheduleConflict: 0}
	for _, drop := range solution.Drops {
		drops[drop.Reason]++
	}
	for reason, count := range drops {
		metrics.Drops.WithLabelValues(string(reason)).Set(float64(count))
	}
}

// WriteTextfile dumps every metric gathered by gatherer in the text exposition format, so a node-exporter
// textfile collector can pick up the results of a batch run
func WriteTextfile(path string, gatherer prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, gatherer)
}
