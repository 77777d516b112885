package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aherrada/gridclean/core/clean"
	coremetrics "github.com/aherrada/gridclean/core/metrics"
)

// PromSink records cleaning runs in Prometheus metrics.
type PromSink struct {
	rows      prometheus.Counter
	corrected prometheus.Counter
	imputed   prometheus.Counter
	boundary  prometheus.Counter
	gapLength *prometheus.HistogramVec
	duration  prometheus.Histogram
}

// NewPromSink registers cleaning metrics on the provided Prometheus
// registerer. If reg is nil, the default registerer is used. If the
// collectors are already registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		rows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cleaning_rows_total",
			Help: "Total number of rows processed by cleaning runs",
		}),
		corrected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cleaning_anomalies_corrected_total",
			Help: "Total number of anomalous cells nulled before interpolation",
		}),
		imputed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cleaning_values_imputed_total",
			Help: "Total number of values filled by linear interpolation",
		}),
		boundary: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cleaning_boundary_gaps_total",
			Help: "Total number of gaps left unfilled at series boundaries",
		}),
		gapLength: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cleaning_gap_length_hours",
			Help:    "Length of interpolated gaps in hours",
			Buckets: []float64{1, 2, 4, 8, 24, 72, 168},
		}, []string{"column"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cleaning_duration_seconds",
			Help:    "Wall time of cleaning runs",
			Buckets: prometheus.DefBuckets,
		}),
	}
	for _, c := range []prometheus.Collector{s.rows, s.corrected, s.imputed, s.boundary, s.gapLength, s.duration} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return s, nil
}

// RecordCleaningResult increments the run counters.
func (s *PromSink) RecordCleaningResult(res coremetrics.CleaningResult) error {
	s.rows.Add(float64(res.Rows))
	s.corrected.Add(float64(res.AnomaliesCorrected))
	s.imputed.Add(float64(res.ValuesImputed))
	s.boundary.Add(float64(res.BoundaryGaps))
	s.duration.Observe(res.Duration.Seconds())
	return nil
}

// RecordGapFills observes the gap length histogram.
func (s *PromSink) RecordGapFills(fills []clean.GapFill) error {
	for _, f := range fills {
		s.gapLength.WithLabelValues(f.Column).Observe(float64(f.Length))
	}
	return nil
}
