// Package metrics provides the Prometheus implementation of the core
// metrics sink.
package metrics

import (
	coremetrics "github.com/epmodel/schedkit/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records schedule engine events in Prometheus metrics.
type PromSink struct {
	expansions  *prometheus.CounterVec
	compactions *prometheus.CounterVec
	patterns    prometheus.Histogram
	entries     prometheus.Histogram
}

// NewPromSink registers engine metrics on the default Prometheus registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	expansions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_expansions_total",
		Help: "Total number of annual schedule expansions",
	}, []string{"schedule"})
	compactions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_compactions_total",
		Help: "Total number of calendar compactions",
	}, []string{"schedule"})
	patterns := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "schedule_compaction_week_patterns",
		Help:    "Distinct week patterns produced per compaction",
		Buckets: prometheus.LinearBuckets(1, 2, 10),
	})
	entries := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "schedule_compaction_timeline_entries",
		Help:    "Timeline entries produced per compaction",
		Buckets: prometheus.LinearBuckets(1, 4, 10),
	})

	if err := reg.Register(expansions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			expansions = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(compactions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			compactions = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(patterns); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			patterns = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(entries); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			entries = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	return &PromSink{
		expansions:  expansions,
		compactions: compactions,
		patterns:    patterns,
		entries:     entries,
	}, nil
}

// RecordExpansion implements the core sink.
func (s *PromSink) RecordExpansion(ev coremetrics.ExpansionEvent) error {
	s.expansions.WithLabelValues(ev.Schedule).Inc()
	return nil
}

// RecordCompaction implements the core sink.
func (s *PromSink) RecordCompaction(ev coremetrics.CompactionEvent) error {
	s.compactions.WithLabelValues(ev.Schedule).Inc()
	s.patterns.Observe(float64(ev.WeekPatterns))
	s.entries.Observe(float64(ev.TimelineEntries))
	return nil
}
