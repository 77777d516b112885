package metrics

import (
	"context"

	"github.com/aherrada/gridclean/core/clean"
	coremetrics "github.com/aherrada/gridclean/core/metrics"
	"github.com/aherrada/gridclean/core/model"
)

// MultiSink fans cleaning results out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordCleaningResult forwards the record to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordCleaningResult(res coremetrics.CleaningResult) error {
	for _, s := range m.Sinks {
		if err := s.RecordCleaningResult(res); err != nil {
			return err
		}
	}
	return nil
}

// RecordGapFills forwards gap fills when supported by the sink.
func (m *MultiSink) RecordGapFills(fills []clean.GapFill) error {
	for _, s := range m.Sinks {
		if gr, ok := s.(coremetrics.GapRecorder); ok {
			if err := gr.RecordGapFills(fills); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteDataset forwards the cleaned dataset to sinks that can store it.
func (m *MultiSink) WriteDataset(ctx context.Context, ds *model.Dataset) error {
	for _, s := range m.Sinks {
		if dw, ok := s.(coremetrics.DatasetWriter); ok {
			if err := dw.WriteDataset(ctx, ds); err != nil {
				return err
			}
		}
	}
	return nil
}
