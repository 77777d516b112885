package metrics

import (
	"context"
	"time"

	"github.com/aherrada/gridclean/core/clean"
	"github.com/aherrada/gridclean/core/model"
)

// CleaningResult summarizes one cleaning run for observability purposes.
type CleaningResult struct {
	RunID              string
	Rows               int
	ColumnsDropped     int
	AnomaliesCorrected int
	ValuesImputed      int
	BoundaryGaps       int
	Duration           time.Duration
	Time               time.Time
}

// FromReport builds a CleaningResult from a cleaning report.
func FromReport(rep *clean.Report) CleaningResult {
	return CleaningResult{
		RunID:              rep.RunID,
		Rows:               rep.Rows,
		ColumnsDropped:     len(rep.Dropped),
		AnomaliesCorrected: len(rep.Corrections),
		ValuesImputed:      rep.ValuesImputed,
		BoundaryGaps:       len(rep.BoundaryGaps),
		Duration:           rep.Duration,
		Time:               rep.StartedAt,
	}
}

// MetricsSink records cleaning runs for observability purposes.
type MetricsSink interface {
	RecordCleaningResult(res CleaningResult) error
}

// GapRecorder is implemented by sinks that track individual gap fills.
type GapRecorder interface {
	RecordGapFills(fills []clean.GapFill) error
}

// DatasetWriter is implemented by sinks that can store the cleaned series
// themselves, not just run summaries.
type DatasetWriter interface {
	WriteDataset(ctx context.Context, ds *model.Dataset) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordCleaningResult(CleaningResult) error { return nil }
func (NopSink) RecordGapFills([]clean.GapFill) error      { return nil }
