package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aherrada/gridclean/core/clean"
	coremetrics "github.com/aherrada/gridclean/core/metrics"
	"github.com/aherrada/gridclean/core/model"
)

type recordingSink struct {
	results int
	fills   int
	err     error
}

func (r *recordingSink) RecordCleaningResult(coremetrics.CleaningResult) error {
	r.results++
	return r.err
}

func (r *recordingSink) RecordGapFills(fills []clean.GapFill) error {
	r.fills += len(fills)
	return r.err
}

type resultOnlySink struct{ results int }

func (r *resultOnlySink) RecordCleaningResult(coremetrics.CleaningResult) error {
	r.results++
	return nil
}

type datasetSink struct {
	resultOnlySink
	datasets int
}

func (d *datasetSink) WriteDataset(context.Context, *model.Dataset) error {
	d.datasets++
	return nil
}

func TestMultiSinkFanout(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{}
	m := NewMultiSink(a, b)
	if err := m.RecordCleaningResult(coremetrics.CleaningResult{}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if a.results != 1 || b.results != 1 {
		t.Errorf("fanout results = %d, %d", a.results, b.results)
	}
	if err := m.RecordGapFills([]clean.GapFill{{}, {}}); err != nil {
		t.Fatalf("fills: %v", err)
	}
	if a.fills != 2 || b.fills != 2 {
		t.Errorf("fanout fills = %d, %d", a.fills, b.fills)
	}
}

func TestMultiSinkSkipsNonGapRecorders(t *testing.T) {
	a := &resultOnlySink{}
	m := NewMultiSink(a)
	if err := m.RecordGapFills([]clean.GapFill{{}}); err != nil {
		t.Fatalf("fills: %v", err)
	}
}

func TestMultiSinkWriteDatasetForwarding(t *testing.T) {
	capable := &datasetSink{}
	plain := &resultOnlySink{}
	m := NewMultiSink(capable, plain)

	ds := model.NewDataset([]time.Time{time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)})
	ds.AddColumn("generation.nuclear", []float64{7000})

	if err := m.WriteDataset(context.Background(), ds); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	if capable.datasets != 1 {
		t.Errorf("capable sink writes = %d", capable.datasets)
	}
}

func TestMultiSinkFirstError(t *testing.T) {
	wantErr := errors.New("boom")
	a := &recordingSink{err: wantErr}
	b := &recordingSink{}
	m := NewMultiSink(a, b)
	if err := m.RecordCleaningResult(coremetrics.CleaningResult{}); !errors.Is(err, wantErr) {
		t.Fatalf("expected error, got %v", err)
	}
	if b.results != 0 {
		t.Errorf("second sink should not be reached after error")
	}
}
