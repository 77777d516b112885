// Package app wires the cleaning and decomposition pipeline from the
// configuration and runs it end to end.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/aherrada/gridclean/config"
	"github.com/aherrada/gridclean/core/clean"
	"github.com/aherrada/gridclean/core/decompose"
	coremetrics "github.com/aherrada/gridclean/core/metrics"
	"github.com/aherrada/gridclean/core/model"
	"github.com/aherrada/gridclean/infra/logger"
	"github.com/aherrada/gridclean/infra/metrics"
	"github.com/aherrada/gridclean/internal/eventbus"
	"github.com/aherrada/gridclean/pkg/export"
)

// Service orchestrates the cleaner, the per-source decomposers and the
// observability sinks.
type Service struct {
	cfg     *config.Config
	cleaner *clean.Cleaner
	bus     *eventbus.Bus
	sink    coremetrics.MetricsSink
	log     logger.Logger
	events  atomic.Int64
	drained chan struct{}
}

// RunResult collects the artifacts of one pipeline run.
type RunResult struct {
	Dataset        *model.Dataset
	Report         *clean.Report
	Decompositions map[string]*decompose.Result
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")
	bus := eventbus.New()

	sink, err := metrics.New(cfg.Metrics)
	if err != nil {
		return nil, err
	}
	cleaner, err := clean.NewCleaner(cfg.Cleaning, logg, bus)
	if err != nil {
		return nil, fmt.Errorf("cleaner: %w", err)
	}
	svc := &Service{cfg: cfg, cleaner: cleaner, bus: bus, sink: sink, log: logg, drained: make(chan struct{})}
	go svc.observe(bus.Subscribe())
	return svc, nil
}

// observe drains cleaning decisions off the bus as the pipeline runs and
// surfaces them as structured debug logs. It exits once the bus is closed.
func (s *Service) observe(sub <-chan eventbus.Event) {
	defer close(s.drained)
	for ev := range sub {
		switch e := ev.(type) {
		case clean.ColumnDropped:
			s.log.Debugw("dead column dropped", map[string]any{
				"column": e.Column, "frac_present": e.FracPresent,
			})
		case clean.Correction:
			s.log.Debugw("anomalous zero nulled", map[string]any{
				"column": e.Column, "row": e.Row, "row_total": e.RowTotal,
			})
		case clean.GapFill:
			s.log.Debugw("gap filled", map[string]any{
				"column": e.Column, "start": e.Start, "length": e.Length,
			})
		default:
			continue
		}
		s.events.Add(1)
	}
}

// Run cleans the input file, decomposes every selected source and writes the
// artifacts to the output directory. Boundary gaps do not abort the run: the
// affected columns keep their missing edges, are skipped by the decomposer,
// and the joined error is reported on the result.
func (s *Service) Run(ctx context.Context) (*RunResult, error) {
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	ds, rep, err := s.cleaner.LoadAndClean(s.cfg.Input)
	var boundaryErr error
	if err != nil {
		var bge *clean.BoundaryGapError
		if !errors.As(err, &bge) {
			return nil, err
		}
		boundaryErr = err
		s.log.Warnf("boundary gaps left unfilled: %v", err)
	}

	if err := s.sink.RecordCleaningResult(coremetrics.FromReport(rep)); err != nil {
		s.log.Errorf("record cleaning result: %v", err)
	}
	if gr, ok := s.sink.(coremetrics.GapRecorder); ok {
		if err := gr.RecordGapFills(rep.Fills); err != nil {
			s.log.Errorf("record gap fills: %v", err)
		}
	}
	if dw, ok := s.sink.(coremetrics.DatasetWriter); ok {
		if err := dw.WriteDataset(ctx, ds); err != nil {
			s.log.Errorf("write dataset to sink: %v", err)
		}
	}

	decomps := s.decomposeSources(ctx, ds)

	if err := s.writeArtifacts(ds, rep, decomps); err != nil {
		return nil, err
	}

	res := &RunResult{Dataset: ds, Report: rep, Decompositions: decomps}
	return res, boundaryErr
}

// decomposeSources runs the decomposer over each selected column with a
// bounded worker pool. Columns never alias, so workers share nothing but the
// results map.
func (s *Service) decomposeSources(ctx context.Context, ds *model.Dataset) map[string]*decompose.Result {
	names := s.cfg.Decompose.Sources
	if len(names) == 0 {
		for _, col := range ds.Sources() {
			names = append(names, col.Name)
		}
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out = make(map[string]*decompose.Result, len(names))
		sem = make(chan struct{}, s.cfg.Decompose.Workers)
	)
	for _, name := range names {
		series := ds.Series(name)
		if series == nil {
			s.log.Warnf("decompose: column %q not in cleaned dataset", name)
			continue
		}
		select {
		case <-ctx.Done():
			wg.Wait()
			return out
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(name string, series []float64) {
			defer wg.Done()
			defer func() { <-sem }()
			res, err := decompose.Decompose(series, s.cfg.Decompose.Period)
			if err != nil {
				s.log.Warnf("decompose %s: %v", name, err)
				return
			}
			mu.Lock()
			out[name] = res
			mu.Unlock()
		}(name, series)
	}
	wg.Wait()
	return out
}

func (s *Service) writeArtifacts(ds *model.Dataset, rep *clean.Report, decomps map[string]*decompose.Result) error {
	dir := s.cfg.OutputDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, "cleaned.csv"), func(f *os.File) error {
		return export.WriteDatasetCSV(f, ds)
	}); err != nil {
		return fmt.Errorf("write cleaned.csv: %w", err)
	}
	if err := writeFile(filepath.Join(dir, "report.json"), func(f *os.File) error {
		return export.WriteReportJSON(f, rep)
	}); err != nil {
		return fmt.Errorf("write report.json: %w", err)
	}
	for name, res := range decomps {
		path := filepath.Join(dir, "decomposition_"+sanitize(name)+".csv")
		if err := writeFile(path, func(f *os.File) error {
			return export.WriteDecompositionCSV(f, ds.Times, ds.Series(name), res)
		}); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func sanitize(name string) string {
	return strings.ReplaceAll(name, ".", "_")
}

// Close releases the event bus, waits for the observer to drain it, and
// closes any closable sinks.
func (s *Service) Close() error {
	s.bus.Close()
	<-s.drained
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
	return nil
}
