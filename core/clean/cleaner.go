// Package clean loads the raw hourly generation CSV and turns it into a
// complete dataset: dead columns dropped, recording dropouts nulled, and
// interior gaps linearly interpolated. Every decision is published on the
// event bus and collected into a Report.
package clean

import (
	"time"

	"github.com/google/uuid"

	"github.com/aherrada/gridclean/core/logger"
	"github.com/aherrada/gridclean/core/model"
	"github.com/aherrada/gridclean/internal/eventbus"
)

// Cleaner applies the cleaning pipeline to loaded datasets.
type Cleaner struct {
	cfg Config
	log logger.Logger
	bus eventbus.EventBus
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}

// NewCleaner creates a Cleaner. log and bus may be nil.
func NewCleaner(cfg Config, log logger.Logger, bus eventbus.EventBus) (*Cleaner, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = nopLogger{}
	}
	return &Cleaner{cfg: cfg, log: log, bus: bus}, nil
}

func (c *Cleaner) publish(ev eventbus.Event) {
	if c.bus != nil {
		c.bus.Publish(ev)
	}
}

// LoadAndClean loads the CSV at path and cleans it in one pass. On boundary
// gaps the dataset and report are returned together with the joined
// BoundaryGapError; every other error returns a nil dataset.
func (c *Cleaner) LoadAndClean(path string) (*model.Dataset, *Report, error) {
	ds, err := Load(path)
	if err != nil {
		return nil, nil, err
	}
	rep, err := c.Clean(ds)
	return ds, rep, err
}

// Clean runs the pipeline over ds in place: schema check, dead-column drop,
// anomaly correction, gap filling. Rows are never dropped or reordered; the
// returned Report lists every value the pipeline synthesized. Cleaning
// already-clean data is a no-op.
func (c *Cleaner) Clean(ds *model.Dataset) (*Report, error) {
	start := time.Now()
	rep := &Report{
		RunID:     uuid.NewString(),
		Rows:      ds.Len(),
		StartedAt: start,
	}

	for _, name := range c.cfg.RequiredColumns {
		// The time axis lives on the dataset itself, not as a value column.
		if name == model.TimeColumn {
			continue
		}
		if ds.Column(name) == nil {
			return nil, &SchemaError{Column: name}
		}
	}

	rep.Dropped = c.dropDeadColumns(ds)
	rep.Corrections = c.correctAnomalies(ds)

	fills, boundary, err := c.fillGaps(ds)
	rep.Fills = fills
	rep.BoundaryGaps = boundary
	for _, f := range fills {
		rep.ValuesImputed += f.Length
	}
	rep.Duration = time.Since(start)

	c.log.Infof("cleaned %d rows: %d columns dropped, %d cells corrected, %d values imputed, %d boundary gaps",
		rep.Rows, len(rep.Dropped), len(rep.Corrections), rep.ValuesImputed, len(rep.BoundaryGaps))
	return rep, err
}

// dropDeadColumns removes columns that never carry data: fraction of present
// values below epsilon, or no observed value above zero.
func (c *Cleaner) dropDeadColumns(ds *model.Dataset) []ColumnDropped {
	var dropped []ColumnDropped
	n := ds.Len()
	for _, col := range ds.Columns() {
		frac := 1.0
		if n > 0 {
			frac = float64(n-col.MissingCount()) / float64(n)
		}
		max := col.MaxObserved()
		if frac >= c.cfg.DeadColumnEpsilon && max > 0 {
			continue
		}
		dc := ColumnDropped{Column: col.Name, FracPresent: frac, MaxObserved: max}
		dropped = append(dropped, dc)
		c.publish(dc)
	}
	for _, dc := range dropped {
		ds.DropColumn(dc.Column)
	}
	return dropped
}
