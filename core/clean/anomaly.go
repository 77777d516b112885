package clean

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/aherrada/gridclean/core/model"
)

// rowTotals sums the generation-source columns per row, skipping missing
// cells. Rows with no present source at all yield a missing total and are
// excluded from the outlier distribution.
func rowTotals(ds *model.Dataset) []float64 {
	sources := ds.Sources()
	totals := make([]float64, ds.Len())
	for i := range totals {
		sum := 0.0
		present := false
		for _, col := range sources {
			if v := col.Values[i]; !model.IsMissing(v) {
				sum += v
				present = true
			}
		}
		if present {
			totals[i] = sum
		} else {
			totals[i] = model.Missing()
		}
	}
	return totals
}

// lowCutoff returns Q1 - k*IQR over the present totals. With no present
// totals at all there is no distribution to test against and nothing can be
// an outlier.
func lowCutoff(totals []float64, k float64) float64 {
	present := make([]float64, 0, len(totals))
	for _, v := range totals {
		if !model.IsMissing(v) {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		return math.Inf(-1)
	}
	sort.Float64s(present)
	q1 := stat.Quantile(0.25, stat.Empirical, present, nil)
	q3 := stat.Quantile(0.75, stat.Empirical, present, nil)
	return q1 - k*(q3-q1)
}

// correctAnomalies nulls zero cells in rows whose total generation is an
// extreme low outlier, provided at least one sibling source in the same row
// is clearly active. Both conditions must hold: a legitimate zero-output
// hour (solar at night) never sits in an outlier row alone, and an outlier
// row with every source near zero is a genuine system-wide low, not a
// recording dropout.
func (c *Cleaner) correctAnomalies(ds *model.Dataset) []Correction {
	totals := rowTotals(ds)
	cutoff := lowCutoff(totals, c.cfg.IQRK)
	sources := ds.Sources()

	var out []Correction
	for i, total := range totals {
		if model.IsMissing(total) || total >= cutoff {
			continue
		}
		active := false
		for _, col := range sources {
			if v := col.Values[i]; !model.IsMissing(v) && v >= c.cfg.ActivityFloorMW {
				active = true
				break
			}
		}
		if !active {
			continue
		}
		for _, col := range sources {
			if col.Values[i] != 0 {
				continue
			}
			col.Values[i] = model.Missing()
			corr := Correction{
				Column:   col.Name,
				Row:      i,
				Time:     ds.Times[i],
				RowTotal: total,
				Cutoff:   cutoff,
			}
			out = append(out, corr)
			c.publish(corr)
		}
	}
	return out
}
