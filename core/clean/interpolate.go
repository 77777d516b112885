package clean

import (
	"errors"

	"github.com/aherrada/gridclean/core/model"
)

type missingRun struct {
	start  int
	length int
}

// missingRuns returns the maximal runs of consecutive missing values.
func missingRuns(values []float64) []missingRun {
	var runs []missingRun
	i := 0
	for i < len(values) {
		if !model.IsMissing(values[i]) {
			i++
			continue
		}
		start := i
		for i < len(values) && model.IsMissing(values[i]) {
			i++
		}
		runs = append(runs, missingRun{start: start, length: i - start})
	}
	return runs
}

// fillColumn interpolates every interior missing run of one column in place
// and marks the filled positions as imputed. Runs touching either end have
// no anchor on one side and are returned as boundary gaps, values untouched.
func fillColumn(col *model.Column) (fills, boundary []missingRun) {
	n := len(col.Values)
	for _, r := range missingRuns(col.Values) {
		if r.start == 0 || r.start+r.length == n {
			boundary = append(boundary, r)
			continue
		}
		lo := col.Values[r.start-1]
		hi := col.Values[r.start+r.length]
		step := (hi - lo) / float64(r.length+1)
		for k := 1; k <= r.length; k++ {
			idx := r.start + k - 1
			col.Values[idx] = lo + step*float64(k)
			col.Imputed[idx] = true
		}
		fills = append(fills, r)
	}
	return fills, boundary
}

// fillGaps runs fillColumn over every retained column. The returned error is
// a join of one BoundaryGapError per unfillable run; the dataset is still
// fully filled everywhere else.
func (c *Cleaner) fillGaps(ds *model.Dataset) (fills, boundary []GapFill, err error) {
	var errs []error
	for _, col := range ds.Columns() {
		filled, edges := fillColumn(col)
		for _, r := range filled {
			gf := GapFill{Column: col.Name, Start: r.start, Length: r.length, Time: ds.Times[r.start]}
			fills = append(fills, gf)
			c.publish(gf)
		}
		for _, r := range edges {
			gf := GapFill{Column: col.Name, Start: r.start, Length: r.length, Time: ds.Times[r.start]}
			boundary = append(boundary, gf)
			errs = append(errs, &BoundaryGapError{
				Column: col.Name,
				Start:  r.start,
				Length: r.length,
				AtEnd:  r.start != 0,
			})
		}
	}
	return fills, boundary, errors.Join(errs...)
}
