// Package decompose implements classical additive seasonal decomposition of
// a complete, evenly sampled series.
//
// Algorithm:
//  1. Trend: centered moving average of window size period; the symmetric
//     two-pass form is used for even periods.
//  2. Seasonal: detrended values averaged by phase position, normalized to
//     mean zero over one cycle, tiled across the series.
//  3. Residual: observed - trend - seasonal.
//
// Trend and residual are undefined within floor(period/2) positions of either
// end; those slots hold NaN and Defined reports false for them.
package decompose

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrMissingValues is returned when the input series contains the missing
// sentinel. Decomposition requires a cleaned series.
var ErrMissingValues = errors.New("series contains missing values")

// InsufficientDataError is returned when the series is too short to form one
// full centered window plus one cycle for seasonal averaging.
type InsufficientDataError struct {
	Length int
	Period int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("series length %d is below 2x period %d", e.Length, e.Period)
}

// Result holds the three components aligned index-for-index with the input.
// Where Defined[i] is false, Trend[i] and Residual[i] are NaN and must not be
// used; Seasonal is defined everywhere.
type Result struct {
	Trend    []float64
	Seasonal []float64
	Residual []float64
	Defined  []bool
	Period   int
}

// Decompose splits observed into trend, seasonal and residual components
// using the given samples-per-cycle period.
func Decompose(observed []float64, period int) (*Result, error) {
	if period < 2 {
		return nil, fmt.Errorf("period must be at least 2, got %d", period)
	}
	n := len(observed)
	if n < 2*period {
		return nil, &InsufficientDataError{Length: n, Period: period}
	}
	for _, v := range observed {
		if math.IsNaN(v) {
			return nil, ErrMissingValues
		}
	}

	trend, defined := centeredMovingAverage(observed, period)

	detrended := make([]float64, n)
	for i := range detrended {
		if defined[i] {
			detrended[i] = observed[i] - trend[i]
		} else {
			detrended[i] = math.NaN()
		}
	}

	cycle := phaseMeans(detrended, period)
	seasonal := make([]float64, n)
	for i := range seasonal {
		seasonal[i] = cycle[i%period]
	}

	residual := make([]float64, n)
	for i := range residual {
		if defined[i] {
			residual[i] = observed[i] - trend[i] - seasonal[i]
		} else {
			residual[i] = math.NaN()
		}
	}

	return &Result{
		Trend:    trend,
		Seasonal: seasonal,
		Residual: residual,
		Defined:  defined,
		Period:   period,
	}, nil
}

// centeredMovingAverage computes the trend component. For odd periods this
// is a plain centered mean; for even periods the half-sample shift is
// balanced by half-weighting the two outermost window values.
func centeredMovingAverage(x []float64, period int) (trend []float64, defined []bool) {
	n := len(x)
	half := period / 2
	trend = make([]float64, n)
	defined = make([]bool, n)
	for i := range trend {
		trend[i] = math.NaN()
	}
	if period%2 == 1 {
		for i := half; i < n-half; i++ {
			trend[i] = floats.Sum(x[i-half:i+half+1]) / float64(period)
			defined[i] = true
		}
		return trend, defined
	}
	for i := half; i < n-half; i++ {
		sum := 0.5*x[i-half] + 0.5*x[i+half]
		sum += floats.Sum(x[i-half+1 : i+half])
		trend[i] = sum / float64(period)
		defined[i] = true
	}
	return trend, defined
}

// phaseMeans averages the defined detrended values by index mod period and
// normalizes the cycle to mean zero.
func phaseMeans(detrended []float64, period int) []float64 {
	sums := make([]float64, period)
	counts := make([]int, period)
	for i, v := range detrended {
		if math.IsNaN(v) {
			continue
		}
		sums[i%period] += v
		counts[i%period]++
	}
	cycle := make([]float64, period)
	for p := range cycle {
		if counts[p] > 0 {
			cycle[p] = sums[p] / float64(counts[p])
		}
	}
	mean := floats.Sum(cycle) / float64(period)
	for p := range cycle {
		cycle[p] -= mean
	}
	return cycle
}
