package clean

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aherrada/gridclean/core/model"
)

// timeLayouts are tried in order when parsing the time column. The raw
// dataset mixes UTC+1 and UTC+2 offset suffixes; both normalize to the same
// UTC instant through the offset-aware layouts.
var timeLayouts = []string{
	"2006-01-02 15:04:05-07:00",
	time.RFC3339,
}

// Load reads the raw CSV into a Dataset. Timestamps are normalized to UTC
// and validated to be strictly increasing and exactly one hour apart. Empty
// cells become the missing sentinel. No cleaning is applied.
func Load(path string) (*model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read is Load over an arbitrary reader.
func Read(r io.Reader) (*model.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	timeIdx := -1
	for i, name := range header {
		if strings.TrimSpace(name) == model.TimeColumn {
			timeIdx = i
			break
		}
	}
	if timeIdx < 0 {
		return nil, &SchemaError{Column: model.TimeColumn}
	}

	var times []time.Time
	values := make([][]float64, len(header))
	row := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}
		if len(rec) <= timeIdx {
			return nil, &ParseError{
				Row: row,
				Err: fmt.Errorf("row has %d fields, time column expected at index %d", len(rec), timeIdx),
			}
		}
		ts, err := parseTimestamp(rec[timeIdx])
		if err != nil {
			return nil, &ParseError{Row: row, Value: rec[timeIdx], Err: err}
		}
		times = append(times, ts)
		for i := range header {
			if i == timeIdx {
				continue
			}
			v := model.Missing()
			if i < len(rec) {
				cell := strings.TrimSpace(rec[i])
				if cell != "" {
					v, err = strconv.ParseFloat(cell, 64)
					if err != nil {
						return nil, fmt.Errorf("row %d column %q: bad number %q: %w", row, header[i], cell, err)
					}
				}
			}
			values[i] = append(values[i], v)
		}
		row++
	}

	if err := validateSequence(times); err != nil {
		return nil, err
	}

	ds := model.NewDataset(times)
	for i, name := range header {
		if i == timeIdx {
			continue
		}
		ds.AddColumn(strings.TrimSpace(name), values[i])
	}
	return ds, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var err error
	for _, layout := range timeLayouts {
		var ts time.Time
		ts, err = time.Parse(layout, raw)
		if err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, err
}

// validateSequence enforces the hourly-series invariant: timestamps strictly
// increasing and spaced by exactly one hour.
func validateSequence(times []time.Time) error {
	for i := 1; i < len(times); i++ {
		if d := times[i].Sub(times[i-1]); d != time.Hour {
			return &ParseError{
				Row:   i,
				Value: times[i].Format(time.RFC3339),
				Err:   fmt.Errorf("expected one hour after %s, got %s", times[i-1].Format(time.RFC3339), d),
			}
		}
	}
	return nil
}
