package model

import (
	"math"
	"time"
)

// Missing returns the sentinel used for absent values. Cleaned datasets
// contain no missing values in retained columns.
func Missing() float64 { return math.NaN() }

// IsMissing reports whether v is the missing sentinel.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// Column holds one named hourly series plus a per-row imputed mask.
// Values and Imputed are always the same length as the dataset.
type Column struct {
	Name    string
	Values  []float64
	Imputed []bool
}

// MissingCount returns the number of missing values in the column.
func (c *Column) MissingCount() int {
	n := 0
	for _, v := range c.Values {
		if IsMissing(v) {
			n++
		}
	}
	return n
}

// MaxObserved returns the largest non-missing value, or 0 if every value is missing.
func (c *Column) MaxObserved() float64 {
	max := 0.0
	for _, v := range c.Values {
		if !IsMissing(v) && v > max {
			max = v
		}
	}
	return max
}

// Dataset is an ordered hourly table: one timestamp per row and one Column
// per retained numeric field. Row order never changes after load.
type Dataset struct {
	Times   []time.Time
	columns []*Column
	byName  map[string]*Column
}

// NewDataset creates an empty dataset for the given timestamps.
func NewDataset(times []time.Time) *Dataset {
	return &Dataset{Times: times, byName: make(map[string]*Column)}
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.Times) }

// AddColumn appends a column. Values length must match the row count; the
// imputed mask is allocated zeroed.
func (d *Dataset) AddColumn(name string, values []float64) *Column {
	col := &Column{Name: name, Values: values, Imputed: make([]bool, len(values))}
	d.columns = append(d.columns, col)
	d.byName[name] = col
	return col
}

// Column returns the named column, or nil if absent.
func (d *Dataset) Column(name string) *Column { return d.byName[name] }

// Columns returns all columns in load order.
func (d *Dataset) Columns() []*Column { return d.columns }

// ColumnNames returns the column names in load order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
	}
	return names
}

// DropColumn removes the named column, preserving the order of the rest.
// It reports whether the column existed.
func (d *Dataset) DropColumn(name string) bool {
	if _, ok := d.byName[name]; !ok {
		return false
	}
	delete(d.byName, name)
	for i, c := range d.columns {
		if c.Name == name {
			d.columns = append(d.columns[:i], d.columns[i+1:]...)
			break
		}
	}
	return true
}

// Sources returns the generation-source columns present in the dataset, in
// load order.
func (d *Dataset) Sources() []*Column {
	var out []*Column
	for _, c := range d.columns {
		if IsGenerationSource(c.Name) {
			out = append(out, c)
		}
	}
	return out
}

// Series extracts the named column as a value slice. The slice aliases the
// column storage; callers that mutate it mutate the dataset.
func (d *Dataset) Series(name string) []float64 {
	c := d.byName[name]
	if c == nil {
		return nil
	}
	return c.Values
}
