// Package export writes cleaned datasets and decomposition results in CSV
// and JSON form for downstream visualization and reporting.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/aherrada/gridclean/core/clean"
	"github.com/aherrada/gridclean/core/decompose"
	"github.com/aherrada/gridclean/core/model"
)

// WriteReportJSON encodes the cleaning report with indentation for human
// inspection.
func WriteReportJSON(w io.Writer, rep *clean.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// WriteDatasetCSV writes the cleaned dataset with a time column followed by
// every retained column in load order. Missing values (unfilled boundary
// gaps) are written as empty cells.
func WriteDatasetCSV(w io.Writer, ds *model.Dataset) error {
	cw := csv.NewWriter(w)
	header := append([]string{model.TimeColumn}, ds.ColumnNames()...)
	if err := cw.Write(header); err != nil {
		return err
	}
	cols := ds.Columns()
	rec := make([]string, len(header))
	for i := 0; i < ds.Len(); i++ {
		rec[0] = ds.Times[i].Format(time.RFC3339)
		for j, col := range cols {
			rec[j+1] = formatValue(col.Values[i])
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Cell pairs a value with its provenance so consumers can distinguish
// observed values from synthesized ones.
type Cell struct {
	Value   *float64 `json:"value"`
	Imputed bool     `json:"imputed,omitempty"`
}

type datasetRow struct {
	Time   time.Time       `json:"time"`
	Values map[string]Cell `json:"values"`
}

// WriteDatasetJSON streams the dataset as one JSON array of rows, each cell
// carrying its imputed flag. Missing values are encoded as null.
func WriteDatasetJSON(w io.Writer, ds *model.Dataset) error {
	enc := json.NewEncoder(w)
	rows := make([]datasetRow, ds.Len())
	cols := ds.Columns()
	for i := range rows {
		vals := make(map[string]Cell, len(cols))
		for _, col := range cols {
			cell := Cell{Imputed: col.Imputed[i]}
			if v := col.Values[i]; !model.IsMissing(v) {
				vv := v
				cell.Value = &vv
			}
			vals[col.Name] = cell
		}
		rows[i] = datasetRow{Time: ds.Times[i], Values: vals}
	}
	return enc.Encode(rows)
}

// WriteDecompositionCSV writes time, observed, trend, seasonal and residual
// columns. Undefined boundary positions are written as empty cells, never
// zero.
func WriteDecompositionCSV(w io.Writer, times []time.Time, observed []float64, res *decompose.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "observed", "trend", "seasonal", "residual"}); err != nil {
		return err
	}
	for i := range observed {
		rec := []string{
			times[i].Format(time.RFC3339),
			formatValue(observed[i]),
			"",
			formatValue(res.Seasonal[i]),
			"",
		}
		if res.Defined[i] {
			rec[2] = formatValue(res.Trend[i])
			rec[4] = formatValue(res.Residual[i])
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type decompositionDoc struct {
	Period   int        `json:"period"`
	Trend    []*float64 `json:"trend"`
	Seasonal []float64  `json:"seasonal"`
	Residual []*float64 `json:"residual"`
}

// WriteDecompositionJSON encodes the result with nulls at undefined
// positions.
func WriteDecompositionJSON(w io.Writer, res *decompose.Result) error {
	doc := decompositionDoc{
		Period:   res.Period,
		Trend:    maskedSlice(res.Trend, res.Defined),
		Seasonal: res.Seasonal,
		Residual: maskedSlice(res.Residual, res.Defined),
	}
	return json.NewEncoder(w).Encode(doc)
}

func maskedSlice(vals []float64, defined []bool) []*float64 {
	out := make([]*float64, len(vals))
	for i, v := range vals {
		if defined[i] {
			vv := v
			out[i] = &vv
		}
	}
	return out
}

func formatValue(v float64) string {
	if model.IsMissing(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
