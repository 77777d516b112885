package export

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/aherrada/gridclean/core/decompose"
	"github.com/aherrada/gridclean/core/model"
)

func exportDataset() *model.Dataset {
	times := []time.Time{
		time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2015, 1, 1, 1, 0, 0, 0, time.UTC),
		time.Date(2015, 1, 1, 2, 0, 0, 0, time.UTC),
	}
	ds := model.NewDataset(times)
	col := ds.AddColumn("generation.gas", []float64{10, 20, model.Missing()})
	col.Imputed[1] = true
	return ds
}

func TestWriteDatasetCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDatasetCSV(&buf, exportDataset()); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d: %q", len(lines), buf.String())
	}
	if lines[0] != "time,generation.gas" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], ",10") {
		t.Errorf("row 1 = %q", lines[1])
	}
	// missing boundary value must be an empty cell, not zero
	if !strings.HasSuffix(lines[3], ",") {
		t.Errorf("row 3 = %q", lines[3])
	}
}

func TestWriteDatasetJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDatasetJSON(&buf, exportDataset()); err != nil {
		t.Fatalf("write: %v", err)
	}
	var rows []struct {
		Time   time.Time       `json:"time"`
		Values map[string]Cell `json:"values"`
	}
	if err := json.Unmarshal(buf.Bytes(), &rows); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d", len(rows))
	}
	if c := rows[1].Values["generation.gas"]; !c.Imputed || c.Value == nil || *c.Value != 20 {
		t.Errorf("imputed cell = %+v", c)
	}
	if c := rows[2].Values["generation.gas"]; c.Value != nil {
		t.Errorf("missing cell should be null, got %+v", c)
	}
}

func TestWriteDecompositionCSVBoundaryCells(t *testing.T) {
	observed := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	res, err := decompose.Decompose(observed, 3)
	if err != nil {
		t.Fatalf("decompose: %v", err)
	}
	times := make([]time.Time, len(observed))
	start := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range times {
		times[i] = start.Add(time.Duration(i) * time.Hour)
	}
	var buf bytes.Buffer
	if err := WriteDecompositionCSV(&buf, times, observed, res); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	first := strings.Split(lines[1], ",")
	if first[2] != "" || first[4] != "" {
		t.Errorf("boundary trend/residual must be empty, got %q", lines[1])
	}
	interior := strings.Split(lines[2], ",")
	if interior[2] == "" || interior[4] == "" {
		t.Errorf("interior trend/residual missing: %q", lines[2])
	}
}

func TestWriteDecompositionJSONNulls(t *testing.T) {
	observed := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	res, err := decompose.Decompose(observed, 3)
	if err != nil {
		t.Fatalf("decompose: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteDecompositionJSON(&buf, res); err != nil {
		t.Fatalf("write: %v", err)
	}
	var doc struct {
		Period   int        `json:"period"`
		Trend    []*float64 `json:"trend"`
		Seasonal []float64  `json:"seasonal"`
		Residual []*float64 `json:"residual"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Period != 3 {
		t.Errorf("period = %d", doc.Period)
	}
	if doc.Trend[0] != nil || doc.Trend[len(doc.Trend)-1] != nil {
		t.Errorf("boundary trend should be null")
	}
	if doc.Trend[1] == nil || math.IsNaN(*doc.Trend[1]) {
		t.Errorf("interior trend should be a number")
	}
	if len(doc.Seasonal) != len(observed) {
		t.Errorf("seasonal length = %d", len(doc.Seasonal))
	}
}
