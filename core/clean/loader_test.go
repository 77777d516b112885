package clean

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aherrada/gridclean/core/model"
)

func TestReadNormalizesMixedOffsets(t *testing.T) {
	csv := "time,generation.nuclear\n" +
		"2015-01-01 01:00:00+01:00,7000\n" +
		"2015-01-01 03:00:00+02:00,7010\n" +
		"2015-01-01 03:00:00+01:00,7020\n"
	ds, err := Read(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, ts := range ds.Times {
		if !ts.Equal(want.Add(time.Duration(i) * time.Hour)) {
			t.Errorf("row %d: time = %s, want %s", i, ts, want.Add(time.Duration(i)*time.Hour))
		}
		if ts.Location() != time.UTC {
			t.Errorf("row %d: not UTC", i)
		}
	}
}

func TestReadParseError(t *testing.T) {
	csv := "time,generation.nuclear\nnot-a-time,7000\n"
	_, err := Read(strings.NewReader(csv))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Row != 0 || pe.Value != "not-a-time" {
		t.Errorf("unexpected ParseError fields: %+v", pe)
	}
}

func TestReadMissingTimeColumn(t *testing.T) {
	csv := "generation.nuclear\n7000\n"
	_, err := Read(strings.NewReader(csv))
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if se.Column != model.TimeColumn {
		t.Errorf("column = %q", se.Column)
	}
}

func TestReadRejectsSkippedHour(t *testing.T) {
	csv := "time,generation.nuclear\n" +
		"2015-01-01 00:00:00+01:00,7000\n" +
		"2015-01-01 02:00:00+01:00,7010\n"
	_, err := Read(strings.NewReader(csv))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError for skipped hour, got %v", err)
	}
}

func TestReadRejectsDuplicateHour(t *testing.T) {
	csv := "time,generation.nuclear\n" +
		"2015-01-01 00:00:00+01:00,7000\n" +
		"2015-01-01 00:00:00+01:00,7010\n"
	_, err := Read(strings.NewReader(csv))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError for duplicate hour, got %v", err)
	}
}

func TestReadEmptyCellsBecomeMissing(t *testing.T) {
	csv := "time,generation.nuclear,generation.solar\n" +
		"2015-01-01 00:00:00+01:00,7000,\n" +
		"2015-01-01 01:00:00+01:00,,120\n"
	ds, err := Read(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !model.IsMissing(ds.Column("generation.solar").Values[0]) {
		t.Errorf("expected solar row 0 missing")
	}
	if !model.IsMissing(ds.Column("generation.nuclear").Values[1]) {
		t.Errorf("expected nuclear row 1 missing")
	}
	if ds.Column("generation.nuclear").Values[0] != 7000 {
		t.Errorf("nuclear row 0 = %v", ds.Column("generation.nuclear").Values[0])
	}
}

func TestReadShortRowBeforeTimeColumn(t *testing.T) {
	// time is the second column; a one-field row must surface as a
	// ParseError, not an index panic.
	csv := "generation.nuclear,time\n7000\n"
	_, err := Read(strings.NewReader(csv))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError for short row, got %v", err)
	}
	if pe.Row != 0 {
		t.Errorf("row = %d", pe.Row)
	}
}

func TestReadBadNumber(t *testing.T) {
	csv := "time,generation.nuclear\n2015-01-01 00:00:00+01:00,abc\n"
	if _, err := Read(strings.NewReader(csv)); err == nil {
		t.Fatalf("expected error for non-numeric cell")
	}
}
