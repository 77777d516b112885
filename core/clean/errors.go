package clean

import "fmt"

// ParseError reports an unparseable timestamp or a broken hourly sequence.
// The row index is zero-based over data rows, excluding the header.
type ParseError struct {
	Row   int
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("row %d: bad timestamp %q: %v", e.Row, e.Value, e.Err)
	}
	return fmt.Sprintf("row %d: bad timestamp %q", e.Row, e.Value)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError reports an expected column that is absent from the input.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing expected column %q", e.Column)
}

// BoundaryGapError reports a missing run touching the start or end of a
// column, which linear interpolation cannot fill. The affected values remain
// missing in the returned dataset; the caller decides whether to drop the
// rows or keep the absence.
type BoundaryGapError struct {
	Column string
	Start  int
	Length int
	AtEnd  bool
}

func (e *BoundaryGapError) Error() string {
	side := "start"
	if e.AtEnd {
		side = "end"
	}
	return fmt.Sprintf("column %q: %d-value gap at series %s left unfilled", e.Column, e.Length, side)
}
