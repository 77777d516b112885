package clean

import "time"

// ColumnDropped records one dead column removed at load time, with the rule
// values that condemned it.
type ColumnDropped struct {
	Column      string  `json:"column"`
	FracPresent float64 `json:"frac_present"`
	MaxObserved float64 `json:"max_observed"`
}

// Correction records one cell nulled by the anomaly test before gap filling.
type Correction struct {
	Column   string    `json:"column"`
	Row      int       `json:"row"`
	Time     time.Time `json:"time"`
	RowTotal float64   `json:"row_total"`
	Cutoff   float64   `json:"cutoff"`
}

// GapFill records one interpolated missing run.
type GapFill struct {
	Column string    `json:"column"`
	Start  int       `json:"start"`
	Length int       `json:"length"`
	Time   time.Time `json:"time"`
}

// Report is the full audit of one cleaning run. Every decision the pipeline
// takes is listed here so callers can distinguish observed values from
// synthesized ones.
type Report struct {
	RunID         string          `json:"run_id"`
	Rows          int             `json:"rows"`
	Dropped       []ColumnDropped `json:"dropped_columns"`
	Corrections   []Correction    `json:"corrections"`
	Fills         []GapFill       `json:"gap_fills"`
	BoundaryGaps  []GapFill       `json:"boundary_gaps"`
	ValuesImputed int             `json:"values_imputed"`
	Duration      time.Duration   `json:"duration_ns"`
	StartedAt     time.Time       `json:"started_at"`
}
