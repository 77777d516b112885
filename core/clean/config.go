package clean

import "fmt"

// Config holds the tunables of the cleaning pipeline.
type Config struct {
	// DeadColumnEpsilon is the fraction-non-missing threshold below which a
	// column whose observed maximum is zero is considered dead and dropped.
	DeadColumnEpsilon float64 `json:"dead_column_epsilon"`
	// IQRK is the box-plot whisker multiplier for the row-total low-outlier
	// test. Rows with total generation below Q1 - IQRK*IQR are suspects.
	IQRK float64 `json:"iqr_k"`
	// ActivityFloorMW is the minimum sibling-source output, in MW, for a
	// zero cell in a suspect row to be treated as an anomaly rather than a
	// legitimate zero-output hour.
	ActivityFloorMW float64 `json:"activity_floor_mw"`
	// RequiredColumns are checked for presence after load. Empty means no
	// schema expectations beyond the time column, which the loader always
	// requires; listing the time column here is a harmless no-op.
	RequiredColumns []string `json:"required_columns"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.DeadColumnEpsilon == 0 {
		c.DeadColumnEpsilon = 0.05
	}
	if c.IQRK == 0 {
		c.IQRK = 1.5
	}
	if c.ActivityFloorMW == 0 {
		c.ActivityFloorMW = 1.0
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.DeadColumnEpsilon < 0 || c.DeadColumnEpsilon > 1 {
		return fmt.Errorf("dead_column_epsilon must be in [0,1]")
	}
	if c.IQRK <= 0 {
		return fmt.Errorf("iqr_k must be positive")
	}
	if c.ActivityFloorMW < 0 {
		return fmt.Errorf("activity_floor_mw must be non-negative")
	}
	return nil
}
