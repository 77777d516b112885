package config

import "fmt"

// DecomposeConfig defines how the per-source seasonal decomposition is run.
type DecomposeConfig struct {
	// Period is the number of samples per seasonal cycle. The default of
	// 8766 covers one average year of hourly samples; use 365 for series
	// resampled to daily resolution.
	Period int `json:"period"`
	// Workers bounds the number of sources decomposed concurrently.
	Workers int `json:"workers"`
	// Sources optionally restricts decomposition to the named columns;
	// empty means every generation source in the cleaned dataset.
	Sources []string `json:"sources"`
}

// SetDefaults applies sane defaults.
func (c *DecomposeConfig) SetDefaults() {
	if c.Period == 0 {
		c.Period = 8766
	}
	if c.Workers == 0 {
		c.Workers = 4
	}
}

// Validate checks mandatory fields.
func (c DecomposeConfig) Validate() error {
	if c.Period < 2 {
		return fmt.Errorf("period must be at least 2")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	return nil
}
