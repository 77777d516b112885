package model

import "strings"

// TimeColumn is the name of the timestamp column in the raw CSV.
const TimeColumn = "time"

// GenerationSources lists the canonical generation-source columns that carry
// data in the Spanish hourly dataset.
var GenerationSources = []string{
	"generation.biomass",
	"generation.fossil.brown-coal-lignite",
	"generation.fossil.gas",
	"generation.fossil.hard-coal",
	"generation.fossil.oil",
	"generation.hydro.pumped-storage-consumption",
	"generation.hydro.run-of-river",
	"generation.hydro.water-reservoir",
	"generation.nuclear",
	"generation.other",
	"generation.other-renewable",
	"generation.solar",
	"generation.waste",
	"generation.wind.onshore",
}

// KnownDeadColumns lists the columns that are always zero or missing across
// the reference dataset. The loader drops dead columns generically; this set
// serves as a regression fixture, not as the drop rule.
var KnownDeadColumns = []string{
	"generation.fossil.coal-derived-gas",
	"generation.fossil.oil-shale",
	"generation.fossil.peat",
	"generation.geothermal",
	"generation.marine",
	"generation.hydro.pumped-storage-aggregated",
	"generation.wind.offshore",
	"forecast.wind.offshore.day-ahead",
}

// IsGenerationSource reports whether the column carries generation output
// for one source.
func IsGenerationSource(name string) bool {
	return strings.HasPrefix(name, "generation.")
}
