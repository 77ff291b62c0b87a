package models

// Token identifies one chartable row: a whole unit ("12"), a sub-unit
// ("12a", "12:3") or a grouped unit ("12ab").
type Token string

// SubUnit selects one of the two sub-unit positions of a unit.
type SubUnit string

const (
	// SubUnitNone leaves the position unspecified.
	SubUnitNone SubUnit = ""
	// SubUnitFirst is the first sub-unit (amud aleph).
	SubUnitFirst SubUnit = "a"
	// SubUnitSecond is the second sub-unit (amud beis).
	SubUnitSecond SubUnit = "b"
)

// Granularity controls whether rows represent sub-units or whole units.
type Granularity string

const (
	// PerSubUnit emits one row per sub-unit.
	PerSubUnit Granularity = "sub-unit"
	// PerWholeUnit emits one row per unit.
	PerWholeUnit Granularity = "whole-unit"
)
