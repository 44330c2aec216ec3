package domain

import (
	"fmt"
	"strings"
)

// Load is the current service load level. The zero value means the level was not provided.
type Load string

const (
	LoadNormal    Load = "NORMAL"
	LoadIncreased Load = "INCREASED"
	LoadHigh      Load = "HIGH"
	LoadVeryHigh  Load = "VERY_HIGH"
)

// Loads lists every level in order of increasing multiplier.
var Loads = []Load{LoadNormal, LoadIncreased, LoadHigh, LoadVeryHigh}

// Multipliers are kept as decimal strings so money arithmetic stays exact.
var loadMultipliers = map[Load]string{
	LoadNormal:    "1.0",
	LoadIncreased: "1.2",
	LoadHigh:      "1.4",
	LoadVeryHigh:  "1.6",
}

// ParseLoad accepts a load name in any letter case.
func ParseLoad(s string) (Load, error) {
	l := Load(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := loadMultipliers[l]; !ok {
		return "", fmt.Errorf("parse load: unknown load level %q", s)
	}
	return l, nil
}

// Valid reports whether l is one of the known levels.
func (l Load) Valid() bool {
	_, ok := loadMultipliers[l]
	return ok
}

// Multiplier returns the surcharge factor for l as a decimal string, and false for unknown levels.
func (l Load) Multiplier() (string, bool) {
	m, ok := loadMultipliers[l]
	return m, ok
}
