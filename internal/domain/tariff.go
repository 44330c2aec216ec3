package domain

// Tariff constants, in currency units unless noted.
const (
	FragileCost          = 300.0
	MinimumCost          = 400.0
	MaxFragileDistanceKm = 30.0
	LargeSizeCost        = 200.0
	SmallSizeCost        = 100.0

	BaseCostOver30Km = 300.0
	BaseCost10To30Km = 200.0
	BaseCost2To10Km  = 250.0
	BaseCostUpTo2Km  = 100.0
)

// BaseCost returns the distance tier cost. Tiers are exclusive on their lower bound,
// so exactly 2, 10 and 30 km price in the tier below them.
// The 2-10 km tier is priced above the 10-30 km tier.
func BaseCost(distanceKm float64) float64 {
	switch {
	case distanceKm > 30:
		return BaseCostOver30Km
	case distanceKm > 10:
		return BaseCost10To30Km
	case distanceKm > 2:
		return BaseCost2To10Km
	default:
		return BaseCostUpTo2Km
	}
}

// DistanceTier describes one row of the distance tier table.
type DistanceTier struct {
	AboveKm float64
	UpToKm  *float64
	Cost    float64
}

// DistanceTiers returns the tier table in ascending distance order.
func DistanceTiers() []DistanceTier {
	km := func(v float64) *float64 { return &v }
	return []DistanceTier{
		{AboveKm: 0, UpToKm: km(2), Cost: BaseCostUpTo2Km},
		{AboveKm: 2, UpToKm: km(10), Cost: BaseCost2To10Km},
		{AboveKm: 10, UpToKm: km(30), Cost: BaseCost10To30Km},
		{AboveKm: 30, UpToKm: nil, Cost: BaseCostOver30Km},
	}
}
