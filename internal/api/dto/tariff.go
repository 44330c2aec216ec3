package dto

type DistanceTierResponse struct {
	AboveKm float64  `json:"above_km"`
	UpToKm  *float64 `json:"up_to_km"`
	Cost    float64  `json:"cost"`
}

type TariffResponse struct {
	FragileCost          float64                `json:"fragile_cost"`
	MinimumCost          float64                `json:"minimum_cost"`
	MaxFragileDistanceKm float64                `json:"max_fragile_distance_km"`
	SizeCosts            map[string]float64     `json:"size_costs"`
	DistanceTiers        []DistanceTierResponse `json:"distance_tiers"`
	LoadMultipliers      map[string]float64     `json:"load_multipliers"`
}
