package dto

import "time"

// QuoteRequest is the POST /quotes body. Either distance_km or both addresses must be given;
// a missing load uses the current service load.
type QuoteRequest struct {
	DistanceKm  *float64 `json:"distance_km"`
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	Size        *string  `json:"size"`
	Fragile     *bool    `json:"fragile"`
	Load        *string  `json:"load"`
}

type CostBreakdownResponse struct {
	BaseCost     float64 `json:"base_cost"`
	SizeCost     float64 `json:"size_cost"`
	FragileCost  float64 `json:"fragile_cost"`
	Subtotal     float64 `json:"subtotal"`
	Multiplier   float64 `json:"multiplier"`
	FloorApplied bool    `json:"floor_applied"`
}

type QuoteResponse struct {
	ID          string                `json:"id"`
	Origin      string                `json:"origin,omitempty"`
	Destination string                `json:"destination,omitempty"`
	DistanceKm  float64               `json:"distance_km"`
	Size        string                `json:"size"`
	Fragile     bool                  `json:"fragile"`
	Load        string                `json:"load"`
	Total       float64               `json:"total"`
	Breakdown   CostBreakdownResponse `json:"breakdown"`
	CreatedAt   time.Time             `json:"created_at"`
}

type ListQuotesResponse struct {
	Quotes []QuoteResponse `json:"quotes"`
}
