package domain

import "time"

// DeliveryRequest bundles the pricing inputs. Nil pointers and empty enums mean "not provided".
type DeliveryRequest struct {
	DistanceKm *float64
	Size       Size
	Fragile    *bool
	Load       Load
}

// NewDeliveryRequest builds a request with every field provided.
func NewDeliveryRequest(distanceKm float64, size Size, fragile bool, load Load) DeliveryRequest {
	return DeliveryRequest{
		DistanceKm: &distanceKm,
		Size:       size,
		Fragile:    &fragile,
		Load:       load,
	}
}

// CostBreakdown holds every intermediate amount of one calculation.
type CostBreakdown struct {
	BaseCost     float64
	SizeCost     float64
	FragileCost  float64
	Subtotal     float64
	Multiplier   float64
	Total        float64
	FloorApplied bool
}

// Quote is a stored pricing result. Origin and Destination are set only when the
// distance was resolved from addresses.
type Quote struct {
	ID          string
	Origin      string
	Destination string
	DistanceKm  float64
	Size        Size
	Fragile     bool
	Load        Load
	Breakdown   CostBreakdown
	CreatedAt   time.Time
}
