package services

import (
	"delivery-cost-service/internal/domain"

	"github.com/shopspring/decimal"
)

// ComputeCost returns the delivery price for req, or an *domain.InvalidArgumentError.
// It is pure and safe for concurrent use.
func ComputeCost(req domain.DeliveryRequest) (float64, error) {
	b, err := Calculate(req)
	if err != nil {
		return 0, err
	}
	return b.Total, nil
}

// Calculate validates req and returns every intermediate amount of the price.
//
// Validation runs before any arithmetic, in this order: all parameters present,
// distance non-negative, fragile parcels within MaxFragileDistanceKm.
// The multiplied subtotal is rounded half-up to 2 decimals, then raised to MinimumCost.
func Calculate(req domain.DeliveryRequest) (domain.CostBreakdown, error) {
	if req.DistanceKm == nil || req.Size == "" || req.Fragile == nil || req.Load == "" {
		return domain.CostBreakdown{}, domain.ErrMissingParameters
	}

	// An unknown load level carries no multiplier and counts as absent.
	mult, ok := req.Load.Multiplier()
	if !ok {
		return domain.CostBreakdown{}, domain.ErrMissingParameters
	}

	distance := *req.DistanceKm
	fragile := *req.Fragile

	if distance < 0 {
		return domain.CostBreakdown{}, domain.ErrNegativeDistance
	}
	if fragile && distance > domain.MaxFragileDistanceKm {
		return domain.CostBreakdown{}, domain.ErrFragileTooFar
	}

	base := decimal.NewFromFloat(domain.BaseCost(distance))
	size := decimal.NewFromFloat(req.Size.Cost())
	fragility := decimal.Zero
	if fragile {
		fragility = decimal.NewFromFloat(domain.FragileCost)
	}

	subtotal := base.Add(size).Add(fragility)
	factor := decimal.RequireFromString(mult)

	// Round is half away from zero, which is half-up for the non-negative amounts here.
	total := subtotal.Mul(factor).Round(2)

	floor := decimal.NewFromFloat(domain.MinimumCost)
	floorApplied := total.LessThan(floor)
	if floorApplied {
		total = floor
	}

	return domain.CostBreakdown{
		BaseCost:     base.InexactFloat64(),
		SizeCost:     size.InexactFloat64(),
		FragileCost:  fragility.InexactFloat64(),
		Subtotal:     subtotal.InexactFloat64(),
		Multiplier:   factor.InexactFloat64(),
		Total:        total.InexactFloat64(),
		FloorApplied: floorApplied,
	}, nil
}
