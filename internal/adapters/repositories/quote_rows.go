package repositories

import (
	"delivery-cost-service/internal/domain"

	"github.com/shopspring/decimal"
)

const quoteColumns = `
		id,
		origin,
		destination,
		distance_km,
		size,
		fragile,
		load,
		base_cost,
		size_cost,
		fragile_cost,
		subtotal,
		multiplier,
		total,
		floor_applied`

const defaultListLimit = 20

// quoteRow holds scan targets shared by both dialects; only the timestamp column differs.
type quoteRow struct {
	q    domain.Quote
	size string
	load string

	base        decimal.Decimal
	sizeCost    decimal.Decimal
	fragileCost decimal.Decimal
	sub         decimal.Decimal
	factor      decimal.Decimal
	total       decimal.Decimal
}

func (r *quoteRow) dest() []any {
	return []any{
		&r.q.ID,
		&r.q.Origin,
		&r.q.Destination,
		&r.q.DistanceKm,
		&r.size,
		&r.q.Fragile,
		&r.load,
		&r.base,
		&r.sizeCost,
		&r.fragileCost,
		&r.sub,
		&r.factor,
		&r.total,
		&r.q.Breakdown.FloorApplied,
	}
}

func (r *quoteRow) quote() *domain.Quote {
	q := r.q
	q.Size = domain.Size(r.size)
	q.Load = domain.Load(r.load)
	q.Breakdown.BaseCost = r.base.InexactFloat64()
	q.Breakdown.SizeCost = r.sizeCost.InexactFloat64()
	q.Breakdown.FragileCost = r.fragileCost.InexactFloat64()
	q.Breakdown.Subtotal = r.sub.InexactFloat64()
	q.Breakdown.Multiplier = r.factor.InexactFloat64()
	q.Breakdown.Total = r.total.InexactFloat64()
	return &q
}

func quoteArgs(q *domain.Quote) []any {
	b := q.Breakdown
	return []any{
		q.ID,
		q.Origin,
		q.Destination,
		q.DistanceKm,
		string(q.Size),
		q.Fragile,
		string(q.Load),
		decimal.NewFromFloat(b.BaseCost),
		decimal.NewFromFloat(b.SizeCost),
		decimal.NewFromFloat(b.FragileCost),
		decimal.NewFromFloat(b.Subtotal),
		decimal.NewFromFloat(b.Multiplier),
		decimal.NewFromFloat(b.Total),
		b.FloorApplied,
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > 100 {
		return 100
	}
	return limit
}
