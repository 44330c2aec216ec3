package ports

import (
	"context"
	"delivery-cost-service/internal/domain"
)

// Holds the operator-set service load level applied to quotes that omit one.
type LoadStore interface {
	Current(ctx context.Context) (domain.Load, error)
	Set(ctx context.Context, load domain.Load) error
}
