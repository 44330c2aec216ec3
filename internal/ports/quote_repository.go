package ports

import (
	"context"
	"delivery-cost-service/internal/domain"
)

// Port: a boundary for storing and retrieving issued quotes.
type QuoteRepository interface {
	// Persist a newly issued quote. Quotes are never updated.
	Save(ctx context.Context, q *domain.Quote) error
	// Return the quote with the given id, or domain.ErrQuoteNotFound.
	Get(ctx context.Context, id string) (*domain.Quote, error)
	// Return up to limit quotes, newest first.
	List(ctx context.Context, limit int) ([]*domain.Quote, error)
}
