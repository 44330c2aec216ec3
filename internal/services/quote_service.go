package services

import (
	"context"
	"delivery-cost-service/internal/domain"
	"delivery-cost-service/internal/platform/obs"
	"delivery-cost-service/internal/ports"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrDistanceUnavailable is returned when a quote names addresses but no distance provider is configured.
var ErrDistanceUnavailable = &domain.InvalidArgumentError{
	Reason: "distance_km is required: address lookup is not configured",
}

// ErrDistanceLookup wraps failures of the configured distance provider.
var ErrDistanceLookup = errors.New("distance lookup failed")

// QuoteRequest is a pricing request as received from a client. Distance may be given directly
// or resolved from Origin and Destination; an empty Load means "use the current service load".
type QuoteRequest struct {
	DistanceKm  *float64
	Origin      string
	Destination string
	Size        domain.Size
	Fragile     *bool
	Load        domain.Load
}

// QuoteService prices requests and records the issued quotes.
// Repo, Loads and Distances are optional; a nil port disables the feature it backs.
type QuoteService struct {
	Repo      ports.QuoteRepository
	Loads     ports.LoadStore
	Distances ports.DistanceProvider

	now   func() time.Time
	newID func() string
}

func NewQuoteService(
	repo ports.QuoteRepository,
	loads ports.LoadStore,
	distances ports.DistanceProvider,
) *QuoteService {
	return &QuoteService{
		Repo:      repo,
		Loads:     loads,
		Distances: distances,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// Quote prices req and stores the result.
func (s *QuoteService) Quote(ctx context.Context, req QuoteRequest) (_ *domain.Quote, err error) {
	defer obs.Time(ctx, "quote.Create")(&err)

	origin := strings.TrimSpace(req.Origin)
	destination := strings.TrimSpace(req.Destination)

	distanceKm := req.DistanceKm
	if distanceKm == nil && origin != "" && destination != "" {
		km, err := s.resolveDistance(ctx, origin, destination)
		if err != nil {
			return nil, err
		}
		distanceKm = &km
	}

	load := req.Load
	if load == "" && s.Loads != nil {
		load, err = s.Loads.Current(ctx)
		if err != nil {
			return nil, fmt.Errorf("quote: read current load: %w", err)
		}
	}

	breakdown, err := Calculate(domain.DeliveryRequest{
		DistanceKm: distanceKm,
		Size:       req.Size,
		Fragile:    req.Fragile,
		Load:       load,
	})
	if err != nil {
		return nil, err
	}

	q := &domain.Quote{
		ID:         s.newID(),
		DistanceKm: *distanceKm,
		Size:       req.Size,
		Fragile:    *req.Fragile,
		Load:       load,
		Breakdown:  breakdown,
		CreatedAt:  s.now(),
	}
	if req.DistanceKm == nil {
		q.Origin = origin
		q.Destination = destination
	}

	if s.Repo != nil {
		if err := s.Repo.Save(ctx, q); err != nil {
			return nil, fmt.Errorf("quote: save quote %s: %w", q.ID, err)
		}
	}

	return q, nil
}

// resolveDistance returns road distance in kilometers, rounded to meters.
func (s *QuoteService) resolveDistance(ctx context.Context, origin, destination string) (float64, error) {
	if s.Distances == nil {
		return 0, ErrDistanceUnavailable
	}

	res, err := s.Distances.GetDistance(ctx, origin, destination)
	if err != nil {
		return 0, fmt.Errorf("quote: resolve distance %q -> %q: %w: %w", origin, destination, ErrDistanceLookup, err)
	}

	return decimal.NewFromInt(int64(res.DistanceMeters)).Div(decimal.NewFromInt(1000)).InexactFloat64(), nil
}

// GetQuote returns a stored quote or domain.ErrQuoteNotFound.
func (s *QuoteService) GetQuote(ctx context.Context, id string) (*domain.Quote, error) {
	if s.Repo == nil {
		return nil, domain.ErrQuoteNotFound
	}

	q, err := s.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrQuoteNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get quote %s: %w", id, err)
	}
	return q, nil
}

// ListQuotes returns recent quotes, newest first.
func (s *QuoteService) ListQuotes(ctx context.Context, limit int) ([]*domain.Quote, error) {
	if s.Repo == nil {
		return []*domain.Quote{}, nil
	}

	qs, err := s.Repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	return qs, nil
}

// CurrentLoad returns the service load applied to quotes without an explicit level.
func (s *QuoteService) CurrentLoad(ctx context.Context) (domain.Load, error) {
	if s.Loads == nil {
		return domain.LoadNormal, nil
	}

	l, err := s.Loads.Current(ctx)
	if err != nil {
		return "", fmt.Errorf("current load: %w", err)
	}
	return l, nil
}

// SetLoad replaces the current service load.
func (s *QuoteService) SetLoad(ctx context.Context, load domain.Load) error {
	if !load.Valid() {
		return &domain.InvalidArgumentError{Reason: fmt.Sprintf("unknown load level %q", load)}
	}
	if s.Loads == nil {
		return errors.New("set load: load store is not configured")
	}

	if err := s.Loads.Set(ctx, load); err != nil {
		return fmt.Errorf("set load: %w", err)
	}
	return nil
}
