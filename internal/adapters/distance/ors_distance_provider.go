package distance

import (
	"context"
	"delivery-cost-service/internal/domain"
	"delivery-cost-service/internal/platform/obs"
	"delivery-cost-service/internal/ports"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// DistanceCache stores resolved origin->destination results.
type DistanceCache interface {
	Get(ctx context.Context, origin, destination string) (ports.DistanceResult, bool, error)
	Put(ctx context.Context, origin, destination string, r ports.DistanceResult) error
}

// GeocodeCache stores address coordinates.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, coords map[string]domain.Coordinates) error
}

type ORSConfig struct {
	APIKey  string
	BaseURL string
	Profile string
	// ISO country code used to bound geocoding; empty searches worldwide.
	Country string
}

// ORSDistanceProvider implements DistanceProvider using OpenRouteService.
//
// A lookup normalizes both addresses, checks the distance cache, geocodes the
// addresses (through the geocode cache) and asks the matrix endpoint for the
// single origin->destination cell. Caches are optional.
//
// The provider is safe for concurrent use.
type ORSDistanceProvider struct {
	session       *http.Client
	apiKey        string
	baseURL       string
	profile       string
	country       string
	backoff       time.Duration
	distanceCache DistanceCache
	geocodeCache  GeocodeCache
}

func NewORSDistanceProvider(
	cfg ORSConfig,
	distanceCache DistanceCache,
	geocodeCache GeocodeCache,
) (*ORSDistanceProvider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openrouteservice.org"
	}
	profile := cfg.Profile
	if profile == "" {
		profile = "driving-car"
	}

	return &ORSDistanceProvider{
		session:       &http.Client{Timeout: 10 * time.Second},
		apiKey:        cfg.APIKey,
		baseURL:       baseURL,
		profile:       profile,
		country:       cfg.Country,
		backoff:       200 * time.Millisecond,
		distanceCache: distanceCache,
		geocodeCache:  geocodeCache,
	}, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (o *ORSDistanceProvider) GetDistance(
	ctx context.Context,
	origin string,
	destination string,
) (_ ports.DistanceResult, err error) {
	defer obs.Time(ctx, "ors.GetDistance")(&err)

	normOrigin := normalize(origin)
	normDestination := normalize(destination)
	if normOrigin == "" || normDestination == "" {
		return ports.DistanceResult{}, errors.New("get ORS distance: origin and destination must be non-empty")
	}
	if normOrigin == normDestination {
		return ports.DistanceResult{}, nil
	}

	if o.distanceCache != nil {
		hit, ok, err := o.distanceCache.Get(ctx, normOrigin, normDestination)
		if err != nil {
			return ports.DistanceResult{}, fmt.Errorf("ORS get distance cache: %w", err)
		}
		if ok {
			return hit, nil
		}
	}

	coords, err := o.coordinates(ctx, []string{normOrigin, normDestination})
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("retrieving coordinates: %w", err)
	}

	result, err := o.fetchMatrixCell(ctx, coords[normOrigin], coords[normDestination])
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("fetching matrix %q -> %q: %w", normOrigin, normDestination, err)
	}

	if o.distanceCache != nil {
		if err := o.distanceCache.Put(ctx, normOrigin, normDestination, result); err != nil {
			log.Printf("distance cache write failed: %v", err)
		}
	}

	return result, nil
}

// coordinates resolves every address, consulting the geocode cache first.
func (o *ORSDistanceProvider) coordinates(
	ctx context.Context,
	addresses []string,
) (map[string]domain.Coordinates, error) {
	coords := make(map[string]domain.Coordinates, len(addresses))

	if o.geocodeCache != nil {
		hits, err := o.geocodeCache.GetMany(ctx, addresses)
		if err != nil {
			return nil, fmt.Errorf("ORS get geocode cache: %w", err)
		}
		for k, v := range hits {
			coords[k] = v
		}
	}

	fresh := make(map[string]domain.Coordinates)
	for _, a := range addresses {
		if _, ok := coords[a]; ok {
			continue
		}
		if _, ok := fresh[a]; ok {
			continue
		}

		c, err := o.geocode(ctx, a)
		if err != nil {
			return nil, err
		}
		fresh[a] = c
		coords[a] = c
	}

	if o.geocodeCache != nil && len(fresh) > 0 {
		if err := o.geocodeCache.PutMany(ctx, fresh); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return coords, nil
}
