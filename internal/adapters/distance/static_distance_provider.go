package distance

import (
	"context"
	"delivery-cost-service/internal/ports"
	"fmt"
)

type StaticPair struct {
	From, To string
	Meters   int
	Seconds  int
}

// StaticDistanceProvider answers from a fixed table. Pairs are looked up in both directions.
type StaticDistanceProvider struct {
	m map[string]ports.DistanceResult
}

func NewStaticDistanceProvider(pairs []StaticPair) *StaticDistanceProvider {
	m := make(map[string]ports.DistanceResult, 2*len(pairs))
	for _, p := range pairs {
		r := ports.DistanceResult{DistanceMeters: p.Meters, DurationSeconds: p.Seconds}
		m[normalize(p.From)+"|"+normalize(p.To)] = r
		if _, ok := m[normalize(p.To)+"|"+normalize(p.From)]; !ok {
			m[normalize(p.To)+"|"+normalize(p.From)] = r
		}
	}
	return &StaticDistanceProvider{m: m}
}

func (p *StaticDistanceProvider) GetDistance(ctx context.Context, origin, destination string) (ports.DistanceResult, error) {
	r, ok := p.m[normalize(origin)+"|"+normalize(destination)]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("missing pair %q -> %q", origin, destination)
	}

	return r, nil
}
