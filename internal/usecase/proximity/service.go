package proximity

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/careatlas/orgconnect/internal/domain"
	"github.com/careatlas/orgconnect/internal/domain/geo"
)

// Service ranks organizations by distance from a user coordinate.
type Service struct {
	repo            Repository
	defaultRadiusKm float64
	maxResults      int
	useBoundingBox  bool
}

// New creates a proximity search service.
func New(repo Repository, defaultRadiusKm float64, maxResults int, useBoundingBox bool) *Service {
	return &Service{
		repo:            repo,
		defaultRadiusKm: defaultRadiusKm,
		maxResults:      maxResults,
		useBoundingBox:  useBoundingBox,
	}
}

// DefaultRadiusKm returns the radius applied when a query omits one.
func (s *Service) DefaultRadiusKm() float64 {
	return s.defaultRadiusKm
}

// FindNearby returns organizations within radiusKm of the given coordinate,
// sorted by ascending distance and capped at the configured maximum. A nil
// radius means the configured default; an explicit zero radius matches only
// organizations at exactly the query coordinate.
func (s *Service) FindNearby(
	ctx context.Context, lat, lon float64, radiusKm *float64,
) ([]domain.RankedOrganization, error) {
	radius := s.defaultRadiusKm
	if radiusKm != nil {
		radius = *radiusKm
	}

	orgs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}

	return s.rank(lat, lon, radius, orgs), nil
}

// rank is the pure filtering/ordering core. Candidates without coordinates
// are skipped, never errors.
func (s *Service) rank(
	lat, lon, radiusKm float64, orgs []domain.Organization,
) []domain.RankedOrganization {
	var box geo.BoundingBox
	if s.useBoundingBox {
		box = geo.NewBoundingBox(lat, lon, radiusKm)
	}

	ranked := make([]domain.RankedOrganization, 0, len(orgs))
	for i := range orgs {
		orgLat, orgLon, ok := orgs[i].Coordinates()
		if !ok {
			continue
		}
		if s.useBoundingBox && !box.Contains(orgLat, orgLon) {
			continue
		}
		d := geo.HaversineKm(lat, lon, orgLat, orgLon)
		if d > radiusKm {
			continue
		}
		ranked = append(ranked, domain.RankedOrganization{
			Organization: orgs[i],
			DistanceKm:   d,
		})
	}

	// Sort on the exact distance, round only for output: two candidates that
	// round to the same value still order by true distance.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	if len(ranked) > s.maxResults {
		ranked = ranked[:s.maxResults]
	}

	for i := range ranked {
		ranked[i].DistanceKm = roundKm(ranked[i].DistanceKm)
	}
	return ranked
}

func roundKm(d float64) float64 {
	return math.Round(d*100) / 100
}
