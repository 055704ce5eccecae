package proximity

import (
	"context"

	"github.com/careatlas/orgconnect/internal/domain"
)

// mockRepo implements Repository for tests.
type mockRepo struct {
	listFn func(ctx context.Context) ([]domain.Organization, error)
}

func (m *mockRepo) List(ctx context.Context) ([]domain.Organization, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func orgAt(id string, lat, lon float64) domain.Organization {
	return domain.Organization{
		ID:   id,
		Name: id,
		Location: &domain.Location{
			Latitude:  &lat,
			Longitude: &lon,
		},
	}
}

func fixedRepo(orgs ...domain.Organization) *mockRepo {
	return &mockRepo{
		listFn: func(_ context.Context) ([]domain.Organization, error) {
			return orgs, nil
		},
	}
}

func radius(v float64) *float64 { return &v }
