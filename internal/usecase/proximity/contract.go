package proximity

import (
	"context"

	"github.com/careatlas/orgconnect/internal/domain"
)

// Repository lists candidate organizations for ranking.
type Repository interface {
	List(ctx context.Context) ([]domain.Organization, error)
}
