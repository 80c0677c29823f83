package out

import (
	"context"

	"climblog/internal/modules/gym/domain"
)

// Catalog is the backend's gym listing.
type Catalog interface {
	List(ctx context.Context) ([]domain.Gym, error)
	Create(ctx context.Context, gym domain.Gym) (domain.Gym, error)
}
