package service

import (
	"context"
	"log/slog"
	"strings"

	"climblog/internal/modules/gym/domain"
	gymout "climblog/internal/modules/gym/port/out"
)

type GymService struct {
	catalog gymout.Catalog
	logger  *slog.Logger
}

func NewGymService(catalog gymout.Catalog, logger *slog.Logger) *GymService {
	return &GymService{catalog: catalog, logger: logger}
}

// List returns the catalog in backend order.
func (s *GymService) List(ctx context.Context) ([]domain.Gym, error) {
	gyms, err := s.catalog.List(ctx)
	if err != nil {
		s.logger.Warn("gym list failed", "error", err)
		return nil, err
	}
	s.logger.Debug("gyms loaded", "count", len(gyms))
	return gyms, nil
}

func (s *GymService) Create(ctx context.Context, name, location string) (domain.Gym, error) {
	gym := domain.Gym{ID: strings.TrimSpace(location), Name: strings.TrimSpace(name)}
	if err := gym.Validate(); err != nil {
		return domain.Gym{}, err
	}
	created, err := s.catalog.Create(ctx, gym)
	if err != nil {
		return domain.Gym{}, err
	}
	s.logger.Info("gym created", "location", created.ID)
	return created, nil
}
