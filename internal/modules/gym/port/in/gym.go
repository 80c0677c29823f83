package in

import (
	"context"

	"climblog/internal/modules/gym/domain"
	"climblog/internal/modules/gym/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]domain.Gym, error)
	Create(ctx context.Context, input dto.CreateInput) (dto.GymOutput, error)
}
