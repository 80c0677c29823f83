package usecase

import (
	"context"

	"climblog/internal/modules/gym/domain"
	"climblog/internal/modules/gym/dto"
	gymin "climblog/internal/modules/gym/port/in"
	"climblog/internal/modules/gym/service"
)

type Interactor struct {
	svc *service.GymService
}

func NewInteractor(svc *service.GymService) gymin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]domain.Gym, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Create(ctx context.Context, input dto.CreateInput) (dto.GymOutput, error) {
	gym, err := i.svc.Create(ctx, input.Name, input.Location)
	if err != nil {
		return dto.GymOutput{}, err
	}
	return dto.GymOutput{ID: gym.ID, Name: gym.Name}, nil
}
