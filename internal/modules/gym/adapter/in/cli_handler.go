package in

import (
	"context"

	"climblog/internal/modules/gym/dto"
	gymin "climblog/internal/modules/gym/port/in"
)

type CLIHandler struct {
	usecase gymin.Usecase
}

func NewCLIHandler(usecase gymin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.GymOutput, error) {
	gyms, err := h.usecase.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GymOutput, 0, len(gyms))
	for _, g := range gyms {
		out = append(out, dto.GymOutput{ID: g.ID, Name: g.DisplayName()})
	}
	return out, nil
}

func (h CLIHandler) Create(ctx context.Context, name, location string) (dto.GymOutput, error) {
	return h.usecase.Create(ctx, dto.CreateInput{Name: name, Location: location})
}
