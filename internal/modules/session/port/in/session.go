package in

import (
	"context"

	"climblog/internal/modules/session/domain"
	"climblog/internal/modules/session/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (domain.Session, error)
	LogClimb(ctx context.Context, input dto.LogClimbInput) (domain.Session, error)
	End(ctx context.Context, input dto.EndInput) error
	Cancel(ctx context.Context, input dto.CancelInput) error
	History(ctx context.Context, token string) ([]domain.Session, error)
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
