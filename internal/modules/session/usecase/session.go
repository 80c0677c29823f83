package usecase

import (
	"context"

	"climblog/internal/modules/session/domain"
	sessiondto "climblog/internal/modules/session/dto"
	sessionin "climblog/internal/modules/session/port/in"
	"climblog/internal/modules/session/service"
	apperrors "climblog/internal/platform/errors"
)

type Interactor struct {
	svc *service.SessionService
}

func NewInteractor(svc *service.SessionService) sessionin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Start(ctx context.Context, input sessiondto.StartInput) (domain.Session, error) {
	if input.Token == "" {
		return domain.Session{}, apperrors.ErrNotAuthenticated
	}
	name := input.GymName
	if name == "" {
		name = input.GymID
	}
	return i.svc.Start(ctx, input.Token, input.GymID, name)
}

func (i *Interactor) LogClimb(ctx context.Context, input sessiondto.LogClimbInput) (domain.Session, error) {
	if input.Token == "" {
		return input.Session, apperrors.ErrNotAuthenticated
	}
	return i.svc.LogClimb(ctx, input.Token, input.Session, input.Climb)
}

func (i *Interactor) End(ctx context.Context, input sessiondto.EndInput) error {
	if input.Token == "" {
		return apperrors.ErrNotAuthenticated
	}
	return i.svc.End(ctx, input.Token, input.SessionID, input.Fatigue)
}

func (i *Interactor) Cancel(ctx context.Context, input sessiondto.CancelInput) error {
	if input.Token == "" {
		return apperrors.ErrNotAuthenticated
	}
	return i.svc.Cancel(ctx, input.Token, input.SessionID)
}

func (i *Interactor) History(ctx context.Context, token string) ([]domain.Session, error) {
	if token == "" {
		return nil, apperrors.ErrNotAuthenticated
	}
	return i.svc.History(ctx, token)
}

func (i *Interactor) Export(ctx context.Context, input sessiondto.ExportInput) (sessiondto.ExportOutput, error) {
	paths, err := i.svc.Export(ctx, input.Dir, input.Sessions)
	if err != nil {
		return sessiondto.ExportOutput{Paths: paths}, err
	}
	return sessiondto.ExportOutput{Paths: paths}, nil
}
