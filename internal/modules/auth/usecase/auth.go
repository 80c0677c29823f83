package usecase

import (
	"context"

	"climblog/internal/modules/auth/domain"
	"climblog/internal/modules/auth/dto"
	authin "climblog/internal/modules/auth/port/in"
	"climblog/internal/modules/auth/service"
)

type Interactor struct {
	svc *service.AuthService
}

func NewInteractor(svc *service.AuthService) authin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Login(ctx context.Context, input dto.LoginInput) (dto.LoginOutput, error) {
	return i.svc.Login(ctx, input.Username, input.Password)
}

func (i *Interactor) Authenticate(ctx context.Context, input dto.LoginInput) (dto.LoginOutput, error) {
	return i.svc.Authenticate(ctx, input.Username, input.Password)
}

func (i *Interactor) Remember(ctx context.Context, token string) error {
	return i.svc.Remember(ctx, token)
}

func (i *Interactor) Signup(ctx context.Context, input dto.SignupInput) error {
	return i.svc.Signup(ctx, input.Username, input.Password)
}

func (i *Interactor) Logout(ctx context.Context) error {
	return i.svc.Logout(ctx)
}

func (i *Interactor) Current(ctx context.Context) (domain.Credential, error) {
	return i.svc.Current(ctx)
}

func (i *Interactor) Whoami(ctx context.Context) (dto.WhoamiOutput, error) {
	return i.svc.Whoami(ctx)
}
