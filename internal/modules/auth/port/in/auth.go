package in

import (
	"context"

	"climblog/internal/modules/auth/domain"
	"climblog/internal/modules/auth/dto"
)

type Usecase interface {
	Login(ctx context.Context, input dto.LoginInput) (dto.LoginOutput, error)
	Authenticate(ctx context.Context, input dto.LoginInput) (dto.LoginOutput, error)
	Remember(ctx context.Context, token string) error
	Signup(ctx context.Context, input dto.SignupInput) error
	Logout(ctx context.Context) error
	Current(ctx context.Context) (domain.Credential, error)
	Whoami(ctx context.Context) (dto.WhoamiOutput, error)
}
