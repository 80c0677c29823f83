package in

import (
	"context"

	"climblog/internal/modules/auth/dto"
	authin "climblog/internal/modules/auth/port/in"
)

type CLIHandler struct {
	usecase authin.Usecase
}

func NewCLIHandler(usecase authin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Login(ctx context.Context, username, password string) (dto.LoginOutput, error) {
	return h.usecase.Login(ctx, dto.LoginInput{Username: username, Password: password})
}

func (h CLIHandler) Signup(ctx context.Context, username, password string) error {
	return h.usecase.Signup(ctx, dto.SignupInput{Username: username, Password: password})
}

func (h CLIHandler) Logout(ctx context.Context) error {
	return h.usecase.Logout(ctx)
}

func (h CLIHandler) Whoami(ctx context.Context) (dto.WhoamiOutput, error) {
	return h.usecase.Whoami(ctx)
}

// Token returns the stored bearer token for commands that call the backend.
func (h CLIHandler) Token(ctx context.Context) (string, error) {
	cred, err := h.usecase.Current(ctx)
	if err != nil {
		return "", err
	}
	return cred.Token, nil
}
