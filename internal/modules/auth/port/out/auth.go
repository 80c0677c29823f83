package out

import (
	"context"
	"time"
)

// CredentialStore persists the bearer token between runs.
type CredentialStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
	UpdatedAt(ctx context.Context) (time.Time, error)
}

type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
	Signup(ctx context.Context, username, password string) error
}
