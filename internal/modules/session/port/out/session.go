package out

import (
	"context"

	"climblog/internal/modules/session/domain"
)

// Gateway is the backend's session API.
type Gateway interface {
	Start(ctx context.Context, token, gymID string) (string, error)
	AddClimb(ctx context.Context, token, sessionID string, climb domain.ClimbAttempt) error
	End(ctx context.Context, token, sessionID string, fatigue int) error
	Delete(ctx context.Context, token, sessionID string) error
	History(ctx context.Context, token string) ([]domain.Session, error)
}

type SessionExporter interface {
	Save(ctx context.Context, dir string, session domain.Session) (string, error)
}
