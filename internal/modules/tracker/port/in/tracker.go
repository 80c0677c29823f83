package in

import (
	"context"

	sessiondomain "climblog/internal/modules/session/domain"
	"climblog/internal/modules/tracker/domain"
	"climblog/internal/modules/tracker/dto"
)

// Controller drives the client through login, gym selection, the active
// session and the history view.
type Controller interface {
	Start(ctx context.Context) error
	Login(ctx context.Context, username, password string) error
	ReloadGyms(ctx context.Context) error
	SelectGym(ctx context.Context, gymID string) error
	EditDraft(fn func(*sessiondomain.Draft)) error
	StepDraft(field dto.DraftField, delta int) error
	LogClimb(ctx context.Context) error
	RequestEnd() error
	SelectFatigue(n int) error
	DismissEnd() error
	ConfirmEnd(ctx context.Context) error
	Cancel(ctx context.Context) error
	OpenHistory(ctx context.Context) error
	CloseHistory() error
	Logout(ctx context.Context) error
	State() domain.State
	Username() string
}
