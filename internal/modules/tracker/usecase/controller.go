package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	analyticsin "climblog/internal/modules/analytics/port/in"
	authdomain "climblog/internal/modules/auth/domain"
	authdto "climblog/internal/modules/auth/dto"
	authin "climblog/internal/modules/auth/port/in"
	gymdomain "climblog/internal/modules/gym/domain"
	gymin "climblog/internal/modules/gym/port/in"
	sessiondomain "climblog/internal/modules/session/domain"
	sessiondto "climblog/internal/modules/session/dto"
	sessionin "climblog/internal/modules/session/port/in"
	"climblog/internal/modules/tracker/domain"
	"climblog/internal/modules/tracker/dto"
	trackerin "climblog/internal/modules/tracker/port/in"
	apperrors "climblog/internal/platform/errors"
)

// Controller is safe for concurrent use. The mutex is never held across a
// network call; credential store writes happen under it so they land in
// the order the state changed. At most one network operation runs at a time; Cancel and
// Logout bypass that limit and invalidate whatever is still in flight.
type Controller struct {
	auth      authin.Usecase
	gyms      gymin.Usecase
	sessions  sessionin.Usecase
	analytics analyticsin.Usecase
	logger    *slog.Logger

	mu       sync.Mutex
	state    domain.State
	token    string
	username string
	catalog  []gymdomain.Gym
	recent   []sessiondomain.Session

	// gen is bumped by Cancel and Logout. A completion whose ticket carries
	// an older gen is dropped.
	gen      uint64
	seq      uint64
	inflight uint64
}

var _ trackerin.Controller = (*Controller)(nil)

func NewController(auth authin.Usecase, gyms gymin.Usecase, sessions sessionin.Usecase, analytics analyticsin.Usecase, logger *slog.Logger) *Controller {
	return &Controller{
		auth:      auth,
		gyms:      gyms,
		sessions:  sessions,
		analytics: analytics,
		logger:    logger,
		state:     domain.Unauthenticated{},
	}
}

type ticket struct {
	gen   uint64
	id    uint64
	token string
}

func isUnauthenticated(s domain.State) bool {
	_, ok := s.(domain.Unauthenticated)
	return ok
}

func isGymSelection(s domain.State) bool {
	_, ok := s.(domain.GymSelection)
	return ok
}

func isLogging(s domain.State) bool {
	a, ok := s.(domain.ActiveSession)
	return ok && !a.End.Open
}

func isEnding(s domain.State) bool {
	a, ok := s.(domain.ActiveSession)
	return ok && a.End.Open
}

// begin claims the in-flight slot for a network operation.
func (c *Controller) begin(op string, allowed func(domain.State) bool) (ticket, domain.State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !allowed(c.state) {
		return ticket{}, nil, fmt.Errorf("%s in %s: %w", op, c.state.Name(), domain.ErrInvalidTransition)
	}
	if c.inflight != 0 {
		return ticket{}, nil, domain.ErrRequestInFlight
	}
	c.seq++
	c.inflight = c.seq
	return ticket{gen: c.gen, id: c.seq, token: c.token}, domain.Clone(c.state), nil
}

// finishLocked releases the slot and reports whether t is still current.
func (c *Controller) finishLocked(t ticket) bool {
	if c.inflight == t.id {
		c.inflight = 0
	}
	return c.gen == t.gen
}

func (c *Controller) release(t ticket) {
	c.mu.Lock()
	c.finishLocked(t)
	c.mu.Unlock()
}

func (c *Controller) setStateLocked(next domain.State) {
	if prev := c.state.Name(); prev != next.Name() {
		c.logger.Info("state changed", "from", prev, "to", next.Name())
	}
	c.state = next
}

func (c *Controller) selectionLocked() domain.GymSelection {
	return domain.GymSelection{Gyms: c.catalog, Recent: c.recent}
}

// Start restores the saved credential. Without one the controller stays
// unauthenticated; with one it lists gyms, and a listing failure still
// lands in gym selection with an empty catalog.
func (c *Controller) Start(ctx context.Context) error {
	cred, err := c.auth.Current(ctx)
	if errors.Is(err, apperrors.ErrNotAuthenticated) {
		c.mu.Lock()
		c.setStateLocked(domain.Unauthenticated{})
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		return err
	}
	t, _, err := c.begin("start", isUnauthenticated)
	if err != nil {
		return err
	}
	gyms, listErr := c.gyms.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.finishLocked(t) {
		return domain.ErrStateChanged
	}
	c.token = cred.Token
	c.username = authdomain.ParseClaims(cred.Token).Username
	c.catalog = gyms
	c.setStateLocked(c.selectionLocked())
	if listErr != nil {
		return &domain.OpError{Op: domain.OpGyms, Err: listErr}
	}
	return nil
}

func (c *Controller) Login(ctx context.Context, username, password string) error {
	t, _, err := c.begin("login", isUnauthenticated)
	if err != nil {
		return err
	}
	out, err := c.auth.Authenticate(ctx, authdto.LoginInput{Username: username, Password: password})
	if err != nil {
		c.release(t)
		return err
	}
	gyms, listErr := c.gyms.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.finishLocked(t) {
		// A logout overtook this login. The token was never saved, so a
		// newer login's credential stays untouched.
		return domain.ErrStateChanged
	}
	if err := c.auth.Remember(ctx, out.Token); err != nil {
		return err
	}
	c.token = out.Token
	c.username = out.Username
	c.catalog = gyms
	c.recent = nil
	c.setStateLocked(c.selectionLocked())
	if listErr != nil {
		return &domain.OpError{Op: domain.OpGyms, Err: listErr}
	}
	return nil
}

func (c *Controller) ReloadGyms(ctx context.Context) error {
	t, _, err := c.begin("reload gyms", isGymSelection)
	if err != nil {
		return err
	}
	gyms, err := c.gyms.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.finishLocked(t) {
		return domain.ErrStateChanged
	}
	if err != nil {
		return err
	}
	c.catalog = gyms
	if isGymSelection(c.state) {
		c.setStateLocked(c.selectionLocked())
	}
	return nil
}

func (c *Controller) SelectGym(ctx context.Context, gymID string) error {
	t, st, err := c.begin("select gym", isGymSelection)
	if err != nil {
		return err
	}
	gym, ok := gymdomain.Find(st.(domain.GymSelection).Gyms, gymID)
	if !ok {
		c.release(t)
		return fmt.Errorf("%w: unknown gym %q", apperrors.ErrInvalidInput, gymID)
	}
	session, err := c.sessions.Start(ctx, sessiondto.StartInput{Token: t.token, GymID: gym.ID, GymName: gym.DisplayName()})

	c.mu.Lock()
	if !c.finishLocked(t) {
		c.mu.Unlock()
		if err == nil {
			c.discardRemote(ctx, t.token, session.ID)
		}
		return domain.ErrStateChanged
	}
	defer c.mu.Unlock()
	if err != nil {
		return err
	}
	c.setStateLocked(domain.ActiveSession{Session: session, Draft: sessiondomain.NewDraft()})
	return nil
}

// EditDraft applies fn to the current draft. The draft's setters carry the
// editing rules.
func (c *Controller) EditDraft(fn func(*sessiondomain.Draft)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !isLogging(c.state) {
		return fmt.Errorf("edit draft in %s: %w", c.state.Name(), domain.ErrInvalidTransition)
	}
	active := c.state.(domain.ActiveSession)
	fn(&active.Draft)
	c.state = active
	return nil
}

// StepDraft moves one draft field to its next (delta > 0) or previous value.
// For attempts that is increment and decrement.
func (c *Controller) StepDraft(field dto.DraftField, delta int) error {
	forward := delta > 0
	return c.EditDraft(func(d *sessiondomain.Draft) {
		v := d.Value()
		switch field {
		case dto.FieldGrade:
			d.SetGrade(step(forward, v.Grade.Next, v.Grade.Prev))
		case dto.FieldResult:
			d.SetResult(step(forward, v.Result.Next, v.Result.Prev))
		case dto.FieldHoldType:
			d.SetHoldType(step(forward, v.HoldType.Next, v.HoldType.Prev))
		case dto.FieldAngle:
			d.SetAngle(step(forward, v.Angle.Next, v.Angle.Prev))
		case dto.FieldStyle:
			d.SetStyle(step(forward, v.Style.Next, v.Style.Prev))
		case dto.FieldAttempts:
			if forward {
				d.IncrementAttempts()
			} else {
				d.DecrementAttempts()
			}
		}
	})
}

func step[T any](forward bool, next, prev func() T) T {
	if forward {
		return next()
	}
	return prev()
}

// LogClimb sends the draft and prepends it to the log only after the backend
// accepted it. Attempts reset to 1; the other draft fields are kept.
func (c *Controller) LogClimb(ctx context.Context) error {
	t, st, err := c.begin("log climb", isLogging)
	if err != nil {
		return err
	}
	active := st.(domain.ActiveSession)
	updated, err := c.sessions.LogClimb(ctx, sessiondto.LogClimbInput{Token: t.token, Session: active.Session, Climb: active.Draft.Value()})

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.finishLocked(t) {
		return domain.ErrStateChanged
	}
	if err != nil {
		return err
	}
	current, ok := c.state.(domain.ActiveSession)
	if !ok || current.Session.ID != active.Session.ID {
		return domain.ErrStateChanged
	}
	current.Session = updated
	current.Draft.ResetAttempts()
	c.state = current
	return nil
}

func (c *Controller) RequestEnd() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !isLogging(c.state) {
		return fmt.Errorf("request end in %s: %w", c.state.Name(), domain.ErrInvalidTransition)
	}
	active := c.state.(domain.ActiveSession)
	active.End = domain.EndFlow{Open: true}
	c.state = active
	return nil
}

func (c *Controller) SelectFatigue(n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !isEnding(c.state) {
		return fmt.Errorf("select fatigue in %s: %w", c.state.Name(), domain.ErrInvalidTransition)
	}
	if !sessiondomain.ValidFatigue(n) {
		return sessiondomain.ErrInvalidFatigue
	}
	active := c.state.(domain.ActiveSession)
	active.End.Fatigue = n
	c.state = active
	return nil
}

func (c *Controller) DismissEnd() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !isEnding(c.state) {
		return fmt.Errorf("dismiss end in %s: %w", c.state.Name(), domain.ErrInvalidTransition)
	}
	active := c.state.(domain.ActiveSession)
	active.End = domain.EndFlow{}
	c.state = active
	return nil
}

// ConfirmEnd ends the session with the picked fatigue. On success the
// history is refetched so the ended session is visible from gym selection;
// a failed refetch keeps the previous snapshot. On failure the fatigue
// prompt stays open.
func (c *Controller) ConfirmEnd(ctx context.Context) error {
	t, st, err := c.begin("confirm end", isEnding)
	if err != nil {
		return err
	}
	active := st.(domain.ActiveSession)
	if !sessiondomain.ValidFatigue(active.End.Fatigue) {
		c.release(t)
		return sessiondomain.ErrInvalidFatigue
	}
	err = c.sessions.End(ctx, sessiondto.EndInput{Token: t.token, SessionID: active.Session.ID, Fatigue: active.End.Fatigue})
	var (
		history []sessiondomain.Session
		histErr error
	)
	if err == nil {
		history, histErr = c.sessions.History(ctx, t.token)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.finishLocked(t) {
		return domain.ErrStateChanged
	}
	if err != nil {
		return err
	}
	if histErr != nil {
		c.logger.Warn("history refresh after end failed", "error", histErr)
	} else {
		c.recent = history
	}
	c.setStateLocked(c.selectionLocked())
	return nil
}

// Cancel discards the active session locally, then asks the backend to
// delete it. The local discard happens whatever the backend answers; the
// returned error only reports the delete.
func (c *Controller) Cancel(ctx context.Context) error {
	c.mu.Lock()
	active, ok := c.state.(domain.ActiveSession)
	if !ok {
		name := c.state.Name()
		c.mu.Unlock()
		return fmt.Errorf("cancel in %s: %w", name, domain.ErrInvalidTransition)
	}
	token := c.token
	c.gen++
	c.inflight = 0
	c.setStateLocked(c.selectionLocked())
	c.mu.Unlock()

	err := c.sessions.Cancel(ctx, sessiondto.CancelInput{Token: token, SessionID: active.Session.ID})
	if err != nil {
		c.logger.Warn("cancelled session not deleted remotely", "session_id", active.Session.ID, "error", err)
	}
	return err
}

func (c *Controller) OpenHistory(ctx context.Context) error {
	t, _, err := c.begin("open history", isGymSelection)
	if err != nil {
		return err
	}
	sessions, err := c.sessions.History(ctx, t.token)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.finishLocked(t) {
		return domain.ErrStateChanged
	}
	if err != nil {
		return err
	}
	report := c.analytics.Report(sessions)
	c.recent = sessions
	c.setStateLocked(domain.HistoryView{
		Sessions: sessions,
		Holds:    report.Holds,
		Angles:   report.Angles,
		Styles:   report.Styles,
		Timeline: report.Timeline,
	})
	return nil
}

func (c *Controller) CloseHistory() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.state.(domain.HistoryView); !ok {
		return fmt.Errorf("close history in %s: %w", c.state.Name(), domain.ErrInvalidTransition)
	}
	c.setStateLocked(c.selectionLocked())
	return nil
}

// Logout is legal from every state. It drops the credential and any active
// session; nothing in flight can resurrect them.
func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	active, hadSession := c.state.(domain.ActiveSession)
	token := c.token
	c.gen++
	c.inflight = 0
	c.token = ""
	c.username = ""
	c.catalog = nil
	c.recent = nil
	c.setStateLocked(domain.Unauthenticated{})
	clearErr := c.auth.Logout(ctx)
	c.mu.Unlock()

	if hadSession {
		c.discardRemote(ctx, token, active.Session.ID)
	}
	return clearErr
}

func (c *Controller) discardRemote(ctx context.Context, token, sessionID string) {
	if err := c.sessions.Cancel(ctx, sessiondto.CancelInput{Token: token, SessionID: sessionID}); err != nil {
		c.logger.Warn("discarded session not deleted remotely", "session_id", sessionID, "error", err)
	}
}

func (c *Controller) State() domain.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.Clone(c.state)
}

func (c *Controller) Username() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.username
}
